package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration accepts Go duration strings ("1.5s", "200ms") in YAML; yaml.v3
// dropped the native time.Duration support yaml.v2 had.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Scroll   ScrollConfig  `yaml:"scroll"`
	Browser  BrowserConfig `yaml:"browser"`
	Output   OutputConfig  `yaml:"output"`
	DayDelay Duration      `yaml:"day_delay"` // pause between day exports
	LogLevel string        `yaml:"log_level"`
}

type ScrollConfig struct {
	// Settle is the pause between scroll and extraction.
	Settle Duration `yaml:"settle"`
	// InitialSettle is the extra wait after the first result renders; the
	// first tweets arrive in waves.
	InitialSettle Duration `yaml:"initial_settle"`
	// StallLimit is how many consecutive no-growth samples mean exhaustion.
	StallLimit int `yaml:"stall_limit"`
	// Budget caps scroll iterations per day.
	Budget int `yaml:"budget"`
}

type BrowserConfig struct {
	Headless        bool     `yaml:"headless"`
	NavTimeout      Duration `yaml:"nav_timeout"`
	FirstResultWait Duration `yaml:"first_result_wait"`
}

type OutputConfig struct {
	Root     string `yaml:"root"`
	ErrorLog string `yaml:"error_log"`
	Report   string `yaml:"report"`
}

// Load reads an optional YAML config, expanding ${ENV} references after
// loading .env. A missing path yields pure defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Scroll.Settle == 0 {
		c.Scroll.Settle = Duration(1500 * time.Millisecond)
	}
	if c.Scroll.InitialSettle == 0 {
		c.Scroll.InitialSettle = Duration(7 * time.Second)
	}
	if c.Scroll.StallLimit == 0 {
		c.Scroll.StallLimit = 3
	}
	if c.Scroll.Budget == 0 {
		c.Scroll.Budget = 3200
	}
	if c.Browser.NavTimeout == 0 {
		c.Browser.NavTimeout = Duration(30 * time.Second)
	}
	if c.Browser.FirstResultWait == 0 {
		c.Browser.FirstResultWait = Duration(30 * time.Second)
	}
	if c.Output.Root == "" {
		c.Output.Root = "Tweets"
	}
	if c.Output.ErrorLog == "" {
		c.Output.ErrorLog = "errors.log"
	}
	if c.Output.Report == "" {
		c.Output.Report = "report.html"
	}
	if c.DayDelay == 0 {
		c.DayDelay = Duration(time.Second)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
