package storage

import (
	"fmt"
	"os"
)

// ErrorLog is the append-only plain-text fault log: one line per recoverable
// fault, surviving across runs. A nil ErrorLog discards writes, which lets
// callers log unconditionally.
type ErrorLog struct {
	f *os.File
}

func OpenErrorLog(path string) (*ErrorLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("storage: open error log %s: %w", path, err)
	}
	return &ErrorLog{f: f}, nil
}

func (l *ErrorLog) Logf(format string, args ...any) {
	if l == nil || l.f == nil {
		return
	}
	fmt.Fprintf(l.f, format+"\n", args...)
}

func (l *ErrorLog) Close() error {
	if l == nil || l.f == nil {
		return nil
	}
	return l.f.Close()
}
