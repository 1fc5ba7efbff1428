package collector

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Batch is one scripted view of the rendered feed: what Sample would see at
// that point in the scroll.
type Batch struct {
	Timestamps []string
	Texts      []string
	Err        error // returned from Sample instead of data
}

// MockFeed implements domain.Feed with scripted batches. Each Sample returns
// the next batch; once the script runs out the last batch repeats, which lets
// the stall heuristic terminate naturally. Scroll operations are recorded for
// assertions.
type MockFeed struct {
	batches []Batch
	i       int
	scrolls []string
}

func NewMockFeed(batches ...Batch) *MockFeed {
	return &MockFeed{batches: batches}
}

func (m *MockFeed) PauseMedia(ctx context.Context) error { return nil }

func (m *MockFeed) Sample(ctx context.Context) ([]string, []string, error) {
	if len(m.batches) == 0 {
		return nil, nil, nil
	}
	b := m.batches[m.i]
	if m.i < len(m.batches)-1 {
		m.i++
	}
	if b.Err != nil {
		return nil, nil, b.Err
	}
	return b.Timestamps, b.Texts, nil
}

func (m *MockFeed) ScrollToLast(ctx context.Context) error {
	m.scrolls = append(m.scrolls, "last")
	return nil
}

func (m *MockFeed) ScrollToBottom(ctx context.Context) error {
	m.scrolls = append(m.scrolls, "bottom")
	return nil
}

// Scrolls returns the recorded scroll commands in order.
func (m *MockFeed) Scrolls() []string { return m.scrolls }

// Rewind restarts the script, as if a fresh page had been navigated to.
func (m *MockFeed) Rewind() {
	m.i = 0
	m.scrolls = nil
}

// MockNavigator satisfies domain.Navigator without a browser and rewinds its
// feed on navigation so every day replays the script.
type MockNavigator struct {
	Feed *MockFeed
}

func (n MockNavigator) Navigate(ctx context.Context, url string) error {
	if n.Feed != nil {
		n.Feed.Rewind()
	}
	return nil
}

func (n MockNavigator) WaitFirstResult(ctx context.Context) error { return nil }

// demoBatches fabricates a short growing feed so the whole pipeline can run
// end to end without Chrome.
func demoBatches() []Batch {
	var batches []Batch
	var ts, texts []string
	base := time.Date(2022, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		ts = append(ts, base.Add(-time.Duration(i)*time.Minute).Format(time.RFC3339))
		texts = append(texts, fmt.Sprintf(
			"simulated_user\n@simulated\nSimulated coin take #%d\n%d\n%d\n%d",
			i, rand.Intn(50), rand.Intn(100), rand.Intn(500)))
		if (i+1)%10 == 0 {
			batches = append(batches, Batch{
				Timestamps: append([]string(nil), ts...),
				Texts:      append([]string(nil), texts...),
			})
		}
	}
	return batches
}
