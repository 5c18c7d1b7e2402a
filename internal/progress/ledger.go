package progress

import (
	"sort"
	"strings"
	"sync"
)

// Ledger holds per-user topic completion percentages for the life of the process.
// Percentages are stored as given; the ledger does not clamp them.
type Ledger struct {
	mu      sync.RWMutex
	entries map[string]map[string]float64
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]map[string]float64)}
}

// Update sets user's percentage for topic. Last write wins.
func (l *Ledger) Update(user, topic string, pct float64) error {
	if strings.TrimSpace(user) == "" {
		return ErrUnauthenticated
	}
	if topic == "" {
		return ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	topics, ok := l.entries[user]
	if !ok {
		topics = make(map[string]float64)
		l.entries[user] = topics
	}
	topics[topic] = pct
	return nil
}

// Snapshot returns a copy of user's entries; unknown users get an empty map.
func (l *Ledger) Snapshot(user string) map[string]float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]float64, len(l.entries[user]))
	for topic, pct := range l.entries[user] {
		out[topic] = pct
	}
	return out
}

// Bars returns user's entries as chart bars in ascending topic order.
func (l *Ledger) Bars(user string) []Bar {
	snap := l.Snapshot(user)
	bars := make([]Bar, 0, len(snap))
	for topic, pct := range snap {
		bars = append(bars, Bar{Label: topic, Value: pct})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Label < bars[j].Label })
	return bars
}
