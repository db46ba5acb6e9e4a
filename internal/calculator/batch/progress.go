package batch

import (
	"sync"
	"time"
)

const percentMultiplier = 100

// Progress tracks completed items and batches. Safe for concurrent use.
type Progress struct {
	mu           sync.Mutex
	notifyMu     sync.Mutex
	totalItems   int
	totalBatches int
	doneItems    int
	doneBatches  int
	start        time.Time
}

// Snapshot is an immutable view of Progress.
type Snapshot struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
	Elapsed          time.Duration
}

// NewProgress starts tracking a run.
func NewProgress(totalItems, totalBatches int) *Progress {
	return &Progress{
		totalItems:   totalItems,
		totalBatches: totalBatches,
		start:        time.Now(),
	}
}

// Add records a finished batch of n items and returns the new state.
func (p *Progress) Add(n int) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doneItems += n
	p.doneBatches++
	return p.snapshotLocked()
}

// Snapshot returns the current state.
func (p *Progress) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Progress) snapshotLocked() Snapshot {
	return Snapshot{
		TotalItems:       p.totalItems,
		ProcessedItems:   p.doneItems,
		TotalBatches:     p.totalBatches,
		ProcessedBatches: p.doneBatches,
		Elapsed:          time.Since(p.start),
	}
}

// notify serializes progress callbacks.
func (p *Progress) notify(fn ProgressFunc, s Snapshot) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()
	fn(s)
}

// PercentComplete returns completion in the range 0-100.
func (s Snapshot) PercentComplete() float64 {
	if s.TotalItems == 0 {
		return 0
	}
	return float64(s.ProcessedItems) / float64(s.TotalItems) * percentMultiplier
}

// Complete reports whether every item has been processed.
func (s Snapshot) Complete() bool {
	return s.ProcessedItems >= s.TotalItems
}
