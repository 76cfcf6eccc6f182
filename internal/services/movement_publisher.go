package services

import (
	"context"
	"sync"
	"time"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

// MovementPublisher recomputes the movement composite on a fixed interval
// and keeps the latest snapshot for cheap concurrent reads. It exists for
// the landing-page live counters; callers that need exact numbers should use
// StatsService.MovementStats directly.
type MovementPublisher struct {
	stats    *StatsService
	interval time.Duration

	mu       sync.RWMutex
	snapshot models.MovementStats
}

func NewMovementPublisher(stats *StatsService, interval time.Duration) *MovementPublisher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &MovementPublisher{stats: stats, interval: interval}
}

// Run refreshes the snapshot until ctx is cancelled. The first refresh
// happens before the first tick so early reads never see a zero snapshot.
func (p *MovementPublisher) Run(ctx context.Context) {
	p.refresh()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh()
		}
	}
}

func (p *MovementPublisher) refresh() {
	snap := p.stats.MovementStats()
	p.mu.Lock()
	p.snapshot = snap
	p.mu.Unlock()
}

// Snapshot returns the most recently published movement stats.
func (p *MovementPublisher) Snapshot() models.MovementStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}
