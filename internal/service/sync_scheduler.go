package service

import (
	"context"
	"log"
	"time"
)

// SyncScheduler triggers a catalog sync on a fixed interval, calling the
// same SyncExternal path as the manual endpoint so the two cannot drift.
// Runs are not mutually excluded: a slow run may overlap the next tick or
// a manual trigger, matching the upsert's last-writer-wins semantics.
type SyncScheduler struct {
	movies   *MovieService
	interval time.Duration
}

// NewSyncScheduler builds a scheduler firing every interval. A
// non-positive interval disables scheduling.
func NewSyncScheduler(movies *MovieService, interval time.Duration) *SyncScheduler {
	return &SyncScheduler{movies: movies, interval: interval}
}

// Start launches the ticker goroutine. It returns immediately; the
// goroutine exits when ctx is cancelled. A failed run only logs — the next
// tick is the retry.
func (s *SyncScheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		log.Printf("sync scheduler disabled")
		return
	}
	go func() {
		t := time.NewTicker(s.interval)
		defer t.Stop()
		log.Printf("sync scheduler started (every %s)", s.interval)
		for {
			select {
			case <-ctx.Done():
				log.Printf("sync scheduler stopped")
				return
			case <-t.C:
				runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
				res, err := s.movies.SyncExternal(runCtx)
				cancel()
				if err != nil {
					log.Printf("scheduled sync failed: %v", err)
					continue
				}
				log.Printf("scheduled sync done: total=%d created=%d updated=%d",
					res.Total, res.Created, res.Updated)
			}
		}
	}()
}
