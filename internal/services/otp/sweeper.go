package otp

import (
	"context"
	"log"
	"time"

	"bazaar/internal/repositories"
)

// Sweeper periodically deletes expired unused codes. This is cleanup only;
// Validate checks expiry inline, so correctness never depends on the sweep.
type Sweeper struct {
	repo     repositories.DealRepository
	interval time.Duration
}

func NewSweeper(repo repositories.DealRepository, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{repo: repo, interval: interval}
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.repo.DeleteExpiredOTPs(time.Now())
			if err != nil {
				log.Printf("otp sweep failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("otp sweep removed %d expired codes", removed)
			}
		}
	}
}
