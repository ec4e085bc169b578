package scheduler

import (
	"context"

	"github.com/Kabachel/FeedingKittiesBot/internal/interfaces"
	"github.com/Kabachel/FeedingKittiesBot/internal/logger"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily feed counter reset on a cron schedule. The job is
// wrapped so a slow run is skipped rather than overlapped.
type Scheduler struct {
	cron *cron.Cron
}

// New registers the reset job on the given cron spec (standard five-field
// syntax, process timezone).
func New(spec string, feeding interfaces.FeedingServiceInterface) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(spec, func() {
		if err := feeding.ResetAllCounts(context.Background()); err != nil {
			logger.Error("Daily reset failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c}, nil
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
