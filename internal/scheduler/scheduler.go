package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"alphaview/internal/model"
	"alphaview/internal/portfolio"
	"alphaview/internal/recorder"
	"alphaview/internal/report"
	"alphaview/internal/watchlist"
)

// Scheduler runs periodic watchlist refreshes and records the outcome.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher *portfolio.Refresher
	Watchlist *watchlist.Store
	Recorder  recorder.Recorder
	Spec      model.RangeSpec
	Ctx       context.Context
}

// NewScheduler creates a Scheduler refreshing with the given range spec.
func NewScheduler(ctx context.Context, ref *portfolio.Refresher, wl *watchlist.Store, rec recorder.Recorder, spec model.RangeSpec) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: ref,
		Watchlist: wl,
		Recorder:  rec,
		Spec:      spec,
		Ctx:       ctx,
	}
}

// Register installs the refresh task under the given cron expression.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh task immediately (manual trigger or
// RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	symbols := s.Watchlist.Symbols()
	if len(symbols) == 0 {
		log.Println("[INFO] watchlist empty, nothing to refresh")
		return
	}

	log.Printf("[INFO] refreshing %d symbols at %s", len(symbols), s.Spec)
	snap := s.Refresher.Refresh(s.Ctx, symbols, s.Spec)

	for _, res := range snap.Results {
		if res.Unavailable() {
			reason := "no data"
			if res.Err != nil {
				reason = res.Err.Error()
			}
			if err := s.Recorder.RecordFailure(&recorder.FetchFailure{
				Symbol:   res.Symbol,
				Range:    s.Spec.Range,
				Interval: s.Spec.Interval,
				Reason:   reason,
			}); err != nil {
				log.Printf("[ERROR] record failure for %s: %v", res.Symbol, err)
			}
			continue
		}
		if err := s.Recorder.RecordQuote(recorder.SnapshotFromAnalysis(res.Analysis, s.Spec)); err != nil {
			log.Printf("[ERROR] record quote for %s: %v", res.Symbol, err)
		}
	}

	log.Printf("[INFO] refresh done: %d available, %d unavailable\n%s",
		snap.Available(), len(snap.Results)-snap.Available(),
		report.FormatSnapshot(snap, s.Watchlist.Quantities()))
}
