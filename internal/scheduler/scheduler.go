package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"PriceScout/internal/model"
	"PriceScout/internal/scraper"
	"PriceScout/internal/store"
)

// Scheduler runs the periodic price refresh over the tracked securities.
type Scheduler struct {
	Cron     *cron.Cron
	Resolver *scraper.Resolver
	Store    store.Store
	Workers  int
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, r *scraper.Resolver, st store.Store, workers int) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Resolver: r,
		Store:    st,
		Workers:  workers,
		Ctx:      ctx,
	}
}

// Register schedules the refresh task.
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

// RunRefreshNow executes the refresh immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running price refresh")

	secs, err := s.Store.ListSecurities()
	if err != nil {
		log.Printf("[ERROR] list securities: %v", err)
		return
	}
	if len(secs) == 0 {
		log.Println("[WARN] no securities to refresh")
		return
	}

	codes := make([]model.SecurityCode, len(secs))
	for i, sec := range secs {
		codes[i] = sec.Code
	}

	results := s.Resolver.ResolveMany(s.Ctx, codes, s.Workers)

	var updated, missed int
	for _, res := range results {
		if res.Result == nil {
			missed++
			log.Printf("[WARN] no price for %d: %s", res.Code, res.FailureSummary())
			continue
		}
		if err := s.Store.RecordPrice(res.Result); err != nil {
			log.Printf("[ERROR] record price for %d: %v", res.Code, err)
			continue
		}
		updated++
		log.Printf("[INFO] %d = %s NIS via %s", res.Code, res.Result.Price, res.Result.Provenance())
	}
	log.Printf("[INFO] refresh done: %d updated, %d missed", updated, missed)
}
