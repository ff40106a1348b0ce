package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"PriceScout/internal/config"
	"PriceScout/internal/extractor"
	"PriceScout/internal/model"
	"PriceScout/internal/scheduler"
	"PriceScout/internal/scraper"
	"PriceScout/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	codesFlag := flag.String("codes", "", "comma-separated security codes to resolve once")
	daemon := flag.Bool("daemon", false, "run the periodic refresh scheduler")
	flag.Parse()

	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	fetcher := scraper.NewFetcher(scraper.FetcherOptions{
		Timeout:        time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		UserAgent:      cfg.Fetch.UserAgent,
		AcceptLanguage: cfg.Fetch.AcceptLanguage,
		Proxy:          cfg.Proxy,
	})
	ext := extractor.New(extractor.ResolverConfig{
		Window:    cfg.Extract.UnitWindow,
		Threshold: decimal.NewFromInt(cfg.Extract.AgorotThreshold),
	})
	resolver := scraper.NewResolver(cfg.Sources, fetcher, ext,
		time.Duration(cfg.Fetch.PaceMillis)*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One-shot mode: resolve the given codes and print the outcome.
	if *codesFlag != "" {
		codes, err := parseCodes(*codesFlag)
		if err != nil {
			log.Fatalf("[FATAL] parse codes: %v", err)
		}
		resolveOnce(ctx, resolver, codes, cfg.Fetch.Workers)
		return
	}
	if !*daemon {
		log.Fatalf("[FATAL] nothing to do: pass -codes or -daemon")
	}

	log.Println("[INFO] pricer starting...")

	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	sched := scheduler.NewScheduler(ctx, resolver, st, cfg.Fetch.Workers)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing now")
		go sched.RunRefreshNow()
	}

	log.Println("[INFO] pricer is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}

// parseCodes splits and validates the -codes flag. A non-numeric code is a
// hard input error, unlike per-source failures which are always soft.
func parseCodes(s string) ([]model.SecurityCode, error) {
	var codes []model.SecurityCode
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("not a security code: %q", part)
		}
		codes = append(codes, model.SecurityCode(n))
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("no codes given")
	}
	return codes, nil
}

func resolveOnce(ctx context.Context, r *scraper.Resolver, codes []model.SecurityCode, workers int) {
	results := r.ResolveMany(ctx, codes, workers)
	for _, res := range results {
		if res.Result == nil {
			fmt.Printf("%d\t-\t%s\n", res.Code, res.FailureSummary())
			continue
		}
		fmt.Printf("%d\t%s\t%s\n", res.Code, res.Result.Price.StringFixed(6), res.Result.Provenance())
	}
}
