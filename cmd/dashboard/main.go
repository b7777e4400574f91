package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"alphaview/internal/cache"
	"alphaview/internal/collector"
	"alphaview/internal/config"
	"alphaview/internal/portfolio"
	"alphaview/internal/recorder"
	"alphaview/internal/relay"
	"alphaview/internal/scheduler"
	"alphaview/internal/watchlist"
	"alphaview/internal/yahoo"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] AlphaView starting...")

	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	// Load config
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

	// Relay selector and upstream client
	sel := relay.NewSelector(cfg.Relay.Endpoints,
		time.Duration(cfg.Relay.TimeoutSeconds)*time.Second, cfg.Relay.Sweeps)
	client := yahoo.NewClient(sel, cfg.Upstream.ChartBaseURL, cfg.Upstream.SearchBaseURL)
	log.Printf("[INFO] data source: %s via %d relays", client.Name(), len(cfg.Relay.Endpoints))

	// Response cache
	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	var store cache.Store
	if cfg.Cache.RedisAddr != "" {
		rs := cache.NewRedis(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, ttl)
		defer rs.Close()
		store = rs
		log.Printf("[INFO] response cache: redis at %s", cfg.Cache.RedisAddr)
	} else {
		store = cache.NewMemory(ttl)
		log.Println("[INFO] response cache: in-memory")
	}

	// Orchestrator and refresher
	col := collector.NewCollector(client, store, cfg.Fallbacks)
	ref := portfolio.NewRefresher(col)
	ref.FallbackRate = cfg.Dashboard.EURUSDFallback

	// Watchlist
	wl, err := watchlist.NewStore(cfg.Dashboard.WatchlistFile)
	if err != nil {
		log.Fatalf("[FATAL] init watchlist: %v", err)
	}

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduler
	sched := scheduler.NewScheduler(ctx, ref, wl, rec, cfg.RangeSpec())
	if err := sched.Register(cfg.Dashboard.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register refresh task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing now")
		go sched.RunNow()
	}

	log.Println("[INFO] AlphaView is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] AlphaView stopped")
}
