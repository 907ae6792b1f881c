package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/irfanmohammad01/real-estate-marketing/internal/config"
	"github.com/irfanmohammad01/real-estate-marketing/internal/mailer"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/distlock"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/repository/postgres"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/campaign"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/contact"
	"github.com/irfanmohammad01/real-estate-marketing/internal/worker"
)

func main() {
	configPath := "config/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		logger.Error("config load failed", "path", configPath, "error", err.Error())
		os.Exit(1)
	}
	logger.SetLevel(parseLevel(cfg.LogLevel))

	db, err := postgres.Open(cfg.Database.URL, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		logger.Error("database connect failed", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Redis is optional; campaign locking falls back to PG advisory locks.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, using advisory locks", "error", err.Error())
			redisClient = nil
		}
		cancel()
	}

	contactRepo := postgres.NewContactRepo(db)
	taxonomyRepo := postgres.NewTaxonomyRepo(db)
	audienceRepo := postgres.NewAudienceRepo(db)
	campaignRepo := postgres.NewCampaignRepo(db)
	sendRepo := postgres.NewSendRepo(db)
	jobRepo := postgres.NewJobRepo(db)

	contactSvc := contact.NewService(contactRepo, taxonomyRepo)
	importer := contact.NewImporter(contactSvc, cfg.Import.MaxFileSize)

	lockTTL := cfg.Workers.StaleLockAge()
	lockFor := func(key string) distlock.DistLock {
		return distlock.NewLock(redisClient, db, key, lockTTL)
	}
	executor := campaign.NewExecutor(campaignRepo, sendRepo, audienceRepo, lockFor)

	sender, err := buildSender(cfg)
	if err != nil {
		logger.Error("mailer init failed", "provider", cfg.Mailer.Provider, "error", err.Error())
		os.Exit(1)
	}
	logger.Info("mailer ready", "provider", cfg.Mailer.Provider)

	sendWorker := worker.NewSendWorker(sendRepo, mailer.NewRenderer(), sender, worker.SendWorkerConfig{
		Workers:   cfg.Workers.SendWorkers,
		BatchSize: cfg.Workers.SendBatchSize,
		Interval:  cfg.Workers.SendInterval(),
		StaleAge:  cfg.Workers.StaleLockAge(),
	})
	scheduler := worker.NewScheduler(jobRepo, executor, importer, cfg.Workers.JobInterval(), cfg.Workers.StaleLockAge())
	recurring := worker.NewRecurringScheduler(campaignRepo, jobRepo, cfg.Workers.RecurringInterval())
	sweep := worker.NewCompletionSweep(campaignRepo, sendRepo, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	for _, run := range []func(context.Context){
		sendWorker.Run,
		scheduler.Run,
		recurring.Run,
		sweep.Run,
	} {
		wg.Add(1)
		go func(run func(context.Context)) {
			defer wg.Done()
			run(ctx)
		}(run)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	sig := <-stop
	logger.Info("shutting down", "signal", sig.String())

	cancel()
	wg.Wait()
	logger.Info("worker stopped cleanly")
}

func buildSender(cfg *config.Config) (mailer.Sender, error) {
	if cfg.Mailer.Provider == "ses" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Mailer.Timeout())
		defer cancel()
		return mailer.NewSESSender(ctx, cfg.Mailer.Region)
	}
	return mailer.NewLogSender(), nil
}

func parseLevel(s string) logger.Level {
	switch s {
	case "debug":
		return logger.DEBUG
	case "warn":
		return logger.WARN
	case "error":
		return logger.ERROR
	default:
		return logger.INFO
	}
}
