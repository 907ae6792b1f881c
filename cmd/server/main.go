package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/irfanmohammad01/real-estate-marketing/internal/api"
	"github.com/irfanmohammad01/real-estate-marketing/internal/auth"
	"github.com/irfanmohammad01/real-estate-marketing/internal/config"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/ratelimit"
	"github.com/irfanmohammad01/real-estate-marketing/internal/repository/postgres"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/audience"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/campaign"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/contact"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/organization"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/template"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/user"
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

	if cfg.Auth.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.Database.URL, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		logger.Error("database connect failed", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Redis is optional. Without it the rate limiter turns off.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, rate limiting disabled", "error", err.Error())
			redisClient = nil
		}
		cancel()
	}

	orgRepo := postgres.NewOrganizationRepo(db)
	userRepo := postgres.NewUserRepo(db)
	superRepo := postgres.NewSuperUserRepo(db)
	contactRepo := postgres.NewContactRepo(db)
	taxonomyRepo := postgres.NewTaxonomyRepo(db)
	audienceRepo := postgres.NewAudienceRepo(db)
	templateRepo := postgres.NewTemplateRepo(db)
	campaignRepo := postgres.NewCampaignRepo(db)
	sendRepo := postgres.NewSendRepo(db)
	jobRepo := postgres.NewJobRepo(db)

	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	orgSvc := organization.NewService(orgRepo)
	userSvc := user.NewService(userRepo, superRepo, orgRepo)
	authFlows := user.NewAuthenticator(userRepo, superRepo, orgRepo, tokens)
	authMW := auth.NewMiddleware(tokens, userSvc)
	contactSvc := contact.NewService(contactRepo, taxonomyRepo)
	importer := contact.NewImporter(contactSvc, cfg.Import.MaxFileSize)
	audienceSvc := audience.NewService(audienceRepo, taxonomyRepo)
	templateSvc := template.NewService(templateRepo)
	campaignSvc := campaign.NewService(campaignRepo, sendRepo, audienceRepo, templateRepo, jobRepo)

	var limiter *ratelimit.Limiter
	if redisClient != nil && cfg.RateLimit.Enabled {
		limiter = ratelimit.New(redisClient, cfg.RateLimit.RequestsPerMin, time.Minute)
	}

	server := api.NewServer(api.Deps{
		Config:    *cfg,
		AuthMW:    authMW,
		AuthFlows: authFlows,
		Orgs:      orgSvc,
		Users:     userSvc,
		Contacts:  contactSvc,
		Importer:  importer,
		Audiences: audienceSvc,
		Templates: templateSvc,
		Campaigns: campaignSvc,
		Jobs:      jobRepo,
		Limiter:   limiter,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe(addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server stopped", "error", err.Error())
		os.Exit(1)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	logger.Info("server stopped cleanly")
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
