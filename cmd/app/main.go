// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamestore-backoffice/internal/config"
	"gamestore-backoffice/internal/domain/ports/adapter"
	tele "gamestore-backoffice/internal/infra/adapters/telegram"
	pg "gamestore-backoffice/internal/infra/db/postgres"
	httpapi "gamestore-backoffice/internal/infra/http"
	"gamestore-backoffice/internal/infra/logging"
	"gamestore-backoffice/internal/infra/metrics"
	red "gamestore-backoffice/internal/infra/redis"
	"gamestore-backoffice/internal/infra/web"
	"gamestore-backoffice/internal/infra/worker"
	"gamestore-backoffice/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop bot, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := pg.RunMigrations(cfg.Database.URL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	anchorCache := red.NewAnchorCache(redisClient, cfg.Redis.TTL)
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	chatRepo := pg.NewChatSessionRepo(pool)
	threadRepo := pg.NewThreadRegistryRepo(pool, anchorCache, logger)
	catalogRepo := pg.NewCatalogRepo(pool)

	// ---- Telegram ----
	var bot adapter.BotAdapter
	if cfg.Runtime.Dev {
		bot = tele.NewNoopBotAdapter()
	} else {
		bot, err = tele.NewRealBotAdapter(&cfg.Bot)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
	}
	if cfg.Bot.WebhookURL != "" {
		if err := bot.SetWebhook(ctx, cfg.Bot.WebhookURL); err != nil {
			log.Fatalf("telegram webhook: %v", err)
		}
		logger.Info().Str("url", cfg.Bot.WebhookURL).Msg("telegram webhook registered")
	}

	// ---- Use cases ----
	chatUC := usecase.NewChatUseCase(chatRepo, logger)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo, logger)
	statsUC := usecase.NewStatsUseCase(chatRepo, catalogRepo)
	inboundUC := usecase.NewInboundRelayUseCase(chatRepo, threadRepo, bot, cfg.Bot.AdminChatID, logger)
	router := usecase.NewRelayRouter(
		usecase.NewOutboundRelayUseCase(chatRepo, threadRepo, bot, cfg.Bot.AdminChatID, logger),
		usecase.NewMirrorUseCase(threadRepo, bot, cfg.Bot.AdminChatID, logger),
		logger,
	)

	// ---- Change-event dispatch ----
	pw := worker.NewPool(cfg.Relay.Workers, logger)
	pw.Start(ctx)
	defer pw.Stop()
	listener := pg.NewListener(pool, router, pw, logger)
	go func() {
		if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("change listener stopped")
		}
	}()

	// ---- Public HTTP (webhook + visitor ingress) ----
	publicSrv := httpapi.NewServer(inboundUC, chatUC, rateLimiter, logger)
	public := &http.Server{Addr: fmt.Sprintf(":%d", cfg.HTTP.Port), Handler: publicSrv.Router()}
	go func() {
		logger.Info().Str("addr", public.Addr).Msg("public http listening")
		if err := public.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("public http server error")
		}
	}()

	// ---- Admin API ----
	auth := web.NewAuthManager(cfg.Admin.Password, cfg.Admin.JWTSecret, cfg.Admin.Secure, cfg.Admin.SessionTTL)
	adminSrv := web.NewServer(auth, chatUC, catalogUC, statsUC, logger)
	admin := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Admin.Port), Handler: adminSrv.Router()}
	go func() {
		logger.Info().Str("addr", admin.Addr).Msg("admin api listening")
		if err := admin.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("admin api server error")
		}
	}()

	// ---- DB pool gauge ----
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st := pool.Stat()
				metrics.SetDBPoolStats(st.TotalConns(), st.IdleConns(), st.AcquiredConns())
			}
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := public.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("public http shutdown")
	}
	if err := admin.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("admin api shutdown")
	}
}
