package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-course-bot/internal/application"
	"telegram-course-bot/internal/config"
	"telegram-course-bot/internal/domain/ports/adapter"
	"telegram-course-bot/internal/domain/ports/repository"
	aiAdapters "telegram-course-bot/internal/infra/adapters/ai"
	tele "telegram-course-bot/internal/infra/adapters/telegram"
	httpapi "telegram-course-bot/internal/infra/http"
	"telegram-course-bot/internal/infra/i18n"
	"telegram-course-bot/internal/infra/logging"
	"telegram-course-bot/internal/infra/metrics"
	red "telegram-course-bot/internal/infra/redis"
	"telegram-course-bot/internal/infra/state/memory"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "development mode (noop adapters when keys are missing)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	logger.Info().
		Str("token", logging.Redact(cfg.Bot.Token, cfg.Runtime.Dev)).
		Int64("leads_channel", cfg.Leads.ChannelID).
		Str("state_backend", cfg.State.Backend).
		Str("ai_provider", cfg.AI.Provider).
		Msg("starting")

	// ---- State stores ----
	var (
		langRepo  repository.LanguageRepository
		leadRepo  repository.LeadRepository
		dedupRepo repository.DedupRepository
	)
	if cfg.State.Backend == "redis" {
		client, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer client.Close()
		langRepo = red.NewLanguageRepo(client)
		leadRepo = red.NewLeadRepo(client)
		dedupRepo = red.NewDedupRepo(client)
	} else {
		langRepo = memory.NewLanguageStore()
		leadRepo = memory.NewLeadStore()
		dedupRepo = memory.NewDedupStore()
	}

	// ---- Texts ----
	texts, err := i18n.NewBundle(i18n.LocalesFS)
	if err != nil {
		logger.Fatal().Err(err).Msg("locales")
	}

	// ---- AI adapter ----
	var ai adapter.AIAdapter
	switch {
	case cfg.AI.Provider == "gemini" && cfg.AI.GeminiKey != "":
		ai, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.Model, cfg.AI.Temperature)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini adapter")
		}
	case cfg.AI.OpenAIKey != "":
		ai, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.OpenAIBaseURL, cfg.AI.Model, cfg.AI.Temperature)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai adapter")
		}
	case cfg.Runtime.Dev:
		logger.Warn().Msg("no AI key configured, using noop adapter")
		ai = aiAdapters.NewNoopAIAdapter()
	default:
		logger.Fatal().Msg("no AI provider configured")
	}

	// ---- Telegram ----
	var bot adapter.TelegramBotAdapter
	if cfg.Runtime.Dev && os.Getenv("TELEGRAM_BOT_TOKEN") == "" && cfg.Bot.Token == "dev" {
		bot = tele.NewNoopBotAdapter(logger)
	} else {
		bot, err = tele.NewSender(cfg.Bot.Token, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram")
		}
	}

	// ---- Router + dispatcher ----
	router := application.NewRouter(bot, ai, langRepo, leadRepo, dedupRepo, texts, cfg.Leads.ChannelID, cfg.AI.Provider, logger)
	dispatcher := application.NewPoolDispatcher(cfg.Bot.Workers, cfg.Bot.QueueSize, logger)
	dispatcher.Start(ctx)

	// ---- Webhook server ----
	srv := httpapi.NewServer(&cfg.Bot, dispatcher, router, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
	dispatcher.Stop()
}
