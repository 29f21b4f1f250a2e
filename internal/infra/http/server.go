// Package http exposes the webhook endpoint. The handler acknowledges every
// request with {"ok":true} no matter what happened inside: Telegram disables
// webhook URLs that do not answer quickly.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-course-bot/internal/application"
	"telegram-course-bot/internal/config"
	tele "telegram-course-bot/internal/infra/adapters/telegram"
	"telegram-course-bot/internal/infra/logging"
)

type Server struct {
	cfg        *config.BotConfig
	dispatcher application.Dispatcher
	router     *application.Router
	log        *zerolog.Logger

	server *http.Server
}

func NewServer(cfg *config.BotConfig, dispatcher application.Dispatcher, router *application.Router, logger *zerolog.Logger) *Server {
	return &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		router:     router,
		log:        logger,
	}
}

// Handler builds the route tree. Split from Start so tests can drive it with
// httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Post(s.cfg.WebhookPath, s.handleWebhook)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.Handler(),
	}
	s.log.Info().Str("addr", s.server.Addr).Str("path", s.cfg.WebhookPath).Msg("webhook server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleWebhook(w http.ResponseWriter, req *http.Request) {
	// The acknowledgement never depends on what the body contained.
	defer s.ack(w)

	var raw tgbotapi.Update
	if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
		s.log.Warn().Err(err).Msg("undecodable update body")
		return
	}

	up := tele.FromUpdate(&raw)
	traceID := uuid.NewString()

	// Routing runs detached; the request context is about to die with the
	// response, so only the trace id crosses over.
	s.dispatcher.Submit(func(ctx context.Context) {
		ctx = logging.WithTraceID(ctx, traceID)
		s.router.HandleUpdate(ctx, up)
	})
}

func (s *Server) ack(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
