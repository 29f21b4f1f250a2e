package metrics

import (
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Inbound updates by kind (message/callback/edited/other/duplicate).",
		},
		[]string{"kind"},
	)

	sendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_sends_total",
			Help: "Outbound Telegram calls by kind and success.",
		},
		[]string{"kind", "success"},
	)

	leadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_leads_total",
			Help: "Completed enrollment forms forwarded to the leads channel.",
		},
	)

	aiLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_calls_latency_ms",
			Help:    "AI call latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"provider", "success"},
	)

	aiPromptTokens = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ai_prompt_tokens",
			Help:    "Prompt token counts of forwarded free-text questions.",
			Buckets: []float64{16, 32, 64, 128, 256, 512, 1024, 2048},
		},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			updatesTotal, sendsTotal, leadsTotal,
			aiLatencyMs, aiPromptTokens,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncUpdate(kind string) {
	updatesTotal.WithLabelValues(norm(kind)).Inc()
}

func IncSend(kind string, success bool) {
	sendsTotal.WithLabelValues(norm(kind), strconv.FormatBool(success)).Inc()
}

func IncLead() {
	leadsTotal.Inc()
}

func ObserveAICall(provider string, latencyMs int, success bool) {
	aiLatencyMs.WithLabelValues(norm(provider), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func ObservePromptTokens(n int) {
	aiPromptTokens.Observe(float64(n))
}
