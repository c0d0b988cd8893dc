package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoundsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guess_the_guild_rounds_started_total",
		Help: "The total number of rounds started",
	}, []string{"mode", "difficulty"})

	RoundFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guess_the_guild_round_fetch_failures_total",
		Help: "Rounds that could not be started because the guild listing failed",
	})

	Guesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guess_the_guild_guesses_total",
		Help: "Guesses that finished a round, by mode and result",
	}, []string{"mode", "result"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "guess_the_guild_active_sessions",
		Help: "Player sessions held in memory after the last janitor sweep",
	})

	NewRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guess_the_guild_new_records_total",
		Help: "The total number of personal records broken",
	})

	GuildAPIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "guild_api_request_duration_seconds",
		Help:    "Duration of guild API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})

	GuildAPIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guild_api_requests_total",
		Help: "Total number of guild API requests",
	}, []string{"endpoint", "status"})

	DiscordMessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_messages_sent_total",
		Help: "Total number of Discord game messages sent or edited",
	}, []string{"kind", "status"})
)
