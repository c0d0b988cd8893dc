package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

type Config struct {
	Token                string
	DatabaseURL          string
	StoreBackend         string
	GuildAPIURL          string
	DefaultDifficulty    string
	ResultDelay          time.Duration
	RecordBannerDuration time.Duration
	RoundFetchRetries    int
	RoundFetchBackoff    time.Duration
	MetricsAddr          string
	DiscordGuildID       string
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	token := readSecret("discord_token")
	if token == "" {
		token = os.Getenv("DISCORD_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set (via secret or env var)")
	}

	dbURL := readSecret("database_url")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	cfg := &Config{
		Token:                token,
		DatabaseURL:          dbURL,
		StoreBackend:         strings.ToLower(envString("STORE_BACKEND", StoreBackendPostgres)),
		GuildAPIURL:          envString("GUILD_API_URL", "https://api.guild.xyz"),
		DefaultDifficulty:    envString("DEFAULT_DIFFICULTY", "easy"),
		ResultDelay:          envDuration("RESULT_DELAY", 4*time.Second),
		RecordBannerDuration: envDuration("RECORD_BANNER_DURATION", 4*time.Second),
		RoundFetchRetries:    envInt("ROUND_FETCH_RETRIES", 1),
		RoundFetchBackoff:    envDuration("ROUND_FETCH_BACKOFF", 500*time.Millisecond),
		MetricsAddr:          envString("METRICS_ADDR", ":2112"),
		DiscordGuildID:       envString("DISCORD_GUILD_ID", ""),
		SessionIdleTimeout:   envDuration("SESSION_IDLE_TIMEOUT", 15*time.Minute),
		SessionSweepInterval: envDuration("SESSION_SWEEP_INTERVAL", time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
