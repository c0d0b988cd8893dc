package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"guess-the-guild/internal/adapters/discord"
	"guess-the-guild/internal/adapters/discord/commands"
	"guess-the-guild/internal/adapters/discord/formatting"
	"guess-the-guild/internal/adapters/guildapi"
	"guess-the-guild/internal/adapters/guildapi/api"
	"guess-the-guild/internal/adapters/storage/memory"
	"guess-the-guild/internal/adapters/storage/postgres"
	"guess-the-guild/internal/config"
	"guess-the-guild/internal/core/domain"
	"guess-the-guild/internal/core/ports"
	"guess-the-guild/internal/core/services"
	"guess-the-guild/internal/core/services/game"
	"guess-the-guild/internal/core/services/rounds"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	config             *config.Config
	store              ports.KeyValueStore
	discord            *discordgo.Session
	games              *game.Manager
	janitor            *game.Janitor
	router             *commands.Router
	metricsServer      *http.Server
	janitorCtx         context.Context
	janitorCancel      context.CancelFunc
	registeredCommands []*discordgo.ApplicationCommand
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to connect to storage", "backend", cfg.StoreBackend, "error", err)
		return nil, err
	}

	session, err := discord.NewSession(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	defaultDifficulty, err := domain.ParseDifficulty(cfg.DefaultDifficulty)
	if err != nil {
		store.Close()
		return nil, err
	}

	fetcher := guildapi.NewAdapter(api.NewClient(cfg.GuildAPIURL))
	generator := rounds.NewGenerator(fetcher, rounds.Options{
		RetryAttempts: cfg.RoundFetchRetries,
		RetryBackoff:  cfg.RoundFetchBackoff,
	})

	publisher := discord.NewPublisher(session)
	games := game.NewManager(game.Dependencies{
		Store:    store,
		Rounds:   generator,
		Notifier: publisher,
		Config: game.Config{
			ResultDelay:          cfg.ResultDelay,
			RecordBannerDuration: cfg.RecordBannerDuration,
		},
	})

	botHandlers := &commands.BotHandler{
		Games:        games,
		Settings:     services.NewSettingsService(store, defaultDifficulty),
		Interactions: publisher,
	}
	router := newRouter(botHandlers)

	session.AddHandler(commands.ReadyHandler)
	session.AddHandler(router.HandleFunc())

	return &App{
		config:  cfg,
		store:   store,
		discord: session,
		games:   games,
		janitor: game.NewJanitor(games, cfg.SessionSweepInterval, cfg.SessionIdleTimeout, publisher),
		router:  router,
	}, nil
}

func newStore(ctx context.Context, cfg *config.Config) (ports.KeyValueStore, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		slog.Warn("Using in-memory store, scores are lost on restart")
		return memory.NewStore(), nil
	case config.StoreBackendPostgres:
		store, err := postgres.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newRouter(h *commands.BotHandler) *commands.Router {
	router := commands.NewRouter()
	router.Register(commands.CmdPlay, commands.WithRecover(h.Play))
	router.Register(commands.CmdScore, commands.WithRecover(h.Score))
	router.Register(commands.CmdSetDifficulty, commands.Chain(h.SetDifficulty, commands.WithRecover, commands.WithAdmin))
	router.RegisterComponent(formatting.RouteGuess, commands.WithRecover(h.Guess))
	router.RegisterComponent(formatting.RouteRetry, commands.WithRecover(h.Retry))
	return router
}

func (a *App) Run() error {
	a.startMetricsServer()

	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	appID := a.discord.State.User.ID
	a.registeredCommands = commands.RegisterCommands(a.discord, commands.GetApplicationCommands(), appID, a.config.DiscordGuildID)

	a.janitorCtx, a.janitorCancel = context.WithCancel(context.Background())
	go a.janitor.Start(a.janitorCtx)

	slog.Info("Guess the Guild is ready", "commands", len(a.registeredCommands))
	return nil
}

func (a *App) startMetricsServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	a.metricsServer = &http.Server{
		Addr:              a.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Metrics server listening", "addr", a.metricsServer.Addr)
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")
	var errs []error

	if a.janitorCancel != nil {
		a.janitorCancel()
	}

	if a.games != nil {
		a.games.Close()
	}

	if a.discord != nil {
		if a.config.DiscordGuildID != "" && a.discord.State != nil && a.discord.State.User != nil {
			commands.CleanupCommands(a.discord, a.registeredCommands, a.discord.State.User.ID, a.config.DiscordGuildID)
		}
		if err := a.discord.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close discord session: %w", err))
		}
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown metrics server: %w", err))
		}
	}

	if a.store != nil {
		a.store.Close()
	}

	return errors.Join(errs...)
}
