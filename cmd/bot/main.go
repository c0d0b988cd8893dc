package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"guess-the-guild/internal/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	InitLogger()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	slog.Info("Configuration loaded",
		"store", cfg.StoreBackend,
		"guild_api", cfg.GuildAPIURL,
		"default_difficulty", cfg.DefaultDifficulty,
		"guild_scoped_commands", cfg.DiscordGuildID != "",
	)

	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}

	code := 0
	if err := app.Run(); err != nil {
		slog.Error("Failed to start application", "error", err)
		code = 1
	} else {
		WaitForShutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		slog.Error("Application shutdown error", "error", err)
		code = 1
	}
	return code
}
