package main

import (
	"log"
	"log/slog"
	"os"

	root "github.com/Spranc-Labs/heyho-sync-be-sub000/cmd/root"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/config"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	config := config.LoadConfig()
	cmd := root.GetRootCmd(config)

	logger := setupLogger(config.Env)

	logger.Info("starting heyho sync backend", slog.String("env", config.Env))

	if len(os.Args) == 1 {
		cmd.SetArgs([]string{"serve"})
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}
