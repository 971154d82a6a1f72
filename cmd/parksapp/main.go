package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/BarzMap/ParksApp/internal/di"
)

func main() {
	mode := flag.String("mode", "server", "Режим запуска приложения: server или worker")
	flag.Parse()

	// bootstrap-логгер: используется только на этапе инициализации,
	// пока основной логгер еще не сконфигурирован
	bootstrapLogger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	bootstrapLogger.Info("starting application", "mode", *mode)

	application, err := di.BuildApp()
	if err != nil {
		bootstrapLogger.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	if err := application.Run(*mode); err != nil {
		application.Logger().Error("application run failed", "error", err)
		os.Exit(1)
	}
}
