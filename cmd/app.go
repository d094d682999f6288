package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/voteroom/voteroom/internal/application/config"
	"github.com/voteroom/voteroom/internal/application/constant"
	"github.com/voteroom/voteroom/internal/application/metric"
	"github.com/voteroom/voteroom/internal/eventbus"
	"github.com/voteroom/voteroom/internal/infra/adapters/memory"
	"github.com/voteroom/voteroom/internal/infra/adapters/postgres"
	"github.com/voteroom/voteroom/internal/infra/adapters/postgres/repository"
	"github.com/voteroom/voteroom/internal/infra/ports/http/handlers"
	"github.com/voteroom/voteroom/internal/infra/ports/http/server"
	"github.com/voteroom/voteroom/internal/usecase"
)

func runApp() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(
				os.Stdout,
				&slog.HandlerOptions{Level: slog.LevelInfo},
			),
		),
	)

	cfg, err := config.New()
	if err != nil {
		slog.Error("parse config", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	slog.Info("Running app", slog.Bool("debug", cfg.Debug), slog.Duration("room_ttl", cfg.RoomTTL))

	var (
		roomRepo  usecase.RoomRepository
		voterRepo usecase.VoterRepository
	)

	if cfg.MemoryStore {
		slog.Warn("using in-memory store, nothing will survive a restart")

		voterRepo = memory.NewVoterRepository()
		roomRepo = memory.NewRoomRepository(voterRepo)
	} else {
		dbConn, err := postgres.NewPostgres(ctx, cfg.Postgres.DSN())
		if err != nil {
			slog.Error("connect to postgres", slog.Any(constant.Error, err))
			os.Exit(1)
		}
		defer dbConn.Close()

		roomRepo = repository.NewRoomRepo(dbConn)
		voterRepo = repository.NewVoterRepo(dbConn)
	}

	bus := eventbus.New()

	scheduler := usecase.NewExpiryScheduler(cfg.RoomTTL, roomRepo, bus)

	roomUsecase := usecase.NewRoomUsecase(roomRepo, voterRepo, bus, scheduler)
	voterUsecase := usecase.NewVoterUsecase(roomRepo, voterRepo, bus)

	roomHandler := handlers.NewRoomHandler(roomUsecase)
	voterHandler := handlers.NewVoterHandler(voterUsecase)
	liveHandler := handlers.NewLiveHandler(cfg, roomUsecase, bus)

	echoSrv := server.New(roomHandler, voterHandler, liveHandler)
	metricSrv := metric.NewServer()

	go func() {
		if err := metricSrv.Start(":" + cfg.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", slog.Any(constant.Error, err))
		}
	}()

	srvCh := make(chan error, 1)
	go func() {
		srvCh <- echoSrv.Start(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server due to context cancel")
	case err := <-srvCh:
		slog.Error(
			"HTTP server failed",
			slog.Any(constant.Error, err),
		)

		os.Exit(1)
	}

	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer timeoutCancel()

	if err := echoSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown server", slog.Any(constant.Error, err))
	}

	if err := metricSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown metrics server", slog.Any(constant.Error, err))
	}
}
