package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minhokang/signal-backend-go/internal/api"
	"github.com/minhokang/signal-backend-go/internal/config"
	"github.com/minhokang/signal-backend-go/internal/database"
	"github.com/minhokang/signal-backend-go/internal/recorder"
	"github.com/minhokang/signal-backend-go/internal/repository"
	"github.com/minhokang/signal-backend-go/internal/service"
	"github.com/minhokang/signal-backend-go/internal/stream"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer db.Close()

	migrations := database.NewMigrationManager(db, cfg.MigrationsPath)
	if err := migrations.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	sessionRepo := repository.NewSessionRepository(db)
	recordRepo := repository.NewRecordRepository(db)

	bus := stream.NewBus()
	defer bus.Close()

	rec := recorder.New(sessionRepo, recordRepo, bus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rec.Run(ctx)

	if cfg.Simulate {
		sim := stream.NewSimulator(bus, time.Second)
		go sim.Run(ctx)
	}

	router := api.SetupRouter(cfg, api.Deps{
		Sessions:  service.NewSessionService(sessionRepo, recordRepo),
		Transfer:  service.NewTransferService(sessionRepo, recordRepo),
		Analytics: service.NewAnalyticsService(sessionRepo, recordRepo),
		Recorder:  rec,
		Bus:       bus,
	})

	// Stop the recorder and the simulator on shutdown signals
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
