package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kberg/flashdeck/internal/ai"
	"github.com/kberg/flashdeck/internal/api"
	"github.com/kberg/flashdeck/internal/config"
	"github.com/kberg/flashdeck/internal/db"
	"github.com/kberg/flashdeck/internal/jobs"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/realtime"
	"github.com/kberg/flashdeck/internal/repository/sqlite"
	"github.com/kberg/flashdeck/internal/scheduler"
	"github.com/kberg/flashdeck/internal/services"
	"github.com/kberg/flashdeck/internal/session"
	"github.com/kberg/flashdeck/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("FlashDeck Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("generation_worker_count=%d", cfg.GenerationWorkerCount)
	log.Debug("generation_queue_size=%d", cfg.GenerationQueueSize)
	log.Debug("session_ttl_minutes=%d", cfg.SessionTTLMinutes)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	categoryRepo := sqlite.NewCategoryRepository(database.DB)
	flashcardRepo := sqlite.NewFlashcardRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	statusRepo := sqlite.NewStatusRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)
	groupRepo := sqlite.NewGroupRepository(database.DB)
	achievementRepo := sqlite.NewAchievementRepository(database.DB)

	// Background infrastructure
	hub := realtime.NewHub(log, 0)
	defer hub.Close()

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	generationPool := worker.NewPool(cfg.GenerationWorkerCount, cfg.GenerationQueueSize)
	generator := ai.NewClient(cfg.OpenAIKey, cfg.OpenAIURL, cfg.OpenAIModel)
	queue := jobs.NewWorkerQueue(importPool, generationPool, flashcardRepo, generator, hub)

	store := session.NewStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)

	// Services
	statsService := services.NewStatsService(statsRepo, sessionRepo, userRepo)
	achievementService := services.NewAchievementService(achievementRepo, statsRepo, statsService)
	categoryService := services.NewCategoryService(categoryRepo)
	flashcardService := services.NewFlashcardService(flashcardRepo, categoryRepo)
	studyService := services.NewStudyService(store, flashcardRepo, categoryRepo, sessionRepo, statusRepo, achievementService)
	groupService := services.NewGroupService(groupRepo, hub)
	importService := services.NewImportService(categoryRepo, queue)
	generationService := services.NewGenerationService(userRepo, categoryRepo, queue)
	userService := services.NewUserService(userRepo)

	srv := &api.Server{
		DB:                 database,
		Hub:                hub,
		Users:              userRepo,
		CategoryService:    categoryService,
		FlashcardService:   flashcardService,
		StudyService:       studyService,
		StatsService:       statsService,
		GroupService:       groupService,
		AchievementService: achievementService,
		ImportService:      importService,
		GenerationService:  generationService,
		UserService:        userService,
		JWTSecret:          cfg.JWTSecret,
		AllowedOrigins:     strings.Split(cfg.AllowedOrigins, ","),
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)
	generationPool.Start(ctx)

	sched := scheduler.New(
		store,
		statsService,
		time.Duration(cfg.SweepIntervalMinutes)*time.Minute,
		cfg.StreakSnapshotAt,
	)
	sched.Start()

	httpServer := &http.Server{
		Addr:        cfg.Addr,
		Handler:     srv.Routes(),
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: SSE streams stay open indefinitely.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	sched.Stop()

	log.Debug("stopping worker pools")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("waiting for import pool")
	importPool.Stop()
	log.Debug("waiting for generation pool")
	generationPool.Stop()

	log.Info("===========================================")
	log.Info("FlashDeck Server Stopped")
	log.Info("===========================================")
}
