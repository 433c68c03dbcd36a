package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/api"
	"taskboard/internal/config"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("failed to close database", zap.Error(err))
			}
		}()
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	projectSvc := service.NewProjectService(projectRepo)
	taskSvc := service.NewTaskService(taskRepo, reminderRepo, projectRepo, userRepo)

	scheduler := service.NewSchedulerService(time.Local)
	sweep := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := taskSvc.MarkOverdue(jobCtx, time.Now())
		if err != nil {
			zap.L().Error("overdue sweep failed", zap.Error(err))
			return
		}
		if n > 0 {
			zap.L().Info("overdue sweep", zap.Int64("tasks_marked", n))
		}
	}
	if cfg.SweepInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.SweepInterval, sweep); err != nil {
			logger.Fatal("schedule overdue sweep", zap.Error(err))
		}
	} else if _, err := scheduler.ScheduleDaily(cfg.SweepTime, sweep); err != nil {
		logger.Fatal("schedule overdue sweep", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.New()
	r.Use(gin.Recovery(), api.GinZapMiddleware(logger))
	api.RegisterRoutes(
		r,
		authSvc,
		api.NewHealthHandler(db),
		api.NewAuthHandler(authSvc),
		api.NewProjectHandler(projectSvc),
		api.NewTaskHandler(taskSvc),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
