package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskpulse/daily-tracker/internal/api"
	"github.com/taskpulse/daily-tracker/internal/core/service"
	"github.com/taskpulse/daily-tracker/internal/infrastructure/config"
	"github.com/taskpulse/daily-tracker/internal/infrastructure/db/redis"
	"github.com/taskpulse/daily-tracker/internal/infrastructure/db/sqlite"
	"github.com/taskpulse/daily-tracker/internal/infrastructure/mail"
	"github.com/taskpulse/daily-tracker/internal/infrastructure/queue"
	"github.com/taskpulse/daily-tracker/internal/infrastructure/ws"
	"github.com/taskpulse/daily-tracker/internal/scheduler"
	"github.com/taskpulse/daily-tracker/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	db, err := sqlite.Connect(cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("sqlite connection failed")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := sqlite.NewUserRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	statsRepo := sqlite.NewStatsRepository(db)
	notifRepo := sqlite.NewNotificationRepository(db)
	otpStore := redis.NewOTPStore(rdb)

	// --- Outbound mail ---
	sender := mail.NewSender(mail.Config{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	})
	dispatcher := queue.NewDispatcher(0, sender, log)
	dispatcher.Start(ctx)

	// --- Live notification feed ---
	hub := ws.NewHub(log)

	// --- Services ---
	notifService := service.NewNotificationService(notifRepo, hub, log)
	authService := service.NewAuthService(userRepo, otpStore, sender, cfg.JWTSecret, time.Hour, log)
	taskService := service.NewTaskService(taskRepo, notifService, log)
	statsService := service.NewStatsService(statsRepo, log)
	userService := service.NewUserService(userRepo, notifService, log)

	// --- Reminder cron ---
	reminder := scheduler.NewReminder(userRepo, dispatcher, cfg.Reminder.Schedule, cfg.Reminder.CC, log)
	if err := reminder.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("reminder scheduler failed to start")
	}
	defer reminder.Stop()

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		DB:            db,
		Redis:         rdb,
		JWTSecret:     cfg.JWTSecret,
		Auth:          authService,
		Tasks:         taskService,
		Stats:         statsService,
		Users:         userService,
		Notifications: notifService,
		Hub:           hub,
		Log:           log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
