package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/config"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/mail"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository/sqlitedb"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/scheduler"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/server/handlers"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/server/router"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/billing"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/export"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/registry"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/reminders"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/statistics"
	"github.com/fz7jjhvdk4-create/Bimanager/pkg/clients/geocode"
	"github.com/fz7jjhvdk4-create/Bimanager/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := sqlitedb.Open(cfg.Database.Path)
	if err != nil {
		baseLogger.Fatal("failed to open database", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			baseLogger.Error("failed to close database", zap.Error(err))
		}
	}()

	var sink billing.LedgerSink
	if cfg.Sheets.Enabled() {
		appender, err := export.NewSheetAppender(context.Background(), export.SheetsConfig{
			CredentialsPath: cfg.Sheets.CredentialsPath,
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			SheetRange:      cfg.Sheets.SheetRange,
		}, baseLogger.Named("export.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets mirror", zap.Error(err))
		}
		sink = appender
		baseLogger.Info("google sheets ledger mirror enabled")
	}

	var geocoder registry.Geocoder
	if cfg.Geocode.Enabled() {
		geocoder = geocode.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent)
		baseLogger.Info("apiary geocoding enabled")
	}

	billingSvc := billing.NewService(store, sink, baseLogger.Named("svc.billing"))
	registrySvc := registry.NewService(store, geocoder, baseLogger.Named("svc.registry"))
	reminderSvc := reminders.NewService(store, baseLogger.Named("svc.reminders"))
	statisticsSvc := statistics.NewService(store, baseLogger.Named("svc.statistics"))

	engine := router.New(router.Handlers{
		Registry:   handlers.NewRegistryHandler(registrySvc, baseLogger.Named("handlers.registry")),
		Billing:    handlers.NewBillingHandler(billingSvc, baseLogger.Named("handlers.billing")),
		Reminders:  handlers.NewReminderHandler(reminderSvc, baseLogger.Named("handlers.reminders")),
		Statistics: handlers.NewStatisticsHandler(statisticsSvc, baseLogger.Named("handlers.statistics")),
	}, baseLogger.Named("router"))

	if cfg.Mail.Enabled() {
		sender := mail.NewSender(mail.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			User:     cfg.Mail.User,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			To:       cfg.Mail.To,
		})
		sched := scheduler.NewScheduler(reminderSvc, sender, cfg.Reminders.CronSchedule, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	} else {
		baseLogger.Warn("smtp not configured, reminder digest disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
