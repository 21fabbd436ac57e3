package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"task-tracker/internal/bot"
	"task-tracker/internal/httpapi"
	"task-tracker/internal/model"
	"task-tracker/internal/service"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "serve",
		Short:       "Run the reminder daemon with the Telegram bot and HTTP API",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{daemonAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := a.logger
	logger.Info("snapshot loaded",
		zap.String("storage", a.cfg.Storage),
		zap.Bool("default_priority_created", a.loaded.DefaultCreated),
		zap.Int("delayed", a.loaded.Delayed),
		zap.Int("dropped_reminders", a.loaded.DroppedReminders),
	)
	if delayed := a.tasks.Stats().Delayed; delayed > 0 {
		logger.Warn("delayed tasks", zap.Int("count", delayed))
	}

	var telegramBot *bot.Bot
	if a.cfg.TelegramToken != "" {
		var err error
		telegramBot, err = bot.New(a.cfg, a.tasks, a.categories, a.reminders, logger.Named("bot"))
		if err != nil {
			return err
		}
		if err := telegramBot.SendDelayedAlert(ctx); err != nil {
			logger.Warn("delayed alert", zap.Error(err))
		}
	} else {
		logger.Info("telegram token not set, reminders are logged only")
	}

	scheduler := service.NewSchedulerService(time.Local, logger)
	if _, err := scheduler.ScheduleInterval(a.cfg.ReminderCheckInterval, func() {
		a.deliverReminders(ctx, telegramBot)
	}); err != nil {
		return err
	}
	if _, err := scheduler.ScheduleDaily("00:00", func() {
		a.refreshDelayed(ctx)
	}); err != nil {
		return err
	}
	if _, err := scheduler.ScheduleDaily(a.cfg.DailyReportTime, func() {
		a.refreshDelayed(ctx)
		if telegramBot == nil {
			return
		}
		jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := telegramBot.SendDailyReport(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("daily report", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	g, gctx := errgroup.WithContext(ctx)
	if telegramBot != nil {
		g.Go(func() error { return telegramBot.Start(gctx) })
	}
	if a.cfg.HTTPAddr != "" {
		if !a.verbose {
			gin.SetMode(gin.ReleaseMode)
		}
		handler := httpapi.NewHandler(a.tasks, a.categories, a.reminders, logger.Named("http"))
		router := httpapi.NewRouter(handler, logger.Named("http"))
		g.Go(func() error { return httpapi.Serve(gctx, a.cfg.HTTPAddr, router, logger) })
	}
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	logger.Info("task tracker started")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

func (a *app) deliverReminders(ctx context.Context, telegramBot *bot.Bot) {
	if telegramBot != nil {
		jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := telegramBot.SendDueReminders(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("send reminders", zap.Error(err))
		}
		return
	}
	for _, due := range a.reminders.CheckDue(time.Now()) {
		a.logger.Info("reminder due",
			zap.String("task", due.Task.Title),
			zap.String("kind", string(due.Reminder.Kind)),
			zap.String("date", due.Date.Format(model.DateLayout)),
		)
	}
}

func (a *app) refreshDelayed(ctx context.Context) {
	if _, err := a.tasks.RefreshDelayed(ctx); err != nil {
		a.logger.Error("refresh delayed tasks", zap.Error(err))
	}
}
