package root

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"daily-tasks/internal/bot"
	"daily-tasks/internal/service"
)

func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot with scheduled reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.cfg.RequireTelegram(); err != nil {
				return err
			}
			loc, err := a.cfg.Location()
			if err != nil {
				return err
			}

			telegramBot, err := bot.New(a.cfg.TelegramToken, a.log, a.users, a.sessions, a.leaderboard, a.reminders, &a.cfg)
			if err != nil {
				return err
			}

			scheduler := service.NewSchedulerService(loc, a.log)
			sendReports := func() {
				jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := telegramBot.SendDailyReports(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
					a.log.Error("send reports", zap.Error(err))
				}
			}

			var mu sync.Mutex
			var reportID cron.EntryID
			scheduleReports := func(interval time.Duration) error {
				mu.Lock()
				defer mu.Unlock()
				id, err := scheduler.ScheduleInterval(interval, sendReports)
				if err != nil {
					return err
				}
				if reportID != 0 {
					scheduler.Remove(reportID)
				}
				reportID = id
				a.log.Info("reports scheduled", zap.Duration("every", interval))
				return nil
			}
			if a.cfg.ReportInterval > 0 {
				if err := scheduleReports(a.cfg.ReportInterval); err != nil {
					return err
				}
			}
			telegramBot.OnIntervalChange(scheduleReports)

			if a.cfg.ReminderTime != "" {
				if _, err := scheduler.ScheduleDaily(a.cfg.ReminderTime, sendReports); err != nil {
					return err
				}
				a.log.Info("daily reminder scheduled", zap.String("at", a.cfg.ReminderTime))
			}
			if a.cfg.LeaderboardRefresh > 0 {
				if _, err := scheduler.ScheduleInterval(a.cfg.LeaderboardRefresh, func() {
					a.leaderboard.Refresh(context.Background())
				}); err != nil {
					return err
				}
			}

			a.leaderboard.Refresh(ctx)
			scheduler.Start()
			defer scheduler.Stop()
			if reportID != 0 {
				a.log.Info("next report", zap.Time("at", scheduler.Next(reportID)))
			}

			a.log.Info("daily tasks bot started", zap.Int("jobs", scheduler.Len()))
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			a.log.Info("shutdown complete")
			return nil
		},
	}
}
