package root

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"daily-tasks/internal/config"
	"daily-tasks/internal/logger"
	"daily-tasks/internal/repository"
	"daily-tasks/internal/service"
	"daily-tasks/internal/tracker"
)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg         config.Config
	log         *zap.Logger
	db          *gorm.DB
	users       *repository.UserRepository
	sessions    *service.SessionService
	leaderboard *service.LeaderboardService
	reminders   *service.ReminderService
}

func (a *app) profile() string {
	if profileFlag != "" {
		return profileFlag
	}
	return a.cfg.Profile
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		_ = log.Sync()
	}

	db, err := repository.NewDB(cfg.DatabaseURL, log)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("db: %w", err)
	}
	closers = append(closers, closeDB(db))

	stores, closeStores, err := openStores(ctx, cfg, db, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, closeStores)

	lbDB := db
	if cfg.LeaderboardDSN != "" {
		lbDB, err = repository.NewLeaderboardDB(cfg.LeaderboardDSN, log)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("leaderboard db: %w", err)
		}
		closers = append(closers, closeDB(lbDB))
	}
	leaderboard := service.NewLeaderboardService(repository.NewLeaderboardRepository(lbDB), log, cfg.SyncTimeout, cfg.LeaderboardLimit)
	// Background score syncs must finish before the databases close.
	closers = append(closers, leaderboard.Wait)

	sessions := service.NewSessionService(stores, tracker.SystemClock{Location: loc}, log)

	a := &app{
		cfg:         cfg,
		log:         log,
		db:          db,
		users:       repository.NewUserRepository(db),
		sessions:    sessions,
		leaderboard: leaderboard,
		reminders:   service.NewReminderService(sessions),
	}
	return a, cleanup, nil
}

// openStores picks the key-value backend for tracker state.
func openStores(ctx context.Context, cfg config.Config, db *gorm.DB, log *zap.Logger) (service.StoreProvider, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		client, err := repository.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("redis: %w", err)
		}
		log.Info("using redis store", zap.String("addr", cfg.RedisAddr), zap.String("prefix", cfg.RedisPrefix))
		return repository.NewRedisKV(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
	case config.StoreMemory:
		log.Warn("using in-memory store, state is lost on exit")
		return repository.NewMemoryKV(), func() {}, nil
	default:
		return repository.NewKVRepository(db), func() {}, nil
	}
}

func closeDB(db *gorm.DB) func() {
	return func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// withTracker opens the profile's session for a single command.
func withTracker(ctx context.Context, fn func(*app, *tracker.Tracker) error) error {
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return a.sessions.With(ctx, a.profile(), func(tr *tracker.Tracker) error {
		return fn(a, tr)
	})
}
