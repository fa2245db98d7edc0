package main

import (
	"context"
	"fmt"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/AN0DA/JobTrackr-sub000/internal/config"
	"github.com/AN0DA/JobTrackr-sub000/internal/database"
	"github.com/AN0DA/JobTrackr-sub000/internal/engine"
	"github.com/AN0DA/JobTrackr-sub000/internal/handler"
	"github.com/AN0DA/JobTrackr-sub000/internal/logger"
	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/internal/store/memory"
	"github.com/AN0DA/JobTrackr-sub000/internal/store/sqlstore"
)

type application struct {
	Logger  *zap.Logger
	Config  *config.Config
	Store   store.Store
	Handler *handler.Handler
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil
	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		st := sqlstore.New(db, sqlstore.DialectSQLite)
		if err := st.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return st, nil
	case config.BackendPostgres:
		db, err := database.OpenPostgres(cfg.Store.DSN, cfg.Store.MaxOpenConns, cfg.Store.MaxIdleConns, cfg.Store.MaxIdleTime)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		st := sqlstore.New(db, sqlstore.DialectPostgres)
		if err := st.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s backend=%s", cfg.Env, cfg.Store.Backend)

	st, err := openStore(ctx, cfg)
	if err != nil {
		sugar.Fatal(err)
	}
	defer st.Close()

	h := &handler.Handler{
		Logger:    log,
		Store:     st,
		Lifecycle: engine.NewLifecycle(st, log),
		Ledger:    engine.NewLedger(st),
		Timeline:  engine.NewTimeline(st),
		Analytics: engine.NewAnalytics(st),
	}

	app := &application{
		Logger:  log,
		Config:  cfg,
		Store:   st,
		Handler: h,
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
