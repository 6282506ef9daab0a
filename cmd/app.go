package cmd

import (
	"fmt"

	"rods-warden/core/config"
	"rods-warden/core/logger"
	"rods-warden/core/store"
	"rods-warden/core/store/gateway"

	"go.uber.org/zap"
)

// app bundles the pieces every command needs: configuration, a logger and a
// pool of grid clients.
type app struct {
	cfg  *config.Config
	log  *zap.Logger
	pool *store.Pool
}

// newApp loads configuration, builds the logger and opens a pool of the given
// number of grid clients. A size of zero takes the configured default.
func newApp(clients int) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if clients <= 0 {
		clients = cfg.Reconcile.Clients
	}

	pool, err := store.NewPool(clients, func() (store.Client, error) {
		g, err := gateway.New(cfg.Storage, cfg.Database)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open grid clients: %w", err)
	}

	return &app{cfg: cfg, log: log, pool: pool}, nil
}

func (a *app) close() {
	a.pool.Close()
	_ = a.log.Sync()
}
