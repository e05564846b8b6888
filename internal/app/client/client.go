// Package client wires configuration, logging, storage, the API client and
// both stores into one application object.
package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ems/internal/api"
	"ems/internal/domain/auth"
	"ems/internal/platform/config"
	"ems/internal/platform/metrics"
	"ems/internal/platform/storage"
	"ems/internal/session"
	"ems/internal/store"
)

type App struct {
	Config  config.Config
	Logger  *zap.Logger
	Metrics *metrics.Collector
	Storage storage.Storage
	API     *api.Client
	Session *session.Store
	Store   *store.Store
}

type options struct {
	autoInit bool
	storage  storage.Storage
}

type Option func(*options)

// WithoutAutoInit keeps the data store idle after login or restore.
func WithoutAutoInit() Option {
	return func(o *options) { o.autoInit = false }
}

// WithStorage replaces the configured session backend.
func WithStorage(st storage.Storage) Option {
	return func(o *options) { o.storage = st }
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	o := options{autoInit: true}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.New()
	}

	st := o.storage
	if st == nil {
		var err error
		st, err = storage.Open(ctx, cfg.Session)
		if err != nil {
			return nil, fmt.Errorf("open session storage: %w", err)
		}
	}

	client, err := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger.Named("api")),
		api.WithMetrics(collector),
	)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	sess := session.New(st, client.Auth,
		session.WithLogger(logger.Named("session")),
		session.WithEmployeeLister(client.Employees),
	)
	client.SetTokenSource(sess)
	data := store.New(client, logger.Named("store"))

	if o.autoInit {
		sess.OnLogin(func(identity auth.Identity) {
			initCtx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
			defer cancel()
			if err := data.Init(initCtx, identity); err != nil {
				logger.Warn("initial load incomplete", zap.Error(err))
			}
		})
	}
	sess.OnLogout(data.Reset)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: collector,
		Storage: st,
		API:     client,
		Session: sess,
		Store:   data,
	}, nil
}

// Restore brings back a stored session, which also starts the initial
// loads when auto init is on.
func (a *App) Restore(ctx context.Context) session.State {
	return a.Session.Restore(ctx)
}

func (a *App) Close() error {
	_ = a.Logger.Sync()
	return a.Storage.Close()
}
