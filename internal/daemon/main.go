// Package daemon wires the configuration, database and services into the running process.
package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/auth"
	"github.com/CryptoYield/CryptoYield/internal/config"
	"github.com/CryptoYield/CryptoYield/internal/lock"
	"github.com/CryptoYield/CryptoYield/internal/metrics"
	"github.com/CryptoYield/CryptoYield/internal/reset"
	"github.com/CryptoYield/CryptoYield/internal/setup"
	"github.com/CryptoYield/CryptoYield/internal/web"
	"github.com/CryptoYield/CryptoYield/internal/web/handler"
	"github.com/CryptoYield/CryptoYield/internal/web/session"
)

const redisPingTimeout = 3 * time.Second

// Services are the workflows shared by the web service and the CLI.
type Services struct {
	Config *config.Config
	DB     *gorm.DB
	Auth   *auth.Service
	Setup  *setup.Service
	Reset  *reset.Service
	Locker lock.Locker
}

// Deps returns the web handler dependencies.
func (s *Services) Deps() *handler.Deps {
	return &handler.Deps{
		Config: s.Config,
		DB:     s.DB,
		Auth:   s.Auth,
		Setup:  s.Setup,
		Reset:  s.Reset,
	}
}

// NewServices builds the workflows on top of db.
func NewServices(cfg *config.Config, db *gorm.DB) (*Services, error) {
	locker, err := newLocker(cfg, db)
	if err != nil {
		return nil, err
	}

	observer := metrics.NewPrometheusObserver()
	authService := auth.NewService(db, []byte(cfg.Webserver.TokenSecret), cfg.Webserver.Session.ExpiryTime)

	return &Services{
		Config: cfg,
		DB:     db,
		Auth:   authService,
		Setup:  setup.NewService(db, locker, observer),
		Reset:  reset.NewService(db, authService, locker, observer),
		Locker: locker,
	}, nil
}

// newLocker returns the redis lease backend if enabled, else the settings store one.
func newLocker(cfg *config.Config, db *gorm.DB) (lock.Locker, error) {
	if !cfg.Redis.Enabled {
		return lock.NewStore(db, cfg.Lock.TTL), nil
	}

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Redis.Addr},
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to reach redis at %s", cfg.Redis.Addr)
	}

	log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis leases")

	return lock.NewRedis(rdb, cfg.Lock.TTL), nil
}

// Open opens the database and builds the services.
func Open(cfg *config.Config) (*Services, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	return NewServices(cfg, db)
}

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM and shuts down gracefully.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go func() {
		log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting web service")

		if err := d.webService.Start(addr); err != nil {
			log.Error().Err(err).Msg("web service stopped")
		}
	}()

	d.webService.WaitShutdown()

	return nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	services, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	session.Init(SessionStorage(cfg))

	return &Daemon{
		cfg:        cfg,
		webService: web.New(services.Deps()),
	}, nil
}
