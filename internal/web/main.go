package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/CryptoYield/CryptoYield/internal/config"
	logfiber "github.com/CryptoYield/CryptoYield/internal/logger/adapter/fiber"
	"github.com/CryptoYield/CryptoYield/internal/metrics"
	"github.com/CryptoYield/CryptoYield/internal/web/handler"
	"github.com/CryptoYield/CryptoYield/internal/web/handler/backups"
	"github.com/CryptoYield/CryptoYield/internal/web/handler/status"
	"github.com/CryptoYield/CryptoYield/internal/web/handler/systemreset"
	"github.com/CryptoYield/CryptoYield/internal/web/handler/systemsetup"
	"github.com/CryptoYield/CryptoYield/internal/web/handler/token"
	"github.com/CryptoYield/CryptoYield/internal/web/middleware/gate"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic.
	CheckAlivePath = "/checkalive"

	// MetricsPath serves the prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive answers 200 until a graceful shutdown began.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// ErrorHandler answers every error escaping a handler as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// New creates a new web service with the given dependencies.
func New(deps *handler.Deps) *Service {
	if deps == nil || deps.Config == nil {
		panic("config cannot be nil")
	}

	if deps.DB == nil {
		panic("db cannot be nil")
	}

	cfg := deps.Config

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   ErrorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(logfiber.New(logfiber.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: strings.Join([]string{
			strings.ToLower(fiber.HeaderAuthorization),
			handler.HeaderClientInfo,
			handler.HeaderAPIKey,
			strings.ToLower(fiber.HeaderContentType),
		}, ", "),
	}))

	app.Use(gate.New(gate.Config{
		DB: deps.DB,
		Exempt: []string{
			systemsetup.Path(cfg.Webserver.FunctionsPrefix),
			status.Path,
			CheckAlivePath,
			MetricsPath,
		},
	}))

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(metrics.Handler()))

	// init handlers, they register their own routes
	for _, h := range []handler.Service{
		new(status.Service),
		new(token.Service),
		new(systemsetup.Service),
		new(systemreset.Service),
		new(backups.Service),
	} {
		if err := h.Init(app, deps); err != nil {
			log.Fatal().Err(err).Msgf("failed to init handler %T", h)
		}
	}

	return service
}
