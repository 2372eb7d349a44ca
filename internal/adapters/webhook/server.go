// internal/adapters/webhook/server.go
package webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"openhours/internal/core/ports"
	"openhours/internal/core/usecases"
	"openhours/internal/platform/logx"
)

// Refresher re-fetches a facility schedule into the cache. Implemented by
// cache.CachedProvider.
type Refresher interface {
	Refresh(ctx context.Context, facilityID string, day time.Time) error
}

// Options configura el front-end HTTP.
type Options struct {
	CORSOrigins string

	// WarmInterval is how often catalog schedules are pre-fetched. Zero, or
	// a nil Refresher, disables the warmer.
	WarmInterval time.Duration

	// WarmTimeout bounds one warm run. Defaults to WarmInterval, or 30s.
	WarmTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown in Run.
	ShutdownTimeout time.Duration
}

// Server es el front-end conversacional: fulfillment para asistentes de voz
// más una API JSON de estado.
type Server struct {
	app       *fiber.App
	service   *usecases.StatusService
	catalog   ports.FacilityCatalog
	refresher Refresher
	cron      *cron.Cron
	opts      Options
	logger    logx.Logger
}

// New construye el servidor y registra las rutas.
func New(service *usecases.StatusService, catalog ports.FacilityCatalog, refresher Refresher, opts Options, logger logx.Logger) *Server {
	if logger == nil {
		logger = logx.New()
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}
	if opts.WarmTimeout <= 0 {
		opts.WarmTimeout = opts.WarmInterval
	}
	if opts.WarmTimeout <= 0 {
		opts.WarmTimeout = 30 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{
		service:   service,
		catalog:   catalog,
		refresher: refresher,
		opts:      opts,
		logger:    logger.With("component", "webhook"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "openhours",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
	}))
	s.app.Use(s.requestLogger)

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.handleHealth)

	v1 := s.app.Group("/v1")
	v1.Get("/facilities", s.handleFacilities)
	v1.Get("/facilities/:id/status", s.handleStatus)
	v1.Post("/fulfillment", s.handleFulfillment)
}

// App expone la app de fiber (tests vía app.Test).
func (s *Server) App() *fiber.App {
	return s.app
}

// Run escucha en addr hasta que ctx se cancela y luego apaga el servidor y
// el warmer.
func (s *Server) Run(ctx context.Context, addr string) error {
	if err := s.startWarmer(ctx); err != nil {
		return err
	}
	defer s.stopWarmer()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// requestLogger registra cada petición con logx.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	s.logger.Debug("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return err
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Err(err, "path", c.Path())
	}
	return c.Status(code).JSON(ErrorResponse{
		Message: "request failed",
		Error:   err.Error(),
	})
}

// ErrorResponse es el cuerpo de error común.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
