// Package devserver is an in-memory backend speaking the job-board REST
// contract. It backs local CLI runs and the SDK integration tests.
package devserver

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/Abraxas-365/hireboard/internal/ai"
	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	defaultSecret   = "hireboard-dev-secret"
	defaultTokenTTL = 24 * time.Hour
	maxUploadSize   = 10 << 20
)

// Config configures a Server
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	// Engine answers /api/ai; the keyword heuristic when nil
	Engine ai.Engine
	Now    func() time.Time
	Seed   bool
	// AccessLog enables the fiber request log
	AccessLog bool
	// Queue feeds the resume analysis workers; in-memory when nil
	Queue   Queue
	Workers int
}

// Server is the fiber application with its store
type Server struct {
	app      *fiber.App
	store    *Store
	tokens   *TokenService
	analyzer *Analyzer
	stop     context.CancelFunc
}

// New builds the application and registers every route
func New(cfg Config) *Server {
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultSecret
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.Engine == nil {
		cfg.Engine = ai.Heuristic{}
	}

	store := NewStore(cfg.Now)
	tokens := NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if cfg.Now != nil {
		tokens.now = cfg.Now
	}

	app := fiber.New(fiber.Config{
		AppName:               "Hireboard Dev API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             maxUploadSize + 1<<20,
		UnescapePath:          true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if cfg.Queue == nil {
		cfg.Queue = NewMemoryQueue(0)
	}
	analyzer := NewAnalyzer(store, cfg.Engine, cfg.Queue, cfg.Workers)
	ctx, stop := context.WithCancel(context.Background())
	analyzer.Start(ctx)

	handlers := NewHandlers(store, tokens, cfg.Engine, analyzer)
	RegisterRoutes(app, handlers, NewAuthMiddleware(tokens, store))

	if cfg.Seed {
		if err := Seed(store); err != nil {
			logx.Errorf("seeding failed: %v", err)
		}
	}

	return &Server{app: app, store: store, tokens: tokens, analyzer: analyzer, stop: stop}
}

// App exposes the fiber application, for app.Test in handler tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Store exposes the backing store
func (s *Server) Store() *Store {
	return s.store
}

// Tokens exposes the token service
func (s *Server) Tokens() *TokenService {
	return s.tokens
}

// Listen serves on addr until Shutdown
func (s *Server) Listen(addr string) error {
	logx.Infof("devserver listening on %s", addr)
	return s.app.Listen(addr)
}

// Serve serves on an existing listener until Shutdown
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops the server and the analysis workers gracefully
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()
	s.stop()
	s.analyzer.Wait()
	return err
}

// globalErrorHandler renders every failure in the errx response shape
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber errors (unknown route, body too large)
	if e, ok := err.(*fiber.Error); ok {
		code := "HTTP_" + strings.ReplaceAll(strings.ToUpper(utils.StatusMessage(e.Code)), " ", "_")
		return c.Status(e.Code).JSON(errx.New(code, errx.TypeForStatus(e.Code), e.Code, e.Message).ToHTTPResponse())
	}

	if e, ok := errx.As(err); ok {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorf("request %s %s failed: %v", c.Method(), c.Path(), err)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
