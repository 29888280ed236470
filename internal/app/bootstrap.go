package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-sync/internal/config"
	"career-sync/internal/delivery/http/handler"
	"career-sync/internal/delivery/http/middleware"
	"career-sync/internal/delivery/http/routes"
	v1 "career-sync/internal/delivery/http/routes/v1"
	"career-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, starts the websocket hub and returns a
// cleanup func that stops the hub before releasing connections.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build container: %w", err)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		c.Hub.Run(hubCtx)
	}()

	app := New(cfg, c)
	cleanup := func() error {
		stopHub()
		<-hubDone
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger.Named("http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	checks := map[string]handler.Pinger{"postgres": c.DB}
	if c.Cache.Available() {
		checks["redis"] = c.Cache
	}

	authMW := middleware.NewAuthMiddleware(c.JWT)
	registry := routes.NewRegistry(
		handler.NewHealthHandler(checks),
		v1.Handlers{
			Auth:    handler.NewAuthHandler(c.Auth),
			Career:  handler.NewCareerHandler(c.Catalog),
			Profile: handler.NewProfileHandler(c.Profile),
			Match:   handler.NewMatchHandler(c.Matching, c.Profile, handler.MatchHandlerConfig{
				Timeout:      c.Config.Matching.Timeout,
				DefaultLimit: c.Config.Matching.DefaultLimit,
				MaxLimit:     c.Config.Matching.MaxLimit,
			}),
			WS:      ws.NewHandler(c.Hub, c.Logger.Named("ws"), c.Config.App.AllowedOrigins, middleware.UserIDFromCtx),
			AuthMW:  authMW,
		},
	)
	registry.Register(app)
}

var errEmptyPort = errors.New("empty HTTP port")

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", errEmptyPort
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
