package v1

import (
	"career-sync/internal/delivery/http/handler"
	"career-sync/internal/delivery/http/middleware"
	"career-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Career  *handler.CareerHandler
	Profile *handler.ProfileHandler
	Match   *handler.MatchHandler
	WS      *ws.Handler
	AuthMW  *middleware.AuthMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Career != nil {
		h.Career.RegisterPublicRoutes(r)
	}
	if h.AuthMW == nil {
		return
	}

	protected := r.Group("", h.AuthMW.Middleware())
	if h.Career != nil {
		h.Career.RegisterProtectedRoutes(protected)
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(protected)
	}
	if h.Match != nil {
		h.Match.RegisterRoutes(protected)
	}
}
