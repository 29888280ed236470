package handler

import (
	"context"
	"errors"
	"time"

	"career-sync/internal/delivery/http/dto"
	"career-sync/internal/delivery/http/middleware"
	"career-sync/internal/pkg/response"
	"career-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	defaultGenerateLimit = 10
	maxGenerateLimit     = 20
)

// MatchHandlerConfig bounds generation requests. A zero Timeout adds no bound
// beyond the request context; non-positive limits fall back to 10 and 20.
type MatchHandlerConfig struct {
	Timeout      time.Duration
	DefaultLimit int
	MaxLimit     int
}

type MatchHandler struct {
	matches  usecase.CareerMatchingUsecase
	profiles usecase.ProfileUsecase
	cfg      MatchHandlerConfig
}

func NewMatchHandler(matches usecase.CareerMatchingUsecase, profiles usecase.ProfileUsecase, cfg MatchHandlerConfig) *MatchHandler {
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = maxGenerateLimit
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaultGenerateLimit
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	return &MatchHandler{matches: matches, profiles: profiles, cfg: cfg}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/matches", h.List)
	r.Post("/matches/generate", h.Generate)
}

func (h *MatchHandler) List(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	if _, err := h.profiles.GetCompleteProfile(c.Context(), userID); err != nil {
		return mapProfileUsecaseError(err)
	}

	items, err := h.matches.GetEnhancedCareerMatches(c.Context(), userID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.EnhancedMatchesFrom(items))
}

func (h *MatchHandler) Generate(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.GenerateMatchesRequest
	if len(c.Body()) > 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
	}
	limit := req.Limit
	if limit <= 0 {
		limit = h.cfg.DefaultLimit
	}
	if limit > h.cfg.MaxLimit {
		limit = h.cfg.MaxLimit
	}

	profile, err := h.profiles.GetCompleteProfile(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	ctx := c.Context()
	if h.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.Timeout)
		defer cancel()
	}

	results, err := h.matches.GenerateCareerMatches(ctx, userID, profile, limit)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	out := make([]dto.EnhancedMatchResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.EnhancedMatchFrom(usecase.ToEnhancedMatch(r)))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.GenerateMatchesResponse{
		Message: "Career matches generated successfully",
		Matches: out,
	})
}

func mapMatchingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrNoCareersAvailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "No careers available for matching", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, context.DeadlineExceeded):
		return middleware.NewAppError(fiber.StatusGatewayTimeout, "Match generation timed out", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
