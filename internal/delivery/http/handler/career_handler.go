package handler

import (
	"errors"
	"strconv"
	"strings"

	"career-sync/internal/delivery/http/dto"
	"career-sync/internal/delivery/http/middleware"
	"career-sync/internal/pkg/response"
	"career-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CareerHandler struct {
	uc usecase.CatalogUsecase
}

func NewCareerHandler(uc usecase.CatalogUsecase) *CareerHandler {
	return &CareerHandler{uc: uc}
}

// RegisterPublicRoutes mounts the catalog endpoints that need no login.
func (h *CareerHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/careers", h.List)
	r.Get("/careers/search", h.Search)
}

func (h *CareerHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/careers/:career_id", h.Detail)
}

func (h *CareerHandler) List(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
	}

	page, err := h.uc.ListCareers(c.Context(), usecase.CareerListParams{Limit: limit, Offset: offset})
	if err != nil {
		return mapCatalogUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CareerListResponse{
		Careers: dto.CareersFrom(page.Careers),
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
}

func (h *CareerHandler) Search(c fiber.Ctx) error {
	var skills []string
	if raw := strings.TrimSpace(c.Query("skills")); raw != "" {
		skills = strings.Split(raw, ",")
	}

	res, err := h.uc.SearchCareers(c.Context(), usecase.CareerSearchParams{
		Query:    c.Query("q"),
		Industry: c.Query("industry"),
		Skills:   skills,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "At least one search parameter is required", nil, err)
		}
		return mapCatalogUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CareerSearchResponse{
		Careers: dto.CareersFrom(res.Careers),
		Total:   res.Total,
	})
}

func (h *CareerHandler) Detail(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	careerID, err := uuid.Parse(c.Params("career_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid career id", nil, err)
	}

	d, err := h.uc.GetCareerDetail(c.Context(), careerID, userID)
	if err != nil {
		return mapCatalogUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CareerDetailResponse{
		Career:     dto.CareerFrom(d.Career),
		MatchScore: dto.MatchScoreFrom(d.Match),
	})
}

func queryInt(c fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func mapCatalogUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrCareerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Career not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
