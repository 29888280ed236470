package handler

import (
	"errors"

	"career-sync/internal/delivery/http/dto"
	"career-sync/internal/delivery/http/middleware"
	"career-sync/internal/domain/user"
	"career-sync/internal/pkg/response"
	"career-sync/internal/usecase"
	ucuser "career-sync/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Get("/me/profile", h.GetProfile)
	r.Put("/me/profile", h.UpsertProfile)
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	usr, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.UserFrom(usr))
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ProfileFrom(p))
}

func (h *ProfileHandler) UpsertProfile(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.UpsertProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := ucuser.UpsertProfileInput{
		Title:      req.Title,
		Bio:        req.Bio,
		Location:   req.Location,
		Experience: req.Experience,
		Interests:  req.Interests,
		Skills:     make([]ucuser.SkillInput, 0, len(req.Skills)),
		Education:  make([]user.Education, 0, len(req.Education)),
	}
	for _, s := range req.Skills {
		in.Skills = append(in.Skills, ucuser.SkillInput{Name: s.Name, Level: s.Level, Verified: s.Verified})
	}
	for _, e := range req.Education {
		in.Education = append(in.Education, user.Education{Degree: e.Degree, Field: e.Field, Institution: e.Institution, Year: e.Year})
	}

	p, err := h.uc.UpsertProfile(c.Context(), userID, in)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile saved", dto.ProfileFrom(p))
}

func mapProfileUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucuser.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, ucuser.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucuser.ErrProfileIncomplete):
		return middleware.NewAppError(fiber.StatusBadRequest, "Please complete your profile first", map[string]string{"code": "INCOMPLETE_PROFILE"}, err)
	case errors.Is(err, ucuser.ErrInvalidExperience):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid experience level", nil, err)
	case errors.Is(err, ucuser.ErrInvalidSkillLevel):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid skill level", nil, err)
	case errors.Is(err, ucuser.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
