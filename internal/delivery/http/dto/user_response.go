package dto

import (
	"time"

	"career-sync/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileSkillResponse struct {
	Name     string `json:"name"`
	Level    string `json:"level"`
	Verified bool   `json:"verified"`
}

type EducationResponse struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        int    `json:"year,omitempty"`
}

type ProfileResponse struct {
	ID                   uuid.UUID              `json:"id"`
	UserID               uuid.UUID              `json:"user_id"`
	Title                string                 `json:"title"`
	Bio                  string                 `json:"bio"`
	Location             string                 `json:"location"`
	Experience           string                 `json:"experience"`
	Interests            []string               `json:"interests"`
	Skills               []ProfileSkillResponse `json:"skills"`
	Education            []EducationResponse    `json:"education"`
	CompletionPercentage int                    `json:"completion_percentage"`
	UpdatedAt            time.Time              `json:"updated_at"`
}

func UserFrom(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func ProfileFrom(p user.Profile) ProfileResponse {
	skills := make([]ProfileSkillResponse, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, ProfileSkillResponse{Name: s.Name, Level: string(s.Level), Verified: s.Verified})
	}
	education := make([]EducationResponse, 0, len(p.Education))
	for _, e := range p.Education {
		education = append(education, EducationResponse{Degree: e.Degree, Field: e.Field, Institution: e.Institution, Year: e.Year})
	}
	return ProfileResponse{
		ID:                   p.ID,
		UserID:               p.UserID,
		Title:                p.Title,
		Bio:                  p.Bio,
		Location:             p.Location,
		Experience:           string(p.Experience),
		Interests:            nonNilStrings(p.Interests),
		Skills:               skills,
		Education:            education,
		CompletionPercentage: p.CompletionPercentage(),
		UpdatedAt:            p.UpdatedAt,
	}
}
