package dto

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"omitempty,max=120"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileSkillRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	Level    string `json:"level" validate:"required,oneof=beginner intermediate advanced expert"`
	Verified bool   `json:"verified"`
}

type EducationRequest struct {
	Degree      string `json:"degree" validate:"max=120"`
	Field       string `json:"field" validate:"max=120"`
	Institution string `json:"institution" validate:"max=160"`
	Year        int    `json:"year" validate:"omitempty,min=1900,max=2100"`
}

type UpsertProfileRequest struct {
	Title      string                `json:"title" validate:"max=120"`
	Bio        string                `json:"bio" validate:"max=2000"`
	Location   string                `json:"location" validate:"max=120"`
	Experience string                `json:"experience" validate:"omitempty,oneof=fresher 0-2 2-5 5-10 10+"`
	Interests  []string              `json:"interests" validate:"max=30,dive,max=80"`
	Skills     []ProfileSkillRequest `json:"skills" validate:"max=50,dive"`
	Education  []EducationRequest    `json:"education" validate:"max=10,dive"`
}

type GenerateMatchesRequest struct {
	Limit int `json:"limit" validate:"omitempty,min=1"`
}
