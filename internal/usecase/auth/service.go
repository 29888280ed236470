package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"career-sync/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

const (
	minPasswordLen = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
	maxNameLen       = 120
)

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Service owns career-sync account credentials. Returned users never carry
// the password hash.
type Service struct {
	users user.Repository
	cost  int
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		s.cost = cost
	}
	return s
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email, err := parseEmail(in.Email)
	if err != nil {
		return user.User{}, err
	}
	if err := checkPassword(in.Password); err != nil {
		return user.User{}, err
	}
	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) > maxNameLen {
		return user.User{}, fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, maxNameLen)
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: check email: %w", ErrInternal, err)
	}
	if taken {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: hash password: %w", ErrInternal, err)
	}

	account := user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, account); err != nil {
		// A concurrent registration can win the unique index between the
		// existence check and the insert.
		if taken, exErr := s.users.ExistsByEmail(ctx, email); exErr == nil && taken {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, fmt.Errorf("%w: create user: %w", ErrInternal, err)
	}

	created, err := s.users.GetUserByID(ctx, account.ID)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: reload user: %w", ErrInternal, err)
	}
	return withoutSecret(created), nil
}

// Login reports ErrInvalidCredentials for unknown emails and wrong passwords
// alike.
func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email, err := parseEmail(in.Email)
	if err != nil || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	account, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, user.ErrNotFound):
		return user.User{}, ErrInvalidCredentials
	case err != nil:
		return user.User{}, fmt.Errorf("%w: load user: %w", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	return withoutSecret(account), nil
}

// parseEmail accepts a bare address and returns it lowercased.
func parseEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Name != "" || addr.Address != raw {
		return "", fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	return strings.ToLower(addr.Address), nil
}

func checkPassword(pw string) error {
	switch {
	case len(strings.TrimSpace(pw)) < minPasswordLen:
		return fmt.Errorf("%w: password shorter than %d characters", ErrInvalidInput, minPasswordLen)
	case len(pw) > maxPasswordBytes:
		return fmt.Errorf("%w: password longer than %d bytes", ErrInvalidInput, maxPasswordBytes)
	}
	return nil
}

func withoutSecret(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
