package staff

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/prairiesport/association-backend/internal/auth"
)

// Service defines business logic for back-office staff accounts.
type Service interface {
	Register(ctx context.Context, email, password, displayName string, isAdmin bool) (*Account, error)
	Login(ctx context.Context, email, password string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	List(ctx context.Context, filter Filter) ([]*Account, int, error)
	Update(ctx context.Context, id string, displayName *string, isAdmin, isActive *bool) (*Account, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new staff Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, email, password, displayName string, isAdmin bool) (*Account, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}

	if len(password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a := &Account{
		Email:        cleanEmail,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		IsActive:     true,
	}
	if d := strings.TrimSpace(displayName); d != "" {
		a.DisplayName = &d
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Account, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	a, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch staff account by email: %w", err)
	}

	if !a.IsActive {
		return nil, ErrInactiveAccount
	}

	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; login stands even if the timestamp write fails.
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, a.ID, now); err != nil {
		log.Printf("failed to update last login for %s: %v", a.ID, err)
	}

	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Account, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, displayName *string, isAdmin, isActive *bool) (*Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if displayName != nil {
		d := strings.TrimSpace(*displayName)
		if d == "" {
			a.DisplayName = nil
		} else {
			a.DisplayName = &d
		}
	}
	if isAdmin != nil {
		a.IsAdmin = *isAdmin
	}
	if isActive != nil {
		a.IsActive = *isActive
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
