package expense

import (
	"context"
	"strings"
	"time"
)

type CreateRequest struct {
	Date        time.Time
	Payee       string
	Category    string
	AmountCents int64
	Note        string
}

type UpdateRequest struct {
	Date        *time.Time
	Payee       *string
	Category    *string
	AmountCents *int64
	Note        *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Expense, error)
	GetByID(ctx context.Context, id string) (*Expense, error)
	List(ctx context.Context, filter Filter) ([]*Expense, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Expense, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Expense, error) {
	payee := strings.TrimSpace(req.Payee)
	if payee == "" || req.Date.IsZero() {
		return nil, ErrMissingFields
	}
	if req.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	e := &Expense{
		Date:        req.Date,
		Payee:       payee,
		Category:    normalizeCategory(req.Category),
		AmountCents: req.AmountCents,
	}
	if n := strings.TrimSpace(req.Note); n != "" {
		e.Note = &n
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Expense, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Expense, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.Payee != nil {
		e.Payee = strings.TrimSpace(*req.Payee)
	}
	if req.Category != nil {
		e.Category = normalizeCategory(*req.Category)
	}
	if req.AmountCents != nil {
		e.AmountCents = *req.AmountCents
	}
	if req.Note != nil {
		n := strings.TrimSpace(*req.Note)
		if n == "" {
			e.Note = nil
		} else {
			e.Note = &n
		}
	}

	if e.Payee == "" || e.Date.IsZero() {
		return nil, ErrMissingFields
	}
	if e.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func normalizeCategory(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	switch c {
	case CategoryTravel, CategoryEquipment, CategoryVenue, CategoryCoaching:
		return c
	default:
		return CategoryOther
	}
}
