package member

import (
	"context"
	"strings"
	"time"
)

// CreateRequest carries a new member registration from the back office.
type CreateRequest struct {
	MembershipNumber string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	ClubID           string
}

// UpdateRequest carries a partial member update. Nil fields are unchanged.
type UpdateRequest struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	ClubID    *string
	IsActive  *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Member, error)
	GetByNumber(ctx context.Context, membershipNumber string) (*Member, error)
	List(ctx context.Context, filter Filter) ([]*Member, int, error)
	Update(ctx context.Context, membershipNumber string, req UpdateRequest) (*Member, error)
	// MarkPaid records that dues for the given year were received. Applied
	// from payment webhooks, so it must tolerate replays.
	MarkPaid(ctx context.Context, id string, year int) error
	Deactivate(ctx context.Context, membershipNumber string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Member, error) {
	number := strings.TrimSpace(req.MembershipNumber)
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if number == "" || first == "" || last == "" || email == "" {
		return nil, ErrMissingFields
	}

	m := &Member{
		MembershipNumber: number,
		FirstName:        first,
		LastName:         last,
		Email:            email,
		IsActive:         true,
	}
	if p := strings.TrimSpace(req.Phone); p != "" {
		m.Phone = &p
	}
	if c := strings.TrimSpace(req.ClubID); c != "" {
		m.ClubID = &c
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) GetByNumber(ctx context.Context, membershipNumber string) (*Member, error) {
	return s.repo.GetByNumber(ctx, membershipNumber)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Member, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, membershipNumber string, req UpdateRequest) (*Member, error) {
	m, err := s.repo.GetByNumber(ctx, membershipNumber)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		m.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		m.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		m.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		p := strings.TrimSpace(*req.Phone)
		if p == "" {
			m.Phone = nil
		} else {
			m.Phone = &p
		}
	}
	if req.ClubID != nil {
		c := strings.TrimSpace(*req.ClubID)
		if c == "" {
			m.ClubID = nil
		} else {
			m.ClubID = &c
		}
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if m.FirstName == "" || m.LastName == "" || m.Email == "" {
		return nil, ErrMissingFields
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) MarkPaid(ctx context.Context, id string, year int) error {
	if year < 2000 || year > time.Now().Year()+2 {
		return ErrInvalidPaidYear
	}
	return s.repo.MarkPaid(ctx, id, year)
}

func (s *service) Deactivate(ctx context.Context, membershipNumber string) error {
	return s.repo.Deactivate(ctx, membershipNumber)
}
