package club

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name         string
	Community    string
	ContactEmail string
}

type UpdateRequest struct {
	Name         *string
	Community    *string
	ContactEmail *string
	IsActive     *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Club, error)
	GetByID(ctx context.Context, id string) (*Club, error)
	List(ctx context.Context, filter Filter) ([]*Club, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Club, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Club, error) {
	name := strings.TrimSpace(req.Name)
	community := strings.TrimSpace(req.Community)
	if name == "" || community == "" {
		return nil, ErrMissingFields
	}

	cl := &Club{
		Name:      name,
		Community: community,
		IsActive:  true,
	}
	if e := strings.ToLower(strings.TrimSpace(req.ContactEmail)); e != "" {
		cl.ContactEmail = &e
	}

	if err := s.repo.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Club, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Club, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Club, error) {
	cl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cl.Name = strings.TrimSpace(*req.Name)
	}
	if req.Community != nil {
		cl.Community = strings.TrimSpace(*req.Community)
	}
	if req.ContactEmail != nil {
		e := strings.ToLower(strings.TrimSpace(*req.ContactEmail))
		if e == "" {
			cl.ContactEmail = nil
		} else {
			cl.ContactEmail = &e
		}
	}
	if req.IsActive != nil {
		cl.IsActive = *req.IsActive
	}

	if cl.Name == "" || cl.Community == "" {
		return nil, ErrMissingFields
	}

	if err := s.repo.Update(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
