package http

import (
	"time"

	"github.com/prairiesport/association-backend/internal/club"
)

type CreateClubRequest struct {
	Name         string `json:"name" binding:"required"`
	Community    string `json:"community" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

type UpdateClubRequest struct {
	Name         *string `json:"name"`
	Community    *string `json:"community"`
	ContactEmail *string `json:"contact_email"`
	IsActive     *bool   `json:"is_active"`
}

type ListClubsRequest struct {
	Name      string `form:"name"`
	Community string `form:"community"`

	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name community created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

type ClubResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Community    string  `json:"community"`
	ContactEmail *string `json:"contact_email,omitempty"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
}

func NewClubResponse(cl *club.Club) ClubResponse {
	return ClubResponse{
		ID:           cl.ID,
		Name:         cl.Name,
		Community:    cl.Community,
		ContactEmail: cl.ContactEmail,
		IsActive:     cl.IsActive,
		CreatedAt:    cl.CreatedAt.UTC().Format(time.RFC3339),
	}
}
