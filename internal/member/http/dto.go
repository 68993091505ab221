package http

import (
	"time"

	"github.com/prairiesport/association-backend/internal/member"
)

type CreateMemberRequest struct {
	MembershipNumber string `json:"membership_number" binding:"required"`
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	ClubID           string `json:"club_id"`
}

type UpdateMemberRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	ClubID    *string `json:"club_id"`
	IsActive  *bool   `json:"is_active"`
}

type ListMembersRequest struct {
	MembershipNumber string `form:"membership_number"`
	Name             string `form:"name"`
	Email            string `form:"email"`
	ClubID           string `form:"club_id"`
	IsActive         *bool  `form:"is_active"`

	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=membership_number last_name created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

type MemberResponse struct {
	ID               string  `json:"id"`
	MembershipNumber string  `json:"membership_number"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone,omitempty"`
	ClubID           *string `json:"club_id,omitempty"`
	PaidThroughYear  *int    `json:"paid_through_year,omitempty"`
	IsActive         bool    `json:"is_active"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

func NewMemberResponse(m *member.Member) MemberResponse {
	return MemberResponse{
		ID:               m.ID,
		MembershipNumber: m.MembershipNumber,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Phone:            m.Phone,
		ClubID:           m.ClubID,
		PaidThroughYear:  m.PaidThroughYear,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
