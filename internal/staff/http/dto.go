package http

import (
	"time"

	"github.com/prairiesport/association-backend/internal/staff"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	Account     AccountResponse `json:"account"`
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

type UpdateAccountRequest struct {
	DisplayName *string `json:"display_name"`
	IsAdmin     *bool   `json:"is_admin"`
	IsActive    *bool   `json:"is_active"`
}

type ListAccountsRequest struct {
	Email    string `form:"email"`
	IsActive *bool  `form:"is_active"`

	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type AccountResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name,omitempty"`
	IsAdmin     bool    `json:"is_admin"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
}

func NewAccountResponse(a *staff.Account) AccountResponse {
	resp := AccountResponse{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		IsAdmin:     a.IsAdmin,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if a.LastLoginAt != nil {
		t := a.LastLoginAt.UTC().Format(time.RFC3339)
		resp.LastLoginAt = &t
	}
	return resp
}
