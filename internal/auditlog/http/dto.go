package http

import (
	"time"

	"github.com/prairiesport/association-backend/internal/auditlog"
)

type ListEntriesRequest struct {
	Keyword    string `form:"keyword"`
	ActorEmail string `form:"actor_email"`

	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

type EntryResponse struct {
	ID         string  `json:"id"`
	Action     string  `json:"action"`
	ActorEmail string  `json:"actor_email"`
	TargetID   *string `json:"target_id,omitempty"`
	Detail     *string `json:"detail,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func NewEntryResponse(e *auditlog.Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Action:     e.Action,
		ActorEmail: e.ActorEmail,
		TargetID:   e.TargetID,
		Detail:     e.Detail,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
