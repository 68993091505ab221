package auditlog

import (
	"net/http"
	"time"

	"github.com/prairiesport/association-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "log entry not found")
	ErrMissingFields = apperror.New(http.StatusBadRequest, "missing required log fields")
)

// Entry is one recorded back-office action. Append-only.
type Entry struct {
	ID         string // UUID
	Action     string // e.g. "booking.status.updated"
	ActorEmail string
	TargetID   *string
	Detail     *string
	CreatedAt  time.Time
}

// Filter defines filter options for listing log entries.
type Filter struct {
	Keyword    string
	ActorEmail string

	Page      int
	PageSize  int
	SortOrder string
}
