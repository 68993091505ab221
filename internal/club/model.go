package club

import (
	"net/http"
	"time"

	"github.com/prairiesport/association-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "club not found")
	ErrNameTaken     = apperror.New(http.StatusConflict, "club name already in use")
	ErrMissingFields = apperror.New(http.StatusBadRequest, "missing required club fields")
)

// Club represents one affiliated community club.
type Club struct {
	ID           string // UUID
	Name         string
	Community    string
	ContactEmail *string
	IsActive     bool
	CreatedAt    time.Time
}

// Filter defines filter options for listing clubs.
type Filter struct {
	Name      string
	Community string

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
