package member

import (
	"net/http"
	"time"

	"github.com/prairiesport/association-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "member not found")
	ErrNumberTaken     = apperror.New(http.StatusConflict, "membership number already in use")
	ErrMissingFields   = apperror.New(http.StatusBadRequest, "missing required member fields")
	ErrInvalidInput    = apperror.New(http.StatusBadRequest, "invalid input parameters")
	ErrInactiveMember  = apperror.New(http.StatusConflict, "member is inactive")
	ErrInvalidPaidYear = apperror.New(http.StatusBadRequest, "invalid membership year")
)

// Member is one registered association member. MembershipNumber is the
// natural key the rest of the system refers to; ID is the storage key.
type Member struct {
	ID               string // UUID
	MembershipNumber string
	FirstName        string
	LastName         string
	Email            string
	Phone            *string
	ClubID           *string
	PaidThroughYear  *int
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName returns the member's display name.
func (m *Member) FullName() string {
	if m.FirstName == "" {
		return m.LastName
	}
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// PaidFor reports whether the member's dues cover the given year.
func (m *Member) PaidFor(year int) bool {
	return m.PaidThroughYear != nil && *m.PaidThroughYear >= year
}

// Filter defines filter options for listing members.
type Filter struct {
	MembershipNumber string
	Name             string
	Email            string
	ClubID           string
	IsActive         *bool // pointer distinguishes false from not set

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
