package expense

import (
	"net/http"
	"time"

	"github.com/prairiesport/association-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "expense not found")
	ErrMissingFields = apperror.New(http.StatusBadRequest, "missing required expense fields")
	ErrInvalidAmount = apperror.New(http.StatusBadRequest, "amount must be a positive number of cents")
)

// Known expense categories. Category is free-form in storage; these are the
// values the back office offers.
const (
	CategoryTravel    = "travel"
	CategoryEquipment = "equipment"
	CategoryVenue     = "venue"
	CategoryCoaching  = "coaching"
	CategoryOther     = "other"
)

// Expense is one ledger entry. Amounts are in cents.
type Expense struct {
	ID          string // UUID
	Date        time.Time
	Payee       string
	Category    string
	AmountCents int64
	Note        *string
	CreatedAt   time.Time
}

// Filter defines filter options for listing expenses.
type Filter struct {
	Category string
	Payee    string
	DateFrom *time.Time
	DateTo   *time.Time

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
