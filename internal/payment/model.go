package payment

import (
	"net/http"
	"time"

	"github.com/prairiesport/association-backend/internal/pkg/apperror"
)

var (
	ErrMissingFields    = apperror.New(http.StatusBadRequest, "missing required payment fields")
	ErrInvalidAmount    = apperror.New(http.StatusBadRequest, "amount must be a positive number of cents")
	ErrInvalidSignature = apperror.New(http.StatusBadRequest, "invalid webhook signature")
	ErrNotConfigured    = apperror.New(http.StatusServiceUnavailable, "payment provider not configured")
	ErrProviderFailure  = apperror.New(http.StatusBadGateway, "payment provider request failed")
)

// ProviderEvent is one received provider webhook event. The unique key on
// (provider, provider_event_id) is what makes webhook handling idempotent.
type ProviderEvent struct {
	Provider        string
	ProviderEventID string
	EventType       string
	Payload         []byte
	ReceivedAt      time.Time
}

// CheckoutRequest starts a hosted checkout for one member's annual dues.
// AmountCents is already in minor currency units.
type CheckoutRequest struct {
	MemberID       string
	Email          string
	Name           string
	AmountCents    int64
	MembershipYear int
}

// CheckoutResult carries the hosted payment page reference back to the caller.
type CheckoutResult struct {
	SessionID   string
	CheckoutURL string
}
