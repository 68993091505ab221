package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

const (
	provider         = "stripe"
	webhookTolerance = 5 * time.Minute
)

// Members is the slice of the member service the webhook needs.
type Members interface {
	MarkPaid(ctx context.Context, id string, year int) error
}

// WebhookResult distinguishes a freshly processed event from a replay.
type WebhookResult struct {
	EventID   string
	EventType string
	Duplicate bool
}

type Service interface {
	// Checkout creates a hosted checkout session for one member's dues.
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)

	// HandleWebhook verifies and applies a provider event. Replayed events
	// are acknowledged without being applied a second time.
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) (*WebhookResult, error)
}

type Config struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

type service struct {
	events  EventRepository
	members Members
	cfg     Config

	// Indirection over the Stripe SDK call so tests can stub the provider.
	createSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func NewService(events EventRepository, members Members, cfg Config) Service {
	return &service{
		events:        events,
		members:       members,
		cfg:           cfg,
		createSession: checkoutsession.New,
	}
}

func (s *service) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if s.cfg.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	memberID := strings.TrimSpace(req.MemberID)
	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if memberID == "" || email == "" || name == "" || req.MembershipYear == 0 {
		return nil, ErrMissingFields
	}
	if req.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	year := strconv.Itoa(req.MembershipYear)

	// Stripe uses a global API key. Keep usage limited to this call.
	stripe.Key = s.cfg.SecretKey

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.cfg.SuccessURL),
		CancelURL:         stripe.String(s.cfg.CancelURL),
		CustomerEmail:     stripe.String(email),
		ClientReferenceID: stripe.String(memberID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyCAD)),
					UnitAmount: stripe.Int64(req.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(fmt.Sprintf("%s membership dues", year)),
						Description: stripe.String("Annual membership for " + name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"member_id":       memberID,
			"membership_year": year,
		},
	}
	// Provider-side idempotency: retried submissions reuse the session.
	params.IdempotencyKey = stripe.String("dues:" + memberID + ":" + year)

	sess, err := s.createSession(params)
	if err != nil {
		log.Printf("stripe checkout session create failed for member %s: %v", memberID, err)
		return nil, ErrProviderFailure
	}

	return &CheckoutResult{
		SessionID:   sess.ID,
		CheckoutURL: sess.URL,
	}, nil
}

func (s *service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) (*WebhookResult, error) {
	if s.cfg.WebhookSecret == "" {
		return nil, ErrNotConfigured
	}

	evt, err := webhook.ConstructEventWithTolerance(payload, sigHeader, s.cfg.WebhookSecret, webhookTolerance)
	if err != nil {
		return nil, ErrInvalidSignature
	}

	result := &WebhookResult{
		EventID:   evt.ID,
		EventType: string(evt.Type),
	}

	seen, err := s.events.EventExists(ctx, provider, evt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check provider event: %w", err)
	}
	if seen {
		log.Printf("stripe event %s replayed, ignoring", evt.ID)
		result.Duplicate = true
		return result, nil
	}

	switch evt.Type {
	case "checkout.session.completed":
		if err := s.applyCheckoutCompleted(ctx, evt); err != nil {
			// No event row is written, so the provider's retry reprocesses it.
			return nil, err
		}
	default:
		// Unknown event types are acknowledged so the provider stops retrying.
		log.Printf("stripe event %s has unhandled type %s", evt.ID, evt.Type)
	}

	// Recorded only after a successful apply. Two concurrent deliveries can
	// both pass the check above and apply; MarkPaid advances the paid year
	// with GREATEST, so the loser of this insert has changed nothing extra.
	err = s.events.InsertEvent(ctx, ProviderEvent{
		Provider:        provider,
		ProviderEventID: evt.ID,
		EventType:       string(evt.Type),
		Payload:         payload,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEvent) {
			result.Duplicate = true
			return result, nil
		}
		return nil, fmt.Errorf("failed to record provider event: %w", err)
	}

	return result, nil
}

func (s *service) applyCheckoutCompleted(ctx context.Context, evt stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
		return fmt.Errorf("invalid checkout session payload: %w", err)
	}

	memberID := strings.TrimSpace(session.Metadata["member_id"])
	yearStr := strings.TrimSpace(session.Metadata["membership_year"])
	if memberID == "" || yearStr == "" {
		log.Printf("stripe event %s missing member_id/membership_year metadata", evt.ID)
		return nil
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		log.Printf("stripe event %s has non-numeric membership_year %q", evt.ID, yearStr)
		return nil
	}

	if err := s.members.MarkPaid(ctx, memberID, year); err != nil {
		return fmt.Errorf("failed to mark member %s paid for %d: %w", memberID, year, err)
	}

	log.Printf("member %s marked paid for %d via stripe event %s", memberID, year, evt.ID)
	return nil
}
