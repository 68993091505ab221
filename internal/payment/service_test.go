package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

const testWebhookSecret = "whsec_test_secret"

type stubEventRepo struct {
	seen map[string]bool
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{seen: map[string]bool{}}
}

func (r *stubEventRepo) InsertEvent(ctx context.Context, ev ProviderEvent) error {
	key := ev.Provider + ":" + ev.ProviderEventID
	if r.seen[key] {
		return ErrDuplicateEvent
	}
	r.seen[key] = true
	return nil
}

func (r *stubEventRepo) EventExists(ctx context.Context, provider, eventID string) (bool, error) {
	return r.seen[provider+":"+eventID], nil
}

type stubMembers struct {
	calls []string
	err   error
}

func (m *stubMembers) MarkPaid(ctx context.Context, id string, year int) error {
	m.calls = append(m.calls, fmt.Sprintf("%s:%d", id, year))
	return m.err
}

// signPayload produces a Stripe-Signature header over the payload, matching
// the t=...,v1=... scheme the verifier expects.
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func completedEventPayload(eventID, memberID, year string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"api_version": %q,
		"type": "checkout.session.completed",
		"created": %d,
		"data": {
			"object": {
				"id": "cs_test_123",
				"metadata": {"member_id": %q, "membership_year": %q}
			}
		}
	}`, eventID, stripe.APIVersion, time.Now().Unix(), memberID, year))
}

func newTestService(events EventRepository, members Members) Service {
	return NewService(events, members, Config{
		SecretKey:     "sk_test_key",
		WebhookSecret: testWebhookSecret,
		SuccessURL:    "https://example.org/pay/success",
		CancelURL:     "https://example.org/pay/cancel",
	})
}

func TestHandleWebhook_CompletedMarksMemberPaid(t *testing.T) {
	members := &stubMembers{}
	svc := newTestService(newStubEventRepo(), members)

	payload := completedEventPayload("evt_1", "member-42", "2026")
	sig := signPayload(payload, testWebhookSecret, time.Now())

	res, err := svc.HandleWebhook(context.Background(), payload, sig)
	require.NoError(t, err)

	assert.False(t, res.Duplicate)
	assert.Equal(t, "evt_1", res.EventID)
	assert.Equal(t, []string{"member-42:2026"}, members.calls)
}

func TestHandleWebhook_DuplicateEventAppliedOnce(t *testing.T) {
	members := &stubMembers{}
	svc := newTestService(newStubEventRepo(), members)

	payload := completedEventPayload("evt_1", "member-42", "2026")
	sig := signPayload(payload, testWebhookSecret, time.Now())

	first, err := svc.HandleWebhook(context.Background(), payload, sig)
	require.NoError(t, err)
	second, err := svc.HandleWebhook(context.Background(), payload, sig)
	require.NoError(t, err, "replays are acknowledged, not failed")

	assert.False(t, first.Duplicate)
	assert.True(t, second.Duplicate)
	assert.Len(t, members.calls, 1, "side effect applied exactly once")
}

func TestHandleWebhook_RetryAfterFailedApply(t *testing.T) {
	members := &stubMembers{err: fmt.Errorf("db unavailable")}
	events := newStubEventRepo()
	svc := newTestService(events, members)

	payload := completedEventPayload("evt_1", "member-42", "2026")
	sig := signPayload(payload, testWebhookSecret, time.Now())

	_, err := svc.HandleWebhook(context.Background(), payload, sig)
	require.Error(t, err, "failed apply must surface so the provider retries")
	assert.Empty(t, events.seen, "no event row when the apply failed")

	members.err = nil
	res, err := svc.HandleWebhook(context.Background(), payload, sig)
	require.NoError(t, err)
	assert.False(t, res.Duplicate, "retry reprocesses, not short-circuits")
	assert.Equal(t, []string{"member-42:2026", "member-42:2026"}, members.calls)
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	members := &stubMembers{}
	svc := newTestService(newStubEventRepo(), members)

	payload := completedEventPayload("evt_1", "member-42", "2026")
	sig := signPayload(payload, "whsec_wrong_secret", time.Now())

	_, err := svc.HandleWebhook(context.Background(), payload, sig)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Empty(t, members.calls)
}

func TestHandleWebhook_StaleTimestamp(t *testing.T) {
	svc := newTestService(newStubEventRepo(), &stubMembers{})

	payload := completedEventPayload("evt_1", "member-42", "2026")
	sig := signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour))

	_, err := svc.HandleWebhook(context.Background(), payload, sig)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleWebhook_MissingMetadataIsAcknowledged(t *testing.T) {
	members := &stubMembers{}
	svc := newTestService(newStubEventRepo(), members)

	payload := []byte(fmt.Sprintf(`{
		"id": "evt_2",
		"api_version": %q,
		"type": "checkout.session.completed",
		"created": %d,
		"data": {"object": {"id": "cs_test_456", "metadata": {}}}
	}`, stripe.APIVersion, time.Now().Unix()))
	sig := signPayload(payload, testWebhookSecret, time.Now())

	_, err := svc.HandleWebhook(context.Background(), payload, sig)
	require.NoError(t, err, "malformed provider data is logged, not retried forever")
	assert.Empty(t, members.calls)
}

func TestHandleWebhook_UnknownTypeAcknowledged(t *testing.T) {
	members := &stubMembers{}
	svc := newTestService(newStubEventRepo(), members)

	payload := []byte(fmt.Sprintf(`{
		"id": "evt_3",
		"api_version": %q,
		"type": "charge.refunded",
		"created": %d,
		"data": {"object": {"id": "ch_test_1"}}
	}`, stripe.APIVersion, time.Now().Unix()))
	sig := signPayload(payload, testWebhookSecret, time.Now())

	res, err := svc.HandleWebhook(context.Background(), payload, sig)
	require.NoError(t, err)
	assert.False(t, res.Duplicate)
	assert.Empty(t, members.calls)
}

func TestHandleWebhook_NotConfigured(t *testing.T) {
	svc := NewService(newStubEventRepo(), &stubMembers{}, Config{})

	_, err := svc.HandleWebhook(context.Background(), []byte(`{}`), "t=1,v1=abc")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCheckout_BuildsSessionWithMetadata(t *testing.T) {
	svc := newTestService(newStubEventRepo(), &stubMembers{}).(*service)

	var got *stripe.CheckoutSessionParams
	svc.createSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		got = params
		return &stripe.CheckoutSession{ID: "cs_test_789", URL: "https://checkout.stripe.com/pay/cs_test_789"}, nil
	}

	res, err := svc.Checkout(context.Background(), CheckoutRequest{
		MemberID:       "member-42",
		Email:          "dana@example.com",
		Name:           "Dana Whitfield",
		AmountCents:    4500,
		MembershipYear: 2026,
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_789", res.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_789", res.CheckoutURL)

	require.NotNil(t, got)
	assert.Equal(t, "member-42", got.Metadata["member_id"])
	assert.Equal(t, "2026", got.Metadata["membership_year"])
	assert.Equal(t, "payment", *got.Mode)
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, int64(4500), *got.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "https://example.org/pay/success", *got.SuccessURL)
}

func TestCheckout_Validation(t *testing.T) {
	svc := newTestService(newStubEventRepo(), &stubMembers{})

	valid := CheckoutRequest{
		MemberID:       "member-42",
		Email:          "dana@example.com",
		Name:           "Dana Whitfield",
		AmountCents:    4500,
		MembershipYear: 2026,
	}

	tests := []struct {
		name    string
		mutate  func(*CheckoutRequest)
		wantErr error
	}{
		{"missing member id", func(r *CheckoutRequest) { r.MemberID = "" }, ErrMissingFields},
		{"missing email", func(r *CheckoutRequest) { r.Email = " " }, ErrMissingFields},
		{"missing year", func(r *CheckoutRequest) { r.MembershipYear = 0 }, ErrMissingFields},
		{"zero amount", func(r *CheckoutRequest) { r.AmountCents = 0 }, ErrInvalidAmount},
		{"negative amount", func(r *CheckoutRequest) { r.AmountCents = -100 }, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.Checkout(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckout_NotConfigured(t *testing.T) {
	svc := NewService(newStubEventRepo(), &stubMembers{}, Config{})

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		MemberID: "member-42", Email: "a@b.c", Name: "A", AmountCents: 100, MembershipYear: 2026,
	})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
