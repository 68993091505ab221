package expense

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	byID   map[string]*Expense
	nextID int
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[string]*Expense{}}
}

func (r *stubRepo) Create(ctx context.Context, e *Expense) error {
	r.nextID++
	e.ID = fmt.Sprintf("expense-%d", r.nextID)
	e.CreatedAt = time.Now().UTC()
	copied := *e
	r.byID[e.ID] = &copied
	return nil
}

func (r *stubRepo) GetByID(ctx context.Context, id string) (*Expense, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *stubRepo) List(ctx context.Context, filter Filter) ([]*Expense, int, error) {
	var out []*Expense
	for _, e := range r.byID {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (r *stubRepo) Update(ctx context.Context, e *Expense) error {
	if _, ok := r.byID[e.ID]; !ok {
		return ErrNotFound
	}
	copied := *e
	r.byID[e.ID] = &copied
	return nil
}

func (r *stubRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestCreate_ValidatesAmountAndFields(t *testing.T) {
	svc := NewService(newStubRepo())
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), CreateRequest{Date: date, Payee: "Rink rental", AmountCents: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Create(context.Background(), CreateRequest{Date: date, Payee: " ", AmountCents: 500})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Create(context.Background(), CreateRequest{Payee: "Rink rental", AmountCents: 500})
	assert.ErrorIs(t, err, ErrMissingFields, "date is required")
}

func TestCreate_NormalizesCategory(t *testing.T) {
	svc := NewService(newStubRepo())
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	e, err := svc.Create(context.Background(), CreateRequest{
		Date: date, Payee: "City of Saskatoon", Category: " Venue ", AmountCents: 25000,
	})
	require.NoError(t, err)
	assert.Equal(t, CategoryVenue, e.Category)

	e, err = svc.Create(context.Background(), CreateRequest{
		Date: date, Payee: "Misc", Category: "snacks", AmountCents: 1200,
	})
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, e.Category, "unknown categories fall back to other")
}

func TestUpdate_Partial(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	e, err := svc.Create(context.Background(), CreateRequest{
		Date: date, Payee: "City of Saskatoon", Category: "venue", AmountCents: 25000, Note: "March ice time",
	})
	require.NoError(t, err)

	newAmount := int64(27500)
	clearNote := ""
	updated, err := svc.Update(context.Background(), e.ID, UpdateRequest{
		AmountCents: &newAmount,
		Note:        &clearNote,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(27500), updated.AmountCents)
	assert.Nil(t, updated.Note)
	assert.Equal(t, "City of Saskatoon", updated.Payee, "unset fields unchanged")
}

func TestUpdate_RejectsNonPositiveAmount(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	e, err := svc.Create(context.Background(), CreateRequest{Date: date, Payee: "X", AmountCents: 100})
	require.NoError(t, err)

	bad := int64(-5)
	_, err = svc.Update(context.Background(), e.ID, UpdateRequest{AmountCents: &bad})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
