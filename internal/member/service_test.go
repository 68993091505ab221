package member

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	byNumber map[string]*Member
	nextID   int
}

func newStubRepo() *stubRepo {
	return &stubRepo{byNumber: map[string]*Member{}}
}

func (r *stubRepo) Create(ctx context.Context, m *Member) error {
	if _, ok := r.byNumber[m.MembershipNumber]; ok {
		return ErrNumberTaken
	}
	r.nextID++
	m.ID = fmt.Sprintf("member-%d", r.nextID)
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt
	copied := *m
	r.byNumber[m.MembershipNumber] = &copied
	return nil
}

func (r *stubRepo) GetByNumber(ctx context.Context, number string) (*Member, error) {
	m, ok := r.byNumber[number]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *stubRepo) GetByID(ctx context.Context, id string) (*Member, error) {
	for _, m := range r.byNumber {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *stubRepo) List(ctx context.Context, filter Filter) ([]*Member, int, error) {
	var out []*Member
	for _, m := range r.byNumber {
		out = append(out, m)
	}
	return out, len(out), nil
}

func (r *stubRepo) Update(ctx context.Context, m *Member) error {
	stored, ok := r.byNumber[m.MembershipNumber]
	if !ok {
		return ErrNotFound
	}
	copied := *m
	copied.ID = stored.ID
	r.byNumber[m.MembershipNumber] = &copied
	return nil
}

func (r *stubRepo) MarkPaid(ctx context.Context, id string, year int) error {
	for _, m := range r.byNumber {
		if m.ID == id {
			if m.PaidThroughYear == nil || *m.PaidThroughYear < year {
				m.PaidThroughYear = &year
			}
			return nil
		}
	}
	return ErrNotFound
}

func (r *stubRepo) Deactivate(ctx context.Context, number string) error {
	m, ok := r.byNumber[number]
	if !ok {
		return ErrNotFound
	}
	m.IsActive = false
	return nil
}

func TestCreate_NormalizesAndDefaults(t *testing.T) {
	svc := NewService(newStubRepo())

	m, err := svc.Create(context.Background(), CreateRequest{
		MembershipNumber: " SK-1042 ",
		FirstName:        " Dana ",
		LastName:         "Whitfield",
		Email:            "Dana.Whitfield@Example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "SK-1042", m.MembershipNumber)
	assert.Equal(t, "Dana", m.FirstName)
	assert.Equal(t, "dana.whitfield@example.com", m.Email)
	assert.True(t, m.IsActive)
	assert.Nil(t, m.Phone)
	assert.Nil(t, m.PaidThroughYear)
}

func TestCreate_MissingFields(t *testing.T) {
	svc := NewService(newStubRepo())

	_, err := svc.Create(context.Background(), CreateRequest{
		MembershipNumber: "SK-1",
		FirstName:        "Dana",
	})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreate_DuplicateNumber(t *testing.T) {
	svc := NewService(newStubRepo())

	req := CreateRequest{MembershipNumber: "SK-1", FirstName: "A", LastName: "B", Email: "a@b.c"}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrNumberTaken)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateRequest{
		MembershipNumber: "SK-1", FirstName: "Dana", LastName: "Whitfield", Email: "dana@example.com", Phone: "306-555-0101",
	})
	require.NoError(t, err)

	newEmail := "dana.w@example.com"
	clearPhone := ""
	m, err := svc.Update(context.Background(), "SK-1", UpdateRequest{
		Email: &newEmail,
		Phone: &clearPhone,
	})
	require.NoError(t, err)

	assert.Equal(t, "dana.w@example.com", m.Email)
	assert.Nil(t, m.Phone, "empty string clears the field")
	assert.Equal(t, "Dana", m.FirstName, "unset fields unchanged")
}

func TestUpdate_UnknownNumber(t *testing.T) {
	svc := NewService(newStubRepo())

	name := "X"
	_, err := svc.Update(context.Background(), "SK-404", UpdateRequest{FirstName: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkPaid_KeepsLatestYear(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)

	m, err := svc.Create(context.Background(), CreateRequest{
		MembershipNumber: "SK-1", FirstName: "A", LastName: "B", Email: "a@b.c",
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkPaid(context.Background(), m.ID, 2026))
	require.NoError(t, svc.MarkPaid(context.Background(), m.ID, 2025), "replayed older payment is a no-op")

	got, err := svc.GetByNumber(context.Background(), "SK-1")
	require.NoError(t, err)
	require.NotNil(t, got.PaidThroughYear)
	assert.Equal(t, 2026, *got.PaidThroughYear)
	assert.True(t, got.PaidFor(2025))
	assert.False(t, got.PaidFor(2027))
}

func TestMarkPaid_RejectsImplausibleYear(t *testing.T) {
	svc := NewService(newStubRepo())

	assert.ErrorIs(t, svc.MarkPaid(context.Background(), "member-1", 1900), ErrInvalidPaidYear)
	assert.ErrorIs(t, svc.MarkPaid(context.Background(), "member-1", time.Now().Year()+5), ErrInvalidPaidYear)
}

func TestDeactivate(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateRequest{
		MembershipNumber: "SK-1", FirstName: "A", LastName: "B", Email: "a@b.c",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), "SK-1"))

	got, err := svc.GetByNumber(context.Background(), "SK-1")
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
