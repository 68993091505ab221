package staff

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiesport/association-backend/internal/auth"
)

type stubRepo struct {
	byEmail map[string]*Account
	nextID  int
}

func newStubRepo() *stubRepo {
	return &stubRepo{byEmail: map[string]*Account{}}
}

func (r *stubRepo) GetByEmail(ctx context.Context, email string) (*Account, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *stubRepo) GetByID(ctx context.Context, id string) (*Account, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *stubRepo) Create(ctx context.Context, a *Account) error {
	if _, ok := r.byEmail[a.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	a.ID = fmt.Sprintf("staff-%d", r.nextID)
	a.CreatedAt = time.Now().UTC()
	copied := *a
	r.byEmail[a.Email] = &copied
	return nil
}

func (r *stubRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	for _, a := range r.byEmail {
		if a.ID == id {
			a.LastLoginAt = &t
			return nil
		}
	}
	return ErrNotFound
}

func (r *stubRepo) List(ctx context.Context, filter Filter) ([]*Account, int, error) {
	var out []*Account
	for _, a := range r.byEmail {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (r *stubRepo) Update(ctx context.Context, a *Account) error {
	for _, stored := range r.byEmail {
		if stored.ID == a.ID {
			*stored = *a
			return nil
		}
	}
	return ErrNotFound
}

func (r *stubRepo) Deactivate(ctx context.Context, id string) error {
	for _, a := range r.byEmail {
		if a.ID == id {
			a.IsActive = false
			return nil
		}
	}
	return ErrNotFound
}

func newTestService() (Service, *stubRepo) {
	repo := newStubRepo()
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Register(context.Background(), " Office@Example.com ", "correct-horse", "Office Admin", true)
	require.NoError(t, err)
	assert.Equal(t, "office@example.com", a.Email)
	assert.True(t, a.IsActive)
	assert.True(t, a.IsAdmin)

	got, err := svc.Login(context.Background(), "office@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.NotNil(t, got.LastLoginAt)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "", "correct-horse", "", false)
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(context.Background(), "a@b.c", "short", "", false)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "a@b.c", "correct-horse", "", false)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "A@B.C", "correct-horse", "", false)
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "a@b.c", "correct-horse", "", false)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "a@b.c", "wrong-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@b.c", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email reads the same as a bad password")
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, repo := newTestService()

	a, err := svc.Register(context.Background(), "a@b.c", "correct-horse", "", false)
	require.NoError(t, err)
	require.NoError(t, repo.Deactivate(context.Background(), a.ID))

	_, err = svc.Login(context.Background(), "a@b.c", "correct-horse")
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Register(context.Background(), "a@b.c", "correct-horse", "Old Name", false)
	require.NoError(t, err)

	admin := true
	updated, err := svc.Update(context.Background(), a.ID, nil, &admin, nil)
	require.NoError(t, err)

	assert.True(t, updated.IsAdmin)
	require.NotNil(t, updated.DisplayName)
	assert.Equal(t, "Old Name", *updated.DisplayName, "unset fields unchanged")
}
