package staff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing staff account data from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, a *Account) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
	List(ctx context.Context, filter Filter) ([]*Account, int, error)
	Update(ctx context.Context, a *Account) error
	Deactivate(ctx context.Context, id string) error
}

type pgxStaffRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxStaffRepository{
		pool: pool,
	}
}

const staffColumns = `
	id,
	email,
	password_hash,
	display_name,
	is_admin,
	is_active,
	created_at,
	last_login_at
`

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	if err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.DisplayName,
		&a.IsAdmin,
		&a.IsActive,
		&a.CreatedAt,
		&a.LastLoginAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan staff account failed: %w", err)
	}
	return &a, nil
}

func (r *pgxStaffRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	query := `SELECT ` + staffColumns + ` FROM public.staff_accounts WHERE email = $1`
	return scanAccount(r.pool.QueryRow(ctx, query, email))
}

func (r *pgxStaffRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	query := `SELECT ` + staffColumns + ` FROM public.staff_accounts WHERE id = $1`
	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxStaffRepository) Create(ctx context.Context, a *Account) error {
	const query = `
		INSERT INTO public.staff_accounts (email, password_hash, display_name, is_admin, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		a.Email,
		a.PasswordHash,
		a.DisplayName,
		a.IsAdmin,
		a.IsActive,
	).Scan(&a.ID, &a.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create staff account failed: %w", err)
	}

	return nil
}

func (r *pgxStaffRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	const query = `
		UPDATE public.staff_accounts
		SET last_login_at = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, t, id)
	if err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *pgxStaffRepository) List(ctx context.Context, filter Filter) ([]*Account, int, error) {
	var args []any
	queryBuilder := bytes.NewBufferString(`
		SELECT ` + staffColumns + `,
			count(*) OVER() AS total_count
		FROM public.staff_accounts
		WHERE 1=1
	`)

	// Dynamic filtering
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		queryBuilder.WriteString(" AND email ILIKE $" + strconv.Itoa(len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		queryBuilder.WriteString(" AND is_active = $" + strconv.Itoa(len(args)))
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	args = append(args, filter.PageSize, offset)
	queryBuilder.WriteString(" LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args)))

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list staff accounts failed: %w", err)
	}
	defer rows.Close()

	var accounts []*Account
	var total int

	for rows.Next() {
		var a Account
		if err := rows.Scan(
			&a.ID,
			&a.Email,
			&a.PasswordHash,
			&a.DisplayName,
			&a.IsAdmin,
			&a.IsActive,
			&a.CreatedAt,
			&a.LastLoginAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan staff account failed: %w", err)
		}
		accounts = append(accounts, &a)
	}

	return accounts, total, nil
}

func (r *pgxStaffRepository) Update(ctx context.Context, a *Account) error {
	const query = `
		UPDATE public.staff_accounts
		SET display_name = $1, is_admin = $2, is_active = $3
		WHERE id = $4
	`

	ct, err := r.pool.Exec(ctx, query, a.DisplayName, a.IsAdmin, a.IsActive, a.ID)
	if err != nil {
		return fmt.Errorf("update staff account failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *pgxStaffRepository) Deactivate(ctx context.Context, id string) error {
	const query = `
		UPDATE public.staff_accounts
		SET is_active = false
		WHERE id = $1
	`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate staff account failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
