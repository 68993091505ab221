package member

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing member data from storage.
type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByNumber(ctx context.Context, membershipNumber string) (*Member, error)
	GetByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, filter Filter) ([]*Member, int, error)
	Update(ctx context.Context, m *Member) error
	MarkPaid(ctx context.Context, id string, year int) error
	Deactivate(ctx context.Context, membershipNumber string) error
}

type pgxMemberRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxMemberRepository{
		pool: pool,
	}
}

const memberColumns = `
	id,
	membership_number,
	first_name,
	last_name,
	email,
	phone,
	club_id,
	paid_through_year,
	is_active,
	created_at,
	updated_at
`

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	if err := row.Scan(
		&m.ID,
		&m.MembershipNumber,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Phone,
		&m.ClubID,
		&m.PaidThroughYear,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan member failed: %w", err)
	}
	return &m, nil
}

func (r *pgxMemberRepository) Create(ctx context.Context, m *Member) error {
	const query = `
		INSERT INTO public.members (membership_number, first_name, last_name, email, phone, club_id, paid_through_year, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		m.MembershipNumber,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Phone,
		m.ClubID,
		m.PaidThroughYear,
		m.IsActive,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrNumberTaken
		}
		return fmt.Errorf("create member failed: %w", err)
	}

	return nil
}

func (r *pgxMemberRepository) GetByNumber(ctx context.Context, membershipNumber string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM public.members WHERE membership_number = $1`
	return scanMember(r.pool.QueryRow(ctx, query, membershipNumber))
}

func (r *pgxMemberRepository) GetByID(ctx context.Context, id string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM public.members WHERE id = $1`
	return scanMember(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxMemberRepository) List(ctx context.Context, filter Filter) ([]*Member, int, error) {
	var args []any
	queryBuilder := bytes.NewBufferString(`
		SELECT ` + memberColumns + `,
			count(*) OVER() AS total_count
		FROM public.members
		WHERE 1=1
	`)

	// Dynamic filtering
	if filter.MembershipNumber != "" {
		args = append(args, filter.MembershipNumber)
		queryBuilder.WriteString(" AND membership_number = $" + strconv.Itoa(len(args)))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		queryBuilder.WriteString(" AND (first_name || ' ' || last_name) ILIKE $" + strconv.Itoa(len(args)))
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		queryBuilder.WriteString(" AND email ILIKE $" + strconv.Itoa(len(args)))
	}
	if filter.ClubID != "" {
		args = append(args, filter.ClubID)
		queryBuilder.WriteString(" AND club_id = $" + strconv.Itoa(len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		queryBuilder.WriteString(" AND is_active = $" + strconv.Itoa(len(args)))
	}

	// Sorting; column names are whitelisted before they reach here.
	orderBy := "membership_number"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}
	orderDir := "ASC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	queryBuilder.WriteString(" ORDER BY " + orderBy + " " + orderDir)

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
		return nil, 0, fmt.Errorf("list members failed: %w", err)
	}
	defer rows.Close()

	var members []*Member
	var total int

	for rows.Next() {
		var m Member
		if err := rows.Scan(
			&m.ID,
			&m.MembershipNumber,
			&m.FirstName,
			&m.LastName,
			&m.Email,
			&m.Phone,
			&m.ClubID,
			&m.PaidThroughYear,
			&m.IsActive,
			&m.CreatedAt,
			&m.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan member failed: %w", err)
		}
		members = append(members, &m)
	}

	return members, total, nil
}

func (r *pgxMemberRepository) Update(ctx context.Context, m *Member) error {
	const query = `
		UPDATE public.members
		SET first_name = $1, last_name = $2, email = $3, phone = $4, club_id = $5, is_active = $6, updated_at = now()
		WHERE membership_number = $7
	`

	ct, err := r.pool.Exec(ctx, query, m.FirstName, m.LastName, m.Email, m.Phone, m.ClubID, m.IsActive, m.MembershipNumber)
	if err != nil {
		return fmt.Errorf("update member failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *pgxMemberRepository) MarkPaid(ctx context.Context, id string, year int) error {
	// GREATEST keeps a later paid-through year when an older webhook replays.
	const query = `
		UPDATE public.members
		SET paid_through_year = GREATEST(COALESCE(paid_through_year, 0), $1), updated_at = now()
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, year, id)
	if err != nil {
		return fmt.Errorf("mark member paid failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *pgxMemberRepository) Deactivate(ctx context.Context, membershipNumber string) error {
	const query = `
		UPDATE public.members
		SET is_active = false, updated_at = now()
		WHERE membership_number = $1
	`

	ct, err := r.pool.Exec(ctx, query, membershipNumber)
	if err != nil {
		return fmt.Errorf("deactivate member failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
