package club

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing club data.
type Repository interface {
	Create(ctx context.Context, cl *Club) error
	GetByID(ctx context.Context, id string) (*Club, error)
	List(ctx context.Context, filter Filter) ([]*Club, int, error)
	Update(ctx context.Context, cl *Club) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new club repository.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, cl *Club) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.clubs").
		Columns("name", "community", "contact_email", "is_active").
		Values(cl.Name, cl.Community, cl.ContactEmail, cl.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create club query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&cl.ID, &cl.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("create club failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Club, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "community", "contact_email", "is_active", "created_at").
		From("public.clubs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get club query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var cl Club
	if err := row.Scan(&cl.ID, &cl.Name, &cl.Community, &cl.ContactEmail, &cl.IsActive, &cl.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get club failed: %w", err)
	}
	return &cl, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Club, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select("id", "name", "community", "contact_email", "is_active", "created_at", "count(*) OVER() AS total_count").
		From("public.clubs").
		Where(squirrel.Eq{"is_active": true})

	if filter.Name != "" {
		queryBuilder = queryBuilder.Where(squirrel.ILike{"name": "%" + filter.Name + "%"})
	}
	if filter.Community != "" {
		queryBuilder = queryBuilder.Where(squirrel.ILike{"community": "%" + filter.Community + "%"})
	}

	orderBy := "name"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}
	orderDir := "ASC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	queryBuilder = queryBuilder.OrderBy(orderBy + " " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list clubs query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clubs failed: %w", err)
	}
	defer rows.Close()

	var clubs []*Club
	var total int

	for rows.Next() {
		var cl Club
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.Community, &cl.ContactEmail, &cl.IsActive, &cl.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan club failed: %w", err)
		}
		clubs = append(clubs, &cl)
	}

	return clubs, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, cl *Club) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.clubs").
		Set("name", cl.Name).
		Set("community", cl.Community).
		Set("contact_email", cl.ContactEmail).
		Set("is_active", cl.IsActive).
		Where(squirrel.Eq{"id": cl.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update club query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update club failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	// Soft delete keeps the club visible on historical member records.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.clubs").
		Set("is_active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete club query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete club failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
