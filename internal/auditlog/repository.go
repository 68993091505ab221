package auditlog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.audit_log").
		Columns("action", "actor_email", "target_id", "detail").
		Values(e.Action, e.ActorEmail, e.TargetID, e.Detail).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create log entry query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&e.ID, &e.CreatedAt)
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "action", "actor_email", "target_id", "detail", "created_at", "count(*) OVER() as total_count").
		From("public.audit_log")

	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"action": "%" + filter.Keyword + "%"},
			squirrel.ILike{"detail": "%" + filter.Keyword + "%"},
		})
	}
	if filter.ActorEmail != "" {
		query = query.Where(squirrel.Eq{"actor_email": filter.ActorEmail})
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy("created_at " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list log entries query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list log entries failed: %w", err)
	}
	defer rows.Close()

	var result []*Entry
	var total int

	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.ActorEmail, &e.TargetID, &e.Detail, &e.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan log entry failed: %w", err)
		}
		result = append(result, &e)
	}

	return result, total, nil
}
