package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing expense data.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id string) (*Expense, error)
	List(ctx context.Context, filter Filter) ([]*Expense, int, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new expense repository.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, e *Expense) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.expenses").
		Columns("expense_date", "payee", "category", "amount_cents", "note").
		Values(e.Date, e.Payee, e.Category, e.AmountCents, e.Note).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create expense query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("create expense failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Expense, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "expense_date", "payee", "category", "amount_cents", "note", "created_at").
		From("public.expenses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get expense query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var e Expense
	if err := row.Scan(&e.ID, &e.Date, &e.Payee, &e.Category, &e.AmountCents, &e.Note, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get expense failed: %w", err)
	}
	return &e, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Expense, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select("id", "expense_date", "payee", "category", "amount_cents", "note", "created_at", "count(*) OVER() AS total_count").
		From("public.expenses")

	if filter.Category != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Payee != "" {
		queryBuilder = queryBuilder.Where(squirrel.ILike{"payee": "%" + filter.Payee + "%"})
	}
	if filter.DateFrom != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"expense_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"expense_date": *filter.DateTo})
	}

	orderBy := "expense_date"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}
	orderDir := "DESC"
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
		return nil, 0, fmt.Errorf("build list expenses query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses failed: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	var total int

	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Payee, &e.Category, &e.AmountCents, &e.Note, &e.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan expense failed: %w", err)
		}
		expenses = append(expenses, &e)
	}

	return expenses, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Expense) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.expenses").
		Set("expense_date", e.Date).
		Set("payee", e.Payee).
		Set("category", e.Category).
		Set("amount_cents", e.AmountCents).
		Set("note", e.Note).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update expense query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update expense failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.expenses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete expense query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete expense failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
