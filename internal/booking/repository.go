package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create persists a new booking. A unique violation on
	// (booking_date, start_time) is reported as ErrSlotTaken; the partial
	// unique index excludes cancelled bookings so a freed slot can be rebooked.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// SetCalendarRef records a successful external sync. Both references are
	// written together so they are never half-present.
	SetCalendarRef(ctx context.Context, id, eventID, link string) error
	AppendAdminNote(ctx context.Context, id, note string) error

	// ListDay returns all non-cancelled bookings on the given calendar day.
	ListDay(ctx context.Context, day time.Time) ([]*Booking, error)

	// ListForInvoice returns confirmed/completed bookings for one school in
	// the inclusive date range, ordered by date then start time.
	ListForInvoice(ctx context.Context, schoolSystem, schoolName string, from, to time.Time) ([]*Booking, error)

	// DistinctSchoolsInRange returns the distinct (system, name) pairs that
	// have confirmed/completed bookings in the range, used for invoice
	// not-found diagnostics.
	DistinctSchoolsInRange(ctx context.Context, from, to time.Time) ([]string, error)
}

const bookingColumns = `id, first_name, last_name, email, phone,
	school_name, school_system, address_line1, address_line2, city, province, postal_code,
	booking_date, start_time, end_time, total_minutes,
	students, grade_level, preferred_coach, special_requirements,
	total_cost_cents, status, calendar_event_id, calendar_link, admin_note,
	created_at, updated_at`

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.Phone,
		&b.SchoolName, &b.SchoolSystem, &b.AddressLine1, &b.AddressLine2, &b.City, &b.Province, &b.PostalCode,
		&b.Date, &b.StartTime, &b.EndTime, &b.TotalMinutes,
		&b.Students, &b.GradeLevel, &b.PreferredCoach, &b.SpecialRequirements,
		&b.TotalCostCents, &b.Status, &b.CalendarEventID, &b.CalendarLink, &b.AdminNote,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"first_name", "last_name", "email", "phone",
			"school_name", "school_system", "address_line1", "address_line2", "city", "province", "postal_code",
			"booking_date", "start_time", "end_time", "total_minutes",
			"students", "grade_level", "preferred_coach", "special_requirements",
			"total_cost_cents", "status",
		).
		Values(
			b.FirstName, b.LastName, b.Email, b.Phone,
			b.SchoolName, b.SchoolSystem, b.AddressLine1, b.AddressLine2, b.City, b.Province, b.PostalCode,
			b.Date, b.StartTime, b.EndTime, b.TotalMinutes,
			b.Students, b.GradeLevel, b.PreferredCoach, b.SpecialRequirements,
			b.TotalCostCents, b.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns + ", count(*) OVER() as total_count").
		From("public.bookings")

	if filter.SchoolSystem != "" {
		query = query.Where(squirrel.Eq{"school_system": filter.SchoolSystem})
	}
	if filter.SchoolName != "" {
		query = query.Where(squirrel.Eq{"school_name": filter.SchoolName})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"booking_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"booking_date": *filter.DateTo})
	}

	// Sorting
	orderBy := "booking_date"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.Phone,
			&b.SchoolName, &b.SchoolSystem, &b.AddressLine1, &b.AddressLine2, &b.City, &b.Province, &b.PostalCode,
			&b.Date, &b.StartTime, &b.EndTime, &b.TotalMinutes,
			&b.Students, &b.GradeLevel, &b.PreferredCoach, &b.SpecialRequirements,
			&b.TotalCostCents, &b.Status, &b.CalendarEventID, &b.CalendarLink, &b.AdminNote,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetCalendarRef(ctx context.Context, id, eventID, link string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("calendar_event_id", eventID).
		Set("calendar_link", link).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set calendar ref query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set calendar ref failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AppendAdminNote(ctx context.Context, id, note string) error {
	// Concatenate onto any existing note so sync outcomes accumulate.
	const query = `
		UPDATE public.bookings
		SET admin_note = COALESCE(admin_note || E'\n', '') || $1,
		    updated_at = now()
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, note, id)
	if err != nil {
		return fmt.Errorf("append admin note failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListDay(ctx context.Context, day time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("public.bookings").
		Where(squirrel.Eq{"booking_date": day}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list day bookings query failed: %w", err)
	}

	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) ListForInvoice(ctx context.Context, schoolSystem, schoolName string, from, to time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("public.bookings").
		Where(squirrel.Eq{"school_system": schoolSystem}).
		Where(squirrel.Eq{"school_name": schoolName}).
		Where(squirrel.GtOrEq{"booking_date": from}).
		Where(squirrel.LtOrEq{"booking_date": to}).
		Where(squirrel.Eq{"status": []Status{StatusConfirmed, StatusCompleted}}).
		OrderBy("booking_date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list invoice bookings query failed: %w", err)
	}

	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) DistinctSchoolsInRange(ctx context.Context, from, to time.Time) ([]string, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("DISTINCT school_system || ' / ' || school_name").
		From("public.bookings").
		Where(squirrel.GtOrEq{"booking_date": from}).
		Where(squirrel.LtOrEq{"booking_date": to}).
		Where(squirrel.Eq{"status": []Status{StatusConfirmed, StatusCompleted}}).
		OrderBy("1 ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build distinct schools query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("distinct schools query failed: %w", err)
	}
	defer rows.Close()

	var schools []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan school failed: %w", err)
		}
		schools = append(schools, s)
	}
	return schools, nil
}

func (r *pgxRepository) queryBookings(ctx context.Context, query string, args []any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
