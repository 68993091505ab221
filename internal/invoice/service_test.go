package invoice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiesport/association-backend/internal/booking"
)

// bookingStore is an in-memory booking.Repository so the round-trip test can
// create bookings through the writer and aggregate them here.
type bookingStore struct {
	bookings map[string]*booking.Booking
	nextID   int
}

func newBookingStore() *bookingStore {
	return &bookingStore{bookings: map[string]*booking.Booking{}}
}

func (r *bookingStore) Create(ctx context.Context, b *booking.Booking) error {
	for _, existing := range r.bookings {
		if existing.Status != booking.StatusCancelled &&
			existing.Date.Equal(b.Date) && existing.StartTime.Equal(b.StartTime) {
			return booking.ErrSlotTaken
		}
	}
	r.nextID++
	b.ID = fmt.Sprintf("booking-%d", r.nextID)
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *bookingStore) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return b, nil
}

func (r *bookingStore) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	return nil, 0, nil
}

func (r *bookingStore) UpdateStatus(ctx context.Context, id string, status booking.Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *bookingStore) SetCalendarRef(ctx context.Context, id, eventID, link string) error {
	return nil
}

func (r *bookingStore) AppendAdminNote(ctx context.Context, id, note string) error {
	return nil
}

func (r *bookingStore) ListDay(ctx context.Context, day time.Time) ([]*booking.Booking, error) {
	return nil, nil
}

func (r *bookingStore) ListForInvoice(ctx context.Context, schoolSystem, schoolName string, from, to time.Time) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range r.bookings {
		if b.SchoolSystem == schoolSystem && b.SchoolName == schoolName &&
			!b.Date.Before(from) && !b.Date.After(to) &&
			(b.Status == booking.StatusConfirmed || b.Status == booking.StatusCompleted) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *bookingStore) DistinctSchoolsInRange(ctx context.Context, from, to time.Time) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, b := range r.bookings {
		if !b.Date.Before(from) && !b.Date.After(to) &&
			(b.Status == booking.StatusConfirmed || b.Status == booking.StatusCompleted) {
			key := b.SchoolSystem + " / " + b.SchoolName
			if !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	return out, nil
}

func addBooking(t *testing.T, store *bookingStore, date time.Time, startHour int, school, system string, costCents int64, status booking.Status) {
	t.Helper()
	start := time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, time.UTC)
	b := &booking.Booking{
		FirstName:      "Test",
		LastName:       "Teacher",
		Email:          "t@example.com",
		SchoolName:     school,
		SchoolSystem:   system,
		Date:           date,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		TotalMinutes:   60,
		Students:       20,
		TotalCostCents: costCents,
		Status:         status,
	}
	require.NoError(t, store.Create(context.Background(), b))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_SumsCostAndMinutes(t *testing.T) {
	store := newBookingStore()
	addBooking(t, store, day(2024, 3, 5), 11, "St. Anne School", "Catholic", 12500, booking.StatusConfirmed)
	addBooking(t, store, day(2024, 3, 12), 12, "St. Anne School", "Catholic", 15000, booking.StatusCompleted)
	addBooking(t, store, day(2024, 3, 12), 13, "St. Anne School", "Catholic", 10000, booking.StatusCancelled) // excluded
	addBooking(t, store, day(2024, 3, 14), 11, "Lakeview School", "Saskatoon Public", 9900, booking.StatusConfirmed)

	svc := NewService(store, nil)
	inv, err := svc.Build(context.Background(), day(2024, 3, 1), "Catholic", "St. Anne School")
	require.NoError(t, err)

	assert.Equal(t, 2, inv.Count)
	assert.Equal(t, int64(27500), inv.TotalCents)
	assert.Equal(t, 120, inv.TotalMinutes)
	assert.Equal(t, "2024-03-CATH-SAS", inv.Number)
	assert.Equal(t, day(2024, 3, 1), inv.PeriodStart)
	assert.Equal(t, day(2024, 3, 31), inv.PeriodEnd)
	require.Len(t, inv.Lines, 2)
}

func TestBuild_MonthBoundariesInclusive(t *testing.T) {
	store := newBookingStore()
	// 2024-03-01 is a Friday, 2024-03-29 is also a Friday.
	addBooking(t, store, day(2024, 3, 1), 11, "Lakeview School", "Saskatoon Public", 5000, booking.StatusConfirmed)
	addBooking(t, store, day(2024, 3, 29), 11, "Lakeview School", "Saskatoon Public", 5000, booking.StatusConfirmed)
	addBooking(t, store, day(2024, 2, 29), 11, "Lakeview School", "Saskatoon Public", 5000, booking.StatusConfirmed) // previous month
	addBooking(t, store, day(2024, 4, 1), 11, "Lakeview School", "Saskatoon Public", 5000, booking.StatusConfirmed)  // next month

	svc := NewService(store, nil)
	inv, err := svc.Build(context.Background(), day(2024, 3, 15), "Saskatoon Public", "Lakeview School")
	require.NoError(t, err)

	assert.Equal(t, 2, inv.Count, "first and last day of month included, adjacent months excluded")
}

func TestBuild_Idempotent(t *testing.T) {
	store := newBookingStore()
	addBooking(t, store, day(2024, 3, 5), 11, "St. Anne School", "Catholic", 12500, booking.StatusConfirmed)

	svc := NewService(store, nil)
	first, err := svc.Build(context.Background(), day(2024, 3, 1), "Catholic", "St. Anne School")
	require.NoError(t, err)
	second, err := svc.Build(context.Background(), day(2024, 3, 1), "Catholic", "St. Anne School")
	require.NoError(t, err)

	assert.Equal(t, first.TotalCents, second.TotalCents)
	assert.Equal(t, first.TotalMinutes, second.TotalMinutes)
	assert.Equal(t, first.Count, second.Count)
	assert.Equal(t, first.Number, second.Number)
}

func TestBuild_NotFoundCarriesDiagnostics(t *testing.T) {
	store := newBookingStore()
	addBooking(t, store, day(2024, 3, 5), 11, "St Anne", "Catholic", 12500, booking.StatusConfirmed)

	svc := NewService(store, nil)
	_, err := svc.Build(context.Background(), day(2024, 3, 1), "Catholic", "St. Anne School")
	require.Error(t, err)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "St. Anne School", nf.SchoolName)
	assert.Equal(t, day(2024, 3, 1), nf.From)
	assert.Equal(t, day(2024, 3, 31), nf.To)
	assert.Contains(t, nf.SchoolsInRange, "Catholic / St Anne", "near-matching names surface in diagnostics")
}

func TestRoundTrip_WriterToAggregator(t *testing.T) {
	store := newBookingStore()
	writer := booking.NewService(store, nil, nil, "", "")

	res, err := writer.Create(context.Background(), booking.CreateRequest{
		FirstName:      "Jane",
		LastName:       "Moore",
		Email:          "jane@school.example",
		SchoolName:     "St. Anne School",
		SchoolSystem:   "Catholic",
		Date:           day(2024, 3, 5), // Tuesday
		StartTime:      "11:00",
		Students:       24,
		TotalCostCents: 12500,
	})
	require.NoError(t, err)

	svc := NewService(store, nil)
	inv, err := svc.Build(context.Background(), day(2024, 3, 1), "Catholic", "St. Anne School")
	require.NoError(t, err)

	require.Equal(t, 1, inv.Count, "booking appears exactly once in its own month")
	assert.Equal(t, res.Booking.TotalCostCents, inv.TotalCents)
	assert.Equal(t, res.Booking.TotalMinutes, inv.TotalMinutes)
	assert.Equal(t, "Jane Moore", inv.Lines[0].Teacher)
}

func TestGenerate_ProducesPDF(t *testing.T) {
	store := newBookingStore()
	addBooking(t, store, day(2024, 3, 5), 11, "St. Anne School", "Catholic", 12500, booking.StatusConfirmed)

	svc := NewService(store, nil)
	inv, pdf, err := svc.Generate(context.Background(), day(2024, 3, 1), "Catholic", "St. Anne School")
	require.NoError(t, err)
	require.NotNil(t, inv)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestNumberFormatting(t *testing.T) {
	tests := []struct {
		system string
		school string
		want   string
	}{
		{"Catholic", "St. Anne School", "2024-03-CATH-SAS"},
		{"Saskatoon Public", "Lakeview School", "2024-03-PUB-LS"},
		{"Other", "Prairie Academy", "2024-03-OTHER-PA"},
		{"Independent", "Hilltop", "2024-03-OTHER-H"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(day(2024, 3, 1), tt.system, tt.school))
	}
}

func TestMonthBounds(t *testing.T) {
	from, to := MonthBounds(day(2024, 2, 15))
	assert.Equal(t, day(2024, 2, 1), from)
	assert.Equal(t, day(2024, 2, 29), to, "leap February")

	from, to = MonthBounds(day(2023, 12, 31))
	assert.Equal(t, day(2023, 12, 1), from)
	assert.Equal(t, day(2023, 12, 31), to)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$125.00", FormatCents(12500))
	assert.Equal(t, "$0.99", FormatCents(99))
	assert.Equal(t, "$0.00", FormatCents(0))
}
