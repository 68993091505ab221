package invoice

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/prairiesport/association-backend/internal/booking"
	"github.com/prairiesport/association-backend/internal/pkg/storage"
)

// BookingSource is the slice of the booking repository the aggregator reads.
type BookingSource interface {
	ListForInvoice(ctx context.Context, schoolSystem, schoolName string, from, to time.Time) ([]*booking.Booking, error)
	DistinctSchoolsInRange(ctx context.Context, from, to time.Time) ([]string, error)
}

type Service interface {
	// Build aggregates the qualifying bookings for one school and month.
	// Returns *NotFoundError when nothing matches.
	Build(ctx context.Context, monthStart time.Time, schoolSystem, schoolName string) (*Invoice, error)

	// Generate builds the aggregate and renders it as a PDF. When an archive
	// is configured, a copy of the document is stored as well (best effort).
	Generate(ctx context.Context, monthStart time.Time, schoolSystem, schoolName string) (*Invoice, []byte, error)
}

type service struct {
	bookings BookingSource
	archive  storage.Storage // nil disables archiving
}

func NewService(bookings BookingSource, archive storage.Storage) Service {
	return &service{
		bookings: bookings,
		archive:  archive,
	}
}

func (s *service) Build(ctx context.Context, monthStart time.Time, schoolSystem, schoolName string) (*Invoice, error) {
	from, to := MonthBounds(monthStart)

	matches, err := s.bookings.ListForInvoice(ctx, schoolSystem, schoolName, from, to)
	if err != nil {
		return nil, fmt.Errorf("invoice booking query failed: %w", err)
	}

	if len(matches) == 0 {
		// Courtesy diagnostics: surface the school identities that do have
		// bookings in the range, so name mismatches can be corrected by hand.
		schools, diagErr := s.bookings.DistinctSchoolsInRange(ctx, from, to)
		if diagErr != nil {
			log.Printf("invoice diagnostics query failed: %v", diagErr)
		}
		return nil, &NotFoundError{
			SchoolSystem:   schoolSystem,
			SchoolName:     schoolName,
			From:           from,
			To:             to,
			SchoolsInRange: schools,
		}
	}

	inv := &Invoice{
		Number:       Number(from, schoolSystem, schoolName),
		IssuedAt:     time.Now().UTC(),
		PeriodStart:  from,
		PeriodEnd:    to,
		SchoolSystem: schoolSystem,
		SchoolName:   schoolName,
		Count:        len(matches),
	}

	for _, b := range matches {
		inv.Lines = append(inv.Lines, Line{
			Date:      b.Date,
			Teacher:   b.TeacherName(),
			TimeRange: b.StartTime.Format("3:04 PM") + " - " + b.EndTime.Format("3:04 PM"),
			Minutes:   b.TotalMinutes,
			CostCents: b.TotalCostCents,
		})
		inv.TotalCents += b.TotalCostCents
		inv.TotalMinutes += b.TotalMinutes
	}

	return inv, nil
}

func (s *service) Generate(ctx context.Context, monthStart time.Time, schoolSystem, schoolName string) (*Invoice, []byte, error) {
	inv, err := s.Build(ctx, monthStart, schoolSystem, schoolName)
	if err != nil {
		return nil, nil, err
	}

	pdf, err := Render(inv)
	if err != nil {
		return nil, nil, fmt.Errorf("invoice render failed: %w", err)
	}

	if s.archive != nil {
		path := fmt.Sprintf("%d/%02d/%s.pdf", inv.PeriodStart.Year(), int(inv.PeriodStart.Month()), inv.Number)
		if err := s.archive.Save(ctx, path, bytes.NewReader(pdf)); err != nil {
			// Archiving is a convenience, never a reason to fail the request.
			log.Printf("failed to archive invoice %s: %v", inv.Number, err)
		}
	}

	return inv, pdf, nil
}
