package invoice

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Invoice is a computed, non-persisted summary of all qualifying bookings
// for one school in one month. It is rebuilt from the booking table on every
// request.
type Invoice struct {
	Number       string
	IssuedAt     time.Time
	PeriodStart  time.Time
	PeriodEnd    time.Time
	SchoolSystem string
	SchoolName   string

	Lines        []Line
	TotalCents   int64
	TotalMinutes int
	Count        int
}

// Line is one invoice row, derived from a confirmed or completed booking.
type Line struct {
	Date      time.Time
	Teacher   string
	TimeRange string
	Minutes   int
	CostCents int64
}

// NotFoundError reports that no qualifying bookings matched. It carries the
// searched identity and range plus the school identities that do have
// bookings in the range, to help diagnose name-mismatch data entry.
type NotFoundError struct {
	SchoolSystem   string
	SchoolName     string
	From           time.Time
	To             time.Time
	SchoolsInRange []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no bookings found for %s / %s between %s and %s",
		e.SchoolSystem, e.SchoolName,
		e.From.Format("2006-01-02"), e.To.Format("2006-01-02"))
}

// SystemCode returns the fixed three-to-five letter code used in invoice
// numbers for a school system.
func SystemCode(system string) string {
	switch system {
	case "Catholic":
		return "CATH"
	case "Saskatoon Public":
		return "PUB"
	default:
		return "OTHER"
	}
}

// Number formats an invoice number as {year}-{month}-{systemCode}-{initials}.
func Number(period time.Time, system, school string) string {
	return fmt.Sprintf("%d-%02d-%s-%s", period.Year(), int(period.Month()), SystemCode(system), schoolInitials(school))
}

// schoolInitials derives a short identifier from the school name: the first
// letter of each word, uppercased. Falls back to "SCHOOL" for empty input.
func schoolInitials(name string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				sb.WriteRune(unicode.ToUpper(r))
				break
			}
		}
	}
	if sb.Len() == 0 {
		return "SCHOOL"
	}
	return sb.String()
}

// MonthBounds normalizes any date inside a month to that month's first and
// last calendar day.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// FormatCents renders a cent amount as decimal dollars for display.
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
