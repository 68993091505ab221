package slot

import (
	"time"
)

// Slot is a candidate bookable interval for a given date. Slots are computed
// fresh per request from the weekday rule table and are never persisted.
type Slot struct {
	Start     time.Time
	End       time.Time
	Time      string // 24h start time, e.g. "11:00"
	Display   string // e.g. "11:00 AM - 12:00 PM"
	Available bool
}

// Interval is an occupied time range used to mark slot conflicts.
type Interval struct {
	Start time.Time
	End   time.Time
}

// startHours is the single source of truth for the availability rules,
// keyed by weekday. Each entry is the starting hour of a one-hour slot.
var startHours = map[time.Weekday][]int{
	time.Monday:    {11},
	time.Tuesday:   {11, 12, 13},
	time.Wednesday: {11, 12, 13},
	time.Thursday:  {11, 12, 13},
	time.Friday:    {11, 12, 13, 14, 15},
}

// ForDate returns the ordered candidate slots for the given date, all marked
// available. Weekends have no slots.
func ForDate(date time.Time) []Slot {
	hours, ok := startHours[date.Weekday()]
	if !ok {
		return []Slot{}
	}

	slots := make([]Slot, 0, len(hours))
	for _, h := range hours {
		start := time.Date(date.Year(), date.Month(), date.Day(), h, 0, 0, 0, date.Location())
		end := start.Add(time.Hour)
		slots = append(slots, Slot{
			Start:     start,
			End:       end,
			Time:      start.Format("15:04"),
			Display:   start.Format("3:04 PM") + " - " + end.Format("3:04 PM"),
			Available: true,
		})
	}
	return slots
}

// MarkConflicts returns a copy of slots with any slot overlapping a busy
// interval marked unavailable. Intervals are treated as half-open: an event
// ending exactly when a slot starts (or starting when it ends) does not
// conflict, so back-to-back slots stay independently bookable.
func MarkConflicts(slots []Slot, busy []Interval) []Slot {
	if len(busy) == 0 {
		return slots
	}

	marked := make([]Slot, len(slots))
	copy(marked, slots)

	for i := range marked {
		for _, b := range busy {
			if b.Start.Before(marked[i].End) && b.End.After(marked[i].Start) {
				marked[i].Available = false
				break
			}
		}
	}
	return marked
}

// Find returns the slot starting at the given 24h time string ("11:00") for
// the date, or false if the date offers no such slot.
func Find(date time.Time, startTime string) (Slot, bool) {
	for _, s := range ForDate(date) {
		if s.Time == startTime {
			return s, true
		}
	}
	return Slot{}, false
}
