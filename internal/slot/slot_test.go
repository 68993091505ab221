package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestForDate_RuleTable(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		wantTimes []string
	}{
		{
			name:      "Monday has one slot",
			date:      date(2024, 3, 4),
			wantTimes: []string{"11:00"},
		},
		{
			name:      "Tuesday has three slots",
			date:      date(2024, 3, 5),
			wantTimes: []string{"11:00", "12:00", "13:00"},
		},
		{
			name:      "Wednesday has three slots",
			date:      date(2024, 3, 6),
			wantTimes: []string{"11:00", "12:00", "13:00"},
		},
		{
			name:      "Thursday has three slots",
			date:      date(2024, 3, 7),
			wantTimes: []string{"11:00", "12:00", "13:00"},
		},
		{
			name:      "Friday has five slots",
			date:      date(2024, 3, 8),
			wantTimes: []string{"11:00", "12:00", "13:00", "14:00", "15:00"},
		},
		{
			name:      "Saturday has no slots",
			date:      date(2024, 3, 9),
			wantTimes: []string{},
		},
		{
			name:      "Sunday has no slots",
			date:      date(2024, 3, 10),
			wantTimes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := ForDate(tt.date)
			require.Len(t, slots, len(tt.wantTimes))
			for i, s := range slots {
				assert.Equal(t, tt.wantTimes[i], s.Time)
				assert.True(t, s.Available)
				assert.Equal(t, time.Hour, s.End.Sub(s.Start), "all slots are one hour")
			}
		})
	}
}

func TestForDate_SlotsDoNotOverlap(t *testing.T) {
	// Friday: five slots spanning 11:00-16:00, back to back.
	slots := ForDate(date(2024, 3, 8))
	require.Len(t, slots, 5)

	assert.Equal(t, 11, slots[0].Start.Hour())
	assert.Equal(t, 16, slots[4].End.Hour())
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].Start.Equal(slots[i-1].End), "slot %d starts when slot %d ends", i, i-1)
	}
}

func TestForDate_MondayScenario(t *testing.T) {
	// 2024-03-04 is a Monday.
	slots := ForDate(date(2024, 3, 4))
	require.Len(t, slots, 1)
	assert.Equal(t, "11:00", slots[0].Time)
	assert.Equal(t, "11:00 AM - 12:00 PM", slots[0].Display)
	assert.True(t, slots[0].Available)
}

func TestForDate_DisplayFormat(t *testing.T) {
	slots := ForDate(date(2024, 3, 5)) // Tuesday
	require.Len(t, slots, 3)
	assert.Equal(t, "11:00 AM - 12:00 PM", slots[0].Display)
	assert.Equal(t, "12:00 PM - 1:00 PM", slots[1].Display)
	assert.Equal(t, "1:00 PM - 2:00 PM", slots[2].Display)
}

func TestMarkConflicts(t *testing.T) {
	day := date(2024, 3, 5) // Tuesday
	slots := ForDate(day)
	require.Len(t, slots, 3)

	at := func(h int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, time.UTC)
	}

	t.Run("existing event occupying 12:00-13:00 marks only that slot", func(t *testing.T) {
		marked := MarkConflicts(slots, []Interval{{Start: at(12), End: at(13)}})
		require.Len(t, marked, 3)
		assert.True(t, marked[0].Available, "11:00-12:00 stays available")
		assert.False(t, marked[1].Available, "12:00-13:00 conflicts")
		assert.True(t, marked[2].Available, "13:00-14:00 stays available")
	})

	t.Run("mid-slot event marks only the containing slot", func(t *testing.T) {
		marked := MarkConflicts(slots, []Interval{
			{Start: at(12).Add(15 * time.Minute), End: at(12).Add(45 * time.Minute)},
		})
		assert.True(t, marked[0].Available)
		assert.False(t, marked[1].Available)
		assert.True(t, marked[2].Available)
	})

	t.Run("no busy intervals leaves slots untouched", func(t *testing.T) {
		marked := MarkConflicts(slots, nil)
		for _, s := range marked {
			assert.True(t, s.Available)
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		_ = MarkConflicts(slots, []Interval{{Start: at(11), End: at(16)}})
		for _, s := range slots {
			assert.True(t, s.Available)
		}
	})
}

func TestFind(t *testing.T) {
	day := date(2024, 3, 8) // Friday

	s, ok := Find(day, "14:00")
	require.True(t, ok)
	assert.Equal(t, 14, s.Start.Hour())
	assert.Equal(t, 15, s.End.Hour())

	_, ok = Find(day, "16:00")
	assert.False(t, ok, "Friday has no 16:00 slot")

	_, ok = Find(date(2024, 3, 9), "11:00")
	assert.False(t, ok, "Saturday offers no slots")
}
