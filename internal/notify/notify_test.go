package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForBooking_ProducesThreeNotifications(t *testing.T) {
	d := BookingDetails{
		TeacherName:  "Jane Moore",
		TeacherEmail: "jane@school.example",
		SchoolName:   "St. Anne School",
		Date:         "2024-03-05",
		TimeRange:    "11:00 AM - 12:00 PM",
		Students:     "24",
		Coach:        "Sam",
		EventLink:    "https://calendar.example/event/abc",
	}

	out := ForBooking(d, "admin@assoc.example", "coach@assoc.example")
	require.Len(t, out, 3)

	assert.Equal(t, "jane@school.example", out[0].Recipient)
	assert.Equal(t, TemplateTeacherConfirmation, out[0].Template)

	assert.Equal(t, "coach@assoc.example", out[1].Recipient)
	assert.Equal(t, TemplateCoachNotification, out[1].Template)

	assert.Equal(t, "admin@assoc.example", out[2].Recipient)
	assert.Equal(t, TemplateAdminNotification, out[2].Template)

	for _, n := range out {
		assert.Equal(t, "St. Anne School", n.Data["school_name"])
		assert.Equal(t, "https://calendar.example/event/abc", n.Data["event_link"])
		assert.Contains(t, n.Subject, "2024-03-05")
	}
}

func TestForBooking_SkipsMissingRecipients(t *testing.T) {
	d := BookingDetails{
		TeacherName: "No Email",
		SchoolName:  "Lakeview",
		Date:        "2024-03-06",
	}

	out := ForBooking(d, "", "coach@assoc.example")
	require.Len(t, out, 1)
	assert.Equal(t, TemplateCoachNotification, out[0].Template)
}
