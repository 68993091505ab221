package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client pointed at a local server with a pre-seeded
// access token, so no key material or token exchange is involved.
func newTestClient(serverURL string) *Client {
	return &Client{
		calendarID: "primary",
		timezone:   "America/Regina",
		tokens: &tokenSource{
			token:   "test-token",
			expires: time.Now().Add(time.Hour),
		},
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    serverURL + "/calendars/primary/events",
	}
}

func TestListDayEvents(t *testing.T) {
	var gotQuery map[string]string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{
			"timeMin":      r.URL.Query().Get("timeMin"),
			"timeMax":      r.URL.Query().Get("timeMax"),
			"singleEvents": r.URL.Query().Get("singleEvents"),
			"orderBy":      r.URL.Query().Get("orderBy"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [
			{"id": "ev1", "summary": "Morning session",
			 "start": {"dateTime": "2024-03-05T11:00:00Z"},
			 "end":   {"dateTime": "2024-03-05T12:00:00Z"}},
			{"id": "ev2", "summary": "All day",
			 "start": {"date": "2024-03-05"},
			 "end":   {"date": "2024-03-06"}}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	events, err := c.ListDayEvents(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "2024-03-05T00:00:00Z", gotQuery["timeMin"])
	assert.Equal(t, "2024-03-06T00:00:00Z", gotQuery["timeMax"])
	assert.Equal(t, "true", gotQuery["singleEvents"])
	assert.Equal(t, "startTime", gotQuery["orderBy"])

	require.Len(t, events, 1, "all-day events without a dateTime are skipped")
	assert.Equal(t, "ev1", events[0].ID)
	assert.Equal(t, time.Date(2024, 3, 5, 11, 0, 0, 0, time.UTC), events[0].Start)
}

func TestListDayEvents_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "backend unavailable"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ListDayEvents(context.Background(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestInsertEvent(t *testing.T) {
	var gotBody apiEvent

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "created-1", "htmlLink": "https://calendar.example/created-1"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	created, err := c.InsertEvent(context.Background(), Event{
		Summary:     "SPED Session - St. Anne School",
		Description: "Teacher: Jane Moore",
		Start:       time.Date(2024, 3, 5, 11, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		Attendees:   []string{"jane@school.example", "coach@example.org"},
	})
	require.NoError(t, err)

	assert.Equal(t, "created-1", created.ID)
	assert.Equal(t, "https://calendar.example/created-1", created.HTMLLink)

	assert.Equal(t, "SPED Session - St. Anne School", gotBody.Summary)
	assert.Equal(t, "2024-03-05T11:00:00Z", gotBody.Start.DateTime)
	assert.Equal(t, "America/Regina", gotBody.Start.TimeZone)
	require.Len(t, gotBody.Attendees, 2)

	require.NotNil(t, gotBody.Reminders)
	assert.False(t, gotBody.Reminders.UseDefault)
	require.Len(t, gotBody.Reminders.Overrides, 2)
	assert.Equal(t, apiOverride{Method: "email", Minutes: 1440}, gotBody.Reminders.Overrides[0])
	assert.Equal(t, apiOverride{Method: "popup", Minutes: 30}, gotBody.Reminders.Overrides[1])
}

func TestInsertEvent_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "forbidden"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.InsertEvent(context.Background(), Event{
		Summary: "x",
		Start:   time.Now(),
		End:     time.Now().Add(time.Hour),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
