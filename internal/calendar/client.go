package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const eventsURL = "https://www.googleapis.com/calendar/v3/calendars/%s/events"

// Event is a calendar event, either read from the external calendar or
// prepared for insertion.
type Event struct {
	ID          string
	HTMLLink    string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Attendees   []string
}

// Config holds the calendar connection settings.
type Config struct {
	CalendarID          string
	ServiceAccountEmail string
	PrivateKeyPEM       string
	Timezone            string
}

// Client talks to the Google Calendar REST API using a service account.
type Client struct {
	calendarID string
	timezone   string
	tokens     *tokenSource
	httpClient *http.Client
	baseURL    string
}

// New creates a calendar client. It fails fast if the private key is not a
// valid PEM-encoded RSA key, so misconfiguration surfaces at startup rather
// than on the first booking.
func New(cfg Config) (*Client, error) {
	httpClient := &http.Client{Timeout: 10 * time.Second}

	tokens, err := newTokenSource(cfg.ServiceAccountEmail, cfg.PrivateKeyPEM, httpClient)
	if err != nil {
		return nil, err
	}

	tz := cfg.Timezone
	if tz == "" {
		tz = "America/Regina"
	}

	return &Client{
		calendarID: cfg.CalendarID,
		timezone:   tz,
		tokens:     tokens,
		httpClient: httpClient,
		baseURL:    fmt.Sprintf(eventsURL, url.PathEscape(cfg.CalendarID)),
	}, nil
}

// apiDateTime mirrors the API's start/end representation. All-day events use
// Date instead of DateTime.
type apiDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type apiEvent struct {
	ID          string        `json:"id,omitempty"`
	HTMLLink    string        `json:"htmlLink,omitempty"`
	Summary     string        `json:"summary,omitempty"`
	Description string        `json:"description,omitempty"`
	Start       apiDateTime   `json:"start"`
	End         apiDateTime   `json:"end"`
	Attendees   []apiAttendee `json:"attendees,omitempty"`
	Reminders   *apiReminders `json:"reminders,omitempty"`
}

type apiAttendee struct {
	Email string `json:"email"`
}

type apiReminders struct {
	UseDefault bool          `json:"useDefault"`
	Overrides  []apiOverride `json:"overrides,omitempty"`
}

type apiOverride struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

// ListDayEvents returns the events scheduled on the given calendar day.
func (c *Client) ListDayEvents(ctx context.Context, day time.Time) ([]Event, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	q := url.Values{}
	q.Set("timeMin", dayStart.Format(time.RFC3339))
	q.Set("timeMax", dayEnd.Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build list events request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list events request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("list events returned status %d: %s", resp.StatusCode, body)
	}

	var list struct {
		Items []apiEvent `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode events response: %w", err)
	}

	events := make([]Event, 0, len(list.Items))
	for _, item := range list.Items {
		start, okStart := parseAPITime(item.Start)
		end, okEnd := parseAPITime(item.End)
		if !okStart || !okEnd {
			continue // skip malformed or all-day entries we cannot place in time
		}
		events = append(events, Event{
			ID:          item.ID,
			HTMLLink:    item.HTMLLink,
			Summary:     item.Summary,
			Description: item.Description,
			Start:       start,
			End:         end,
		})
	}
	return events, nil
}

// InsertEvent creates a new event on the calendar and returns it with the
// server-assigned ID and HTML link.
func (c *Client) InsertEvent(ctx context.Context, ev Event) (*Event, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	attendees := make([]apiAttendee, 0, len(ev.Attendees))
	for _, a := range ev.Attendees {
		attendees = append(attendees, apiAttendee{Email: a})
	}

	payload := apiEvent{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       apiDateTime{DateTime: ev.Start.Format(time.RFC3339), TimeZone: c.timezone},
		End:         apiDateTime{DateTime: ev.End.Format(time.RFC3339), TimeZone: c.timezone},
		Attendees:   attendees,
		Reminders: &apiReminders{
			UseDefault: false,
			Overrides: []apiOverride{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build insert event request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("insert event request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("insert event returned status %d: %s", resp.StatusCode, respBody)
	}

	var created apiEvent
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode insert event response: %w", err)
	}

	ev.ID = created.ID
	ev.HTMLLink = created.HTMLLink
	return &ev, nil
}

// parseAPITime converts the API's start/end object to a time.Time.
func parseAPITime(dt apiDateTime) (time.Time, bool) {
	if dt.DateTime == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, dt.DateTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
