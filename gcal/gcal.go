// Package gcal submits collected scheduling requests to Google Calendar.
// The client is stateless: credentials come in with every call.
package gcal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	l "github.com/jvjruiz/schedule-bot/logger"
)

// reminderLeadMinutes is how far ahead of the meeting the email reminder
// fires. Default reminders are disabled in favor of this single override.
const reminderLeadMinutes = 30

// APIError wraps a rejected event-creation call. Callers surface it to the
// user and never retry automatically.
type APIError struct {
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("calendar api error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("calendar api error: %v", e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// EventRequest is the fully collected scheduling request, ready to submit.
type EventRequest struct {
	Start    time.Time
	End      time.Time
	Location string
	Reason   string
	Invitee  string
}

// EventResult reports the created event back to the dialog.
type EventResult struct {
	ID       string
	HTMLLink string
}

// Client creates events on the configured calendar with caller credentials.
type Client struct {
	oauth      *oauth2.Config
	calendarID string
	timezone   string
	logger     l.Logger
	opts       []option.ClientOption
}

// NewClient builds a calendar client. When options are supplied they replace
// the default token-source credentials; tests use this to point the service
// at a local server.
func NewClient(oauth *oauth2.Config, calendarID, timezone string, logger l.Logger, opts ...option.ClientOption) *Client {
	return &Client{
		oauth:      oauth,
		calendarID: calendarID,
		timezone:   timezone,
		logger:     logger,
		opts:       opts,
	}
}

// CreateEvent inserts the event and requests notification emails for the
// attendee. The token source refreshes the access token if it has expired.
func (c *Client) CreateEvent(ctx context.Context, token *oauth2.Token, req EventRequest) (*EventResult, error) {
	opts := c.opts
	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithTokenSource(c.oauth.TokenSource(ctx, token)),
		}
	}
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, &APIError{Err: fmt.Errorf("creating calendar service: %w", err)}
	}

	created, err := svc.Events.Insert(c.calendarID, c.buildEvent(req)).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return nil, &APIError{StatusCode: gerr.Code, Err: err}
		}
		return nil, &APIError{Err: err}
	}

	c.logger.Info("calendar event created",
		"event", created.Id, "calendar", c.calendarID, "summary", created.Summary)
	return &EventResult{ID: created.Id, HTMLLink: created.HtmlLink}, nil
}

// buildEvent maps the scheduling request onto the provider's event schema.
func (c *Client) buildEvent(req EventRequest) *calendar.Event {
	return &calendar.Event{
		Summary:  req.Reason,
		Location: req.Location,
		Attendees: []*calendar.EventAttendee{
			{Email: req.Invitee},
		},
		Start: &calendar.EventDateTime{
			DateTime: req.Start.Format(time.RFC3339),
			TimeZone: c.timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: req.End.Format(time.RFC3339),
			TimeZone: c.timezone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: reminderLeadMinutes},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}
