package gcal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/jvjruiz/schedule-bot/logger"
)

func testRequest(t *testing.T) EventRequest {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return EventRequest{
		Start:    time.Date(2024, time.July, 14, 19, 0, 0, 0, la),
		End:      time.Date(2024, time.July, 14, 20, 0, 0, 0, la),
		Location: "Blue Bottle on Mint St",
		Reason:   "Quarterly planning",
		Invitee:  "johndoe@gmail.com",
	}
}

func TestBuildEvent(t *testing.T) {
	c := NewClient(&oauth2.Config{}, "primary", "America/Los_Angeles", logger.NewNoOpLogger())
	ev := c.buildEvent(testRequest(t))

	assert.Equal(t, "Quarterly planning", ev.Summary)
	assert.Equal(t, "Blue Bottle on Mint St", ev.Location)

	require.Len(t, ev.Attendees, 1)
	assert.Equal(t, "johndoe@gmail.com", ev.Attendees[0].Email)

	assert.Equal(t, "2024-07-14T19:00:00-07:00", ev.Start.DateTime)
	assert.Equal(t, "2024-07-14T20:00:00-07:00", ev.End.DateTime)
	assert.Equal(t, "America/Los_Angeles", ev.Start.TimeZone)
	assert.Equal(t, "America/Los_Angeles", ev.End.TimeZone)

	require.NotNil(t, ev.Reminders)
	assert.False(t, ev.Reminders.UseDefault)
	assert.Contains(t, ev.Reminders.ForceSendFields, "UseDefault")
	require.Len(t, ev.Reminders.Overrides, 1)
	assert.Equal(t, "email", ev.Reminders.Overrides[0].Method)
	assert.Equal(t, int64(30), ev.Reminders.Overrides[0].Minutes)
}

func TestCreateEvent(t *testing.T) {
	var gotPath, gotSendUpdates string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSendUpdates = r.URL.Query().Get("sendUpdates")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"evt-1","htmlLink":"https://calendar.google.com/event?eid=evt-1","summary":"Quarterly planning"}`))
	}))
	defer srv.Close()

	c := NewClient(&oauth2.Config{}, "primary", "America/Los_Angeles", logger.NewNoOpLogger(),
		option.WithEndpoint(srv.URL), option.WithoutAuthentication())

	result, err := c.CreateEvent(context.Background(), &oauth2.Token{AccessToken: "at-1"}, testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, "evt-1", result.ID)
	assert.Equal(t, "https://calendar.google.com/event?eid=evt-1", result.HTMLLink)
	assert.Contains(t, gotPath, "/calendars/primary/events")
	assert.Equal(t, "all", gotSendUpdates)
}

func TestCreateEventRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"insufficient permissions"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(&oauth2.Config{}, "primary", "America/Los_Angeles", logger.NewNoOpLogger(),
		option.WithEndpoint(srv.URL), option.WithoutAuthentication())

	_, err := c.CreateEvent(context.Background(), &oauth2.Token{AccessToken: "at-1"}, testRequest(t))
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}
