package dialog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/oauth2"

	"github.com/jvjruiz/schedule-bot/bot"
	"github.com/jvjruiz/schedule-bot/dialog"
	"github.com/jvjruiz/schedule-bot/gcal"
	"github.com/jvjruiz/schedule-bot/logger"
	"github.com/jvjruiz/schedule-bot/tests/mocks"
)

func mustLoadLA(t *testing.T) *time.Location {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return la
}

func newTestEngine(t *testing.T) (*dialog.Engine, *mocks.MockAuthenticator, *mocks.MockEventSubmitter) {
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAuthenticator(ctrl)
	events := mocks.NewMockEventSubmitter(ctrl)

	la := mustLoadLA(t)
	e := dialog.NewEngine(auth, events, dialog.NewPrompts(nil), la, logger.NewNoOpLogger())
	// Sunday March 10, 2024, noon Pacific.
	e.SetClock(func() time.Time {
		return time.Date(2024, time.March, 10, 12, 0, 0, 0, la)
	})
	return e, auth, events
}

func newSession(convID string) *dialog.Session {
	return &dialog.Session{
		Address: bot.ConversationAddress{
			ChannelID:    "emulator",
			ServiceURL:   "http://localhost:3978",
			Bot:          bot.ChannelAccount{ID: "bot-1"},
			User:         bot.ChannelAccount{ID: "user-" + convID, Name: "Jordan"},
			Conversation: bot.ConversationAccount{ID: convID},
		},
		State: dialog.StateDefault,
	}
}

func TestFirstContactBeginsLogin(t *testing.T) {
	e, _, _ := newTestEngine(t)
	s := newSession("conv-1")

	replies := e.HandleMessage(context.Background(), s, "hello")
	require.Len(t, replies, 1)
	assert.Equal(t, "Hi! Would you like to login using google? (yes or no)", replies[0].Text)
	assert.Equal(t, dialog.StateLoginConfirm, s.State)
	assert.Equal(t, dialog.DialogLogin, s.ActiveDialog())
}

func TestLoginConfirm(t *testing.T) {
	t.Run("unrecognized answer re-prompts", func(t *testing.T) {
		e, _, _ := newTestEngine(t)
		s := newSession("conv-1")
		e.HandleMessage(context.Background(), s, "hello")

		replies := e.HandleMessage(context.Background(), s, "maybe later")
		require.Len(t, replies, 1)
		assert.Contains(t, replies[0].Text, "yes or no")
		assert.Equal(t, dialog.StateLoginConfirm, s.State)
	})

	t.Run("no ends the dialog with a farewell", func(t *testing.T) {
		e, _, _ := newTestEngine(t)
		s := newSession("conv-1")
		e.HandleMessage(context.Background(), s, "hello")

		replies := e.HandleMessage(context.Background(), s, "no")
		require.Len(t, replies, 1)
		assert.Equal(t, "Okay bye", replies[0].Text)
		assert.Equal(t, dialog.StateDefault, s.State)
		assert.Equal(t, dialog.DialogRoot, s.ActiveDialog())
	})

	t.Run("yes presents the sign-in card and suspends", func(t *testing.T) {
		e, auth, _ := newTestEngine(t)
		s := newSession("conv-1")
		e.HandleMessage(context.Background(), s, "hello")

		auth.EXPECT().AuthCodeURL(s.Address).Return("https://accounts.google.com/o/oauth2/auth?state=x", nil)

		replies := e.HandleMessage(context.Background(), s, "yes")
		require.Len(t, replies, 1)
		assert.Equal(t, "Authenticate with Google", replies[0].Text)
		assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?state=x", replies[0].SigninURL)
		assert.Equal(t, dialog.StateAwaitingCallback, s.State)
	})

	t.Run("message while awaiting callback re-presents the card", func(t *testing.T) {
		e, auth, _ := newTestEngine(t)
		s := newSession("conv-1")
		e.HandleMessage(context.Background(), s, "hello")

		auth.EXPECT().AuthCodeURL(s.Address).Return("https://example.com/auth", nil).Times(2)
		e.HandleMessage(context.Background(), s, "yes")

		replies := e.HandleMessage(context.Background(), s, "did it work?")
		require.Len(t, replies, 1)
		assert.NotEmpty(t, replies[0].SigninURL)
		assert.Equal(t, dialog.StateAwaitingCallback, s.State)
	})
}

func TestResumeWithTokens(t *testing.T) {
	e, _, _ := newTestEngine(t)
	s := newSession("conv-1")
	s.State = dialog.StateAwaitingCallback
	s.Stack = []dialog.DialogID{dialog.DialogLogin}

	token := &oauth2.Token{AccessToken: "at-1"}
	replies := e.ResumeWithTokens(s, token, "Jane Doe")

	require.Len(t, replies, 2)
	assert.Equal(t, "Sign-in successful. Welcome to the agency scheduler.", replies[0].Text)
	assert.Contains(t, replies[1].Text, "date and time for the meeting")

	assert.Equal(t, "Jane Doe", s.Identity)
	assert.Same(t, token, s.Token)
	assert.Equal(t, dialog.StateStartTime, s.State)
	assert.Equal(t, dialog.DialogSchedule, s.ActiveDialog())
	assert.NotNil(t, s.Pending)
}

func TestRepeatedResumeKeepsStackFlat(t *testing.T) {
	e, _, _ := newTestEngine(t)
	s := newSession("conv-1")
	s.State = dialog.StateAwaitingCallback
	s.Stack = []dialog.DialogID{dialog.DialogLogin}

	e.ResumeWithTokens(s, &oauth2.Token{AccessToken: "at-1"}, "Jane Doe")
	// A second redirect lands while the scheduling dialog is already active.
	e.ResumeWithTokens(s, &oauth2.Token{AccessToken: "at-2"}, "Jane Doe")

	assert.Len(t, s.Stack, 1)
	assert.Equal(t, dialog.DialogSchedule, s.ActiveDialog())
	assert.Equal(t, "at-2", s.Token.AccessToken)
	assert.Equal(t, dialog.StateStartTime, s.State)
	assert.NotNil(t, s.Pending)
}

func TestResumeWithoutIdentityFallsBackToAccountName(t *testing.T) {
	e, _, _ := newTestEngine(t)
	s := newSession("conv-1")
	s.State = dialog.StateAwaitingCallback

	e.ResumeWithTokens(s, &oauth2.Token{AccessToken: "at-1"}, "")
	assert.Equal(t, "Jordan", s.Identity)
}

// walkToInvitee drives a resumed session up to the invitee prompt.
func walkToInvitee(t *testing.T, e *dialog.Engine, s *dialog.Session) {
	t.Helper()
	ctx := context.Background()

	replies := e.HandleMessage(ctx, s, "July 14 at 7pm")
	require.Contains(t, replies[0].Text, "meeting end")

	replies = e.HandleMessage(ctx, s, "July 14 at 8pm")
	require.Contains(t, replies[0].Text, "Where")

	replies = e.HandleMessage(ctx, s, "Blue Bottle on Mint St")
	require.Contains(t, replies[0].Text, "reason")

	replies = e.HandleMessage(ctx, s, "Quarterly planning")
	require.Contains(t, replies[0].Text, "invite")
}

func TestSchedulingDialogSubmits(t *testing.T) {
	e, _, events := newTestEngine(t)
	la := mustLoadLA(t)
	s := newSession("conv-1")
	e.ResumeWithTokens(s, &oauth2.Token{AccessToken: "at-1"}, "Jane Doe")

	walkToInvitee(t, e, s)

	expected := gcal.EventRequest{
		Start:    time.Date(2024, time.July, 14, 19, 0, 0, 0, la),
		End:      time.Date(2024, time.July, 14, 20, 0, 0, 0, la),
		Location: "Blue Bottle on Mint St",
		Reason:   "Quarterly planning",
		Invitee:  "johndoe@gmail.com",
	}
	events.EXPECT().
		CreateEvent(gomock.Any(), s.Token, expected).
		Return(&gcal.EventResult{ID: "evt-1", HTMLLink: "https://calendar.google.com/event?eid=evt-1"}, nil)

	replies := e.HandleMessage(context.Background(), s, "johndoe@gmail.com")
	require.Len(t, replies, 1)

	// The confirmation echoes exactly what was collected, plus the link.
	assert.Contains(t, replies[0].Text, "Meeting confirmed")
	assert.Contains(t, replies[0].Text, "Jul 14, 2024 7:00 PM")
	assert.Contains(t, replies[0].Text, "Jul 14, 2024 8:00 PM")
	assert.Contains(t, replies[0].Text, "Blue Bottle on Mint St")
	assert.Contains(t, replies[0].Text, "Quarterly planning")
	assert.Contains(t, replies[0].Text, "https://calendar.google.com/event?eid=evt-1")

	// Terminal: the dialog ended and the accumulator is gone, but the
	// conversation stays signed in.
	assert.Equal(t, dialog.StateDefault, s.State)
	assert.Nil(t, s.Pending)
	assert.Equal(t, "Jane Doe", s.Identity)
	assert.NotNil(t, s.Token)
}

func TestSchedulingRepromptsOnInvalidInput(t *testing.T) {
	e, _, _ := newTestEngine(t)
	s := newSession("conv-1")
	e.ResumeWithTokens(s, &oauth2.Token{AccessToken: "at-1"}, "Jane Doe")
	ctx := context.Background()

	// Unparseable start time re-prompts without advancing.
	replies := e.HandleMessage(ctx, s, "whenever works for you")
	assert.Contains(t, replies[0].Text, "didn't catch")
	assert.Equal(t, dialog.StateStartTime, s.State)

	e.HandleMessage(ctx, s, "July 14 at 7pm")

	// An end before the start re-prompts the end state.
	replies = e.HandleMessage(ctx, s, "July 14 at 6pm")
	assert.Contains(t, replies[0].Text, "end after it starts")
	assert.Equal(t, dialog.StateEndTime, s.State)

	e.HandleMessage(ctx, s, "July 14 at 8pm")

	// Empty free text re-prompts.
	replies = e.HandleMessage(ctx, s, "   ")
	assert.Contains(t, replies[0].Text, "Where")
	assert.Equal(t, dialog.StateLocation, s.State)
}

func TestSubmitFailureEndsDialogWithoutEvent(t *testing.T) {
	e, _, events := newTestEngine(t)
	s := newSession("conv-1")
	e.ResumeWithTokens(s, &oauth2.Token{AccessToken: "at-1"}, "Jane Doe")

	walkToInvitee(t, e, s)

	events.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &gcal.APIError{StatusCode: 403, Err: errors.New("forbidden")})

	replies := e.HandleMessage(context.Background(), s, "johndoe@gmail.com")
	require.Len(t, replies, 1)
	assert.Equal(t, "There was an error making the event", replies[0].Text)

	// Terminal with nothing retained: restarting means a fresh dialog.
	assert.Equal(t, dialog.StateDefault, s.State)
	assert.Nil(t, s.Pending)
}

func TestAuthenticatedUserStartsSchedulingDirectly(t *testing.T) {
	e, _, _ := newTestEngine(t)
	s := newSession("conv-1")
	s.Identity = "Jane Doe"
	s.Token = &oauth2.Token{AccessToken: "at-1"}

	replies := e.HandleMessage(context.Background(), s, "set up a meeting")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "date and time for the meeting")
	assert.Equal(t, dialog.StateStartTime, s.State)
}

func TestLoginIntentRestartsLogin(t *testing.T) {
	e, _, _ := newTestEngine(t)
	s := newSession("conv-1")
	s.Identity = "Jane Doe"
	s.Token = &oauth2.Token{AccessToken: "at-1"}

	replies := e.HandleMessage(context.Background(), s, "login again please")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "login using google")
	assert.Equal(t, dialog.StateLoginConfirm, s.State)
}

// Two conversations interleaved turn by turn must never cross-contaminate
// their accumulators.
func TestConversationIsolation(t *testing.T) {
	e, _, events := newTestEngine(t)
	la := mustLoadLA(t)
	ctx := context.Background()

	s1 := newSession("conv-1")
	s2 := newSession("conv-2")
	e.ResumeWithTokens(s1, &oauth2.Token{AccessToken: "at-1"}, "One")
	e.ResumeWithTokens(s2, &oauth2.Token{AccessToken: "at-2"}, "Two")

	e.HandleMessage(ctx, s1, "July 14 at 7pm")
	e.HandleMessage(ctx, s2, "July 15 at 9am")
	e.HandleMessage(ctx, s1, "July 14 at 8pm")
	e.HandleMessage(ctx, s2, "July 15 at 10am")
	e.HandleMessage(ctx, s1, "Office")
	e.HandleMessage(ctx, s2, "Cafe")
	e.HandleMessage(ctx, s1, "Standup")
	e.HandleMessage(ctx, s2, "Review")

	events.EXPECT().CreateEvent(gomock.Any(), s1.Token, gcal.EventRequest{
		Start:    time.Date(2024, time.July, 14, 19, 0, 0, 0, la),
		End:      time.Date(2024, time.July, 14, 20, 0, 0, 0, la),
		Location: "Office",
		Reason:   "Standup",
		Invitee:  "a@example.com",
	}).Return(&gcal.EventResult{HTMLLink: "https://cal/1"}, nil)

	events.EXPECT().CreateEvent(gomock.Any(), s2.Token, gcal.EventRequest{
		Start:    time.Date(2024, time.July, 15, 9, 0, 0, 0, la),
		End:      time.Date(2024, time.July, 15, 10, 0, 0, 0, la),
		Location: "Cafe",
		Reason:   "Review",
		Invitee:  "b@example.com",
	}).Return(&gcal.EventResult{HTMLLink: "https://cal/2"}, nil)

	r1 := e.HandleMessage(ctx, s1, "a@example.com")
	r2 := e.HandleMessage(ctx, s2, "b@example.com")

	assert.Contains(t, r1[0].Text, "Office")
	assert.Contains(t, r2[0].Text, "Cafe")
	assert.NotContains(t, r1[0].Text, "Cafe")
	assert.NotContains(t, r2[0].Text, "Office")
}

func TestPromptOverrides(t *testing.T) {
	prompts := dialog.NewPrompts(map[string]string{
		dialog.PromptLoginConfirm: "Möchtest du dich mit Google anmelden? (ja/nein)",
		"not_a_prompt":            "ignored",
	})
	assert.Equal(t, "Möchtest du dich mit Google anmelden? (ja/nein)", prompts.Get(dialog.PromptLoginConfirm))
	assert.Equal(t, "Okay bye", prompts.Get(dialog.PromptFarewell))
}
