package dialog

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/jvjruiz/schedule-bot/gcal"
	l "github.com/jvjruiz/schedule-bot/logger"
	"github.com/jvjruiz/schedule-bot/timeparse"
)

// echoTimeFormat renders collected times back to the user in the
// confirmation message.
const echoTimeFormat = "Jan 2, 2006 3:04 PM"

// Reply is one outbound message produced by a transition. SigninURL is set
// only for the turn that presents the sign-in card.
type Reply struct {
	Text      string
	SigninURL string
}

var loginRe = regexp.MustCompile(`(?i)^login`)

// Engine is the transition function over sessions. It is stateless itself;
// all per-conversation state lives in the Session, so one engine serves
// every conversation concurrently.
type Engine struct {
	auth    Authenticator
	events  EventSubmitter
	prompts *Prompts
	loc     *time.Location
	logger  l.Logger
	now     func() time.Time
}

func NewEngine(auth Authenticator, events EventSubmitter, prompts *Prompts, loc *time.Location, logger l.Logger) *Engine {
	return &Engine{
		auth:    auth,
		events:  events,
		prompts: prompts,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

// SetClock fixes the reference time used for date resolution. Tests use it
// to make "July 14 at 7pm" deterministic.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Prompts exposes the catalog for callers that message users outside a turn,
// such as the OAuth callback reporting a failed sign-in.
func (e *Engine) Prompts() *Prompts {
	return e.prompts
}

// HandleMessage processes one user turn: it validates the input expected by
// the session's current state, stores it into the accumulator, and either
// advances or re-prompts. Invalid input never advances the machine.
func (e *Engine) HandleMessage(ctx context.Context, s *Session, text string) []Reply {
	text = strings.TrimSpace(text)
	e.logger.Debug("handling turn", "state", s.State.String(), "dialog", string(s.ActiveDialog()))

	switch s.State {
	case StateDefault:
		return e.routeDefault(ctx, s, text)
	case StateLoginConfirm:
		return e.handleLoginConfirm(s, text)
	case StateAwaitingCallback:
		// Not a user-facing prompt; a message here just gets a fresh link.
		return e.presentSignin(s)
	default:
		return e.handleScheduling(ctx, s, text)
	}
}

// routeDefault is the top-level intent router: users without an identity go
// to the login dialog, as does anyone asking to log in again; an
// authenticated user with no active dialog starts scheduling directly.
func (e *Engine) routeDefault(ctx context.Context, s *Session, text string) []Reply {
	if s.Identity == "" || loginRe.MatchString(text) {
		s.beginDialog(DialogLogin)
		s.State = StateLoginConfirm
		return []Reply{{Text: e.prompts.Get(PromptLoginConfirm)}}
	}
	if s.Token != nil {
		s.beginDialog(DialogSchedule)
		s.Pending = &SchedulingRequest{}
		s.State = StateStartTime
		return []Reply{{Text: e.prompts.Get(PromptStartTime)}}
	}
	s.beginDialog(DialogLogin)
	s.State = StateLoginConfirm
	return []Reply{{Text: e.prompts.Get(PromptLoginConfirm)}}
}

func (e *Engine) handleLoginConfirm(s *Session, text string) []Reply {
	confirmed, ok := parseYesNo(text)
	if !ok {
		return []Reply{{Text: e.prompts.Get(PromptLoginRetry)}}
	}
	if !confirmed {
		s.endDialog()
		return []Reply{{Text: e.prompts.Get(PromptFarewell)}}
	}
	return e.presentSignin(s)
}

func (e *Engine) presentSignin(s *Session) []Reply {
	url, err := e.auth.AuthCodeURL(s.Address)
	if err != nil {
		e.logger.Error("building authorization url", err, "conversation", s.Address.Conversation.ID)
		s.endDialog()
		return []Reply{{Text: e.prompts.Get(PromptSigninFailed)}}
	}
	s.State = StateAwaitingCallback
	return []Reply{{Text: e.prompts.Get(PromptSigninCard), SigninURL: url}}
}

// ResumeWithTokens is the external resume point: the OAuth callback fires it
// with the exchanged token bundle. It stores the credentials, swaps the
// suspended login dialog for the scheduling dialog, and issues the first
// scheduling prompt. Like the original, it resumes regardless of the state
// the session was suspended in.
func (e *Engine) ResumeWithTokens(s *Session, token *oauth2.Token, identity string) []Reply {
	s.Token = token
	if identity == "" {
		identity = s.Address.User.Name
	}
	if identity == "" {
		identity = "there"
	}
	s.Identity = identity

	// A duplicate or stale callback may fire with the scheduling dialog
	// already active; unwind whatever is on the stack so the push below never
	// accumulates entries across resumes.
	for s.ActiveDialog() != DialogRoot {
		s.endDialog()
	}
	s.beginDialog(DialogSchedule)
	s.Pending = &SchedulingRequest{}
	s.State = StateStartTime

	return []Reply{
		{Text: e.prompts.Get(PromptWelcome)},
		{Text: e.prompts.Get(PromptStartTime)},
	}
}

func (e *Engine) handleScheduling(ctx context.Context, s *Session, text string) []Reply {
	if s.Pending == nil {
		// A scheduling state without an accumulator means the session was
		// reset underneath us; start over from the router.
		s.State = StateDefault
		return e.routeDefault(ctx, s, text)
	}

	switch s.State {
	case StateStartTime:
		t, err := timeparse.Resolve(text, e.now(), e.loc)
		if err != nil {
			return []Reply{{Text: e.prompts.Get(PromptRetryTime)}}
		}
		s.Pending.Start = t
		s.State = StateEndTime
		return []Reply{{Text: e.prompts.Get(PromptEndTime)}}

	case StateEndTime:
		t, err := timeparse.Resolve(text, e.now(), e.loc)
		if err != nil {
			return []Reply{{Text: e.prompts.Get(PromptRetryTime)}}
		}
		if !t.After(s.Pending.Start) {
			start := s.Pending.Start.Format(echoTimeFormat)
			return []Reply{{Text: e.prompts.Get(PromptEndNotAfterStart, start)}}
		}
		s.Pending.End = t
		s.State = StateLocation
		return []Reply{{Text: e.prompts.Get(PromptLocation)}}

	case StateLocation:
		if text == "" {
			return []Reply{{Text: e.prompts.Get(PromptRetryText, e.prompts.Get(PromptLocation))}}
		}
		s.Pending.Location = text
		s.State = StateReason
		return []Reply{{Text: e.prompts.Get(PromptReason)}}

	case StateReason:
		if text == "" {
			return []Reply{{Text: e.prompts.Get(PromptRetryText, e.prompts.Get(PromptReason))}}
		}
		s.Pending.Reason = text
		s.State = StateInvitee
		return []Reply{{Text: e.prompts.Get(PromptInvitee)}}

	case StateInvitee:
		if text == "" {
			return []Reply{{Text: e.prompts.Get(PromptRetryText, e.prompts.Get(PromptInvitee))}}
		}
		s.Pending.Invitee = text
		return e.submit(ctx, s)
	}

	e.logger.Warn("turn in unexpected state", "state", s.State.String())
	s.endDialog()
	return e.routeDefault(ctx, s, text)
}

// submit assembles the completed request and creates the calendar event,
// all-or-nothing. The accumulator is cleared before replying, so a duplicate
// turn can never submit twice; either outcome ends the dialog.
func (e *Engine) submit(ctx context.Context, s *Session) []Reply {
	req := *s.Pending
	token := s.Token
	s.endDialog()

	if !req.Complete() {
		e.logger.Warn("submit reached with incomplete request")
		return []Reply{{Text: e.prompts.Get(PromptEventFailed)}}
	}

	result, err := e.events.CreateEvent(ctx, token, gcal.EventRequest{
		Start:    req.Start,
		End:      req.End,
		Location: req.Location,
		Reason:   req.Reason,
		Invitee:  req.Invitee,
	})
	if err != nil {
		e.logger.Error("creating calendar event", err, "conversation", s.Address.Conversation.ID)
		return []Reply{{Text: e.prompts.Get(PromptEventFailed)}}
	}

	return []Reply{{Text: e.prompts.Get(PromptEventConfirmed,
		req.Start.Format(echoTimeFormat),
		req.End.Format(echoTimeFormat),
		req.Location,
		req.Reason,
		result.HTMLLink,
	)}}
}

func parseYesNo(text string) (confirmed bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "y", "yeah", "yep", "sure", "ok", "okay":
		return true, true
	case "no", "n", "nope", "nah":
		return false, true
	}
	return false, false
}
