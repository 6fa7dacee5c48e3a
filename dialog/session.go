// Package dialog is the conversational core: the multi-step state machine
// that collects meeting details across turns, the per-conversation session
// that accumulates them, and the manager that keeps conversations isolated.
// It has no knowledge of HTTP or the messaging transport.
package dialog

import (
	"time"

	"golang.org/x/oauth2"

	"github.com/jvjruiz/schedule-bot/bot"
)

// DialogID names a dialog on the session's suspension stack.
type DialogID string

const (
	DialogRoot     DialogID = "/"
	DialogLogin    DialogID = "/login"
	DialogSchedule DialogID = "/schedule"
)

// State is the machine state a conversation is suspended in. Each prompt
// state expects exactly one kind of response and advances only on a valid
// one; StateAwaitingCallback is resumed by the OAuth redirect, not by the
// user.
type State int

const (
	StateDefault State = iota
	StateLoginConfirm
	StateAwaitingCallback
	StateStartTime
	StateEndTime
	StateLocation
	StateReason
	StateInvitee
)

func (s State) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StateLoginConfirm:
		return "login-confirm"
	case StateAwaitingCallback:
		return "awaiting-callback"
	case StateStartTime:
		return "schedule-start"
	case StateEndTime:
		return "schedule-end"
	case StateLocation:
		return "schedule-location"
	case StateReason:
		return "schedule-reason"
	case StateInvitee:
		return "schedule-invitee"
	default:
		return "unknown"
	}
}

// SchedulingRequest accumulates the five fields collected across the
// scheduling dialog's turns. It is submitted as a calendar event only once
// Complete, and exactly once.
type SchedulingRequest struct {
	Start    time.Time
	End      time.Time
	Location string
	Reason   string
	Invitee  string
}

func (r *SchedulingRequest) Complete() bool {
	return r != nil &&
		!r.Start.IsZero() && !r.End.IsZero() &&
		r.Location != "" && r.Reason != "" && r.Invitee != ""
}

// Session is all per-conversation state. Sessions are never shared between
// conversations and are only touched under the manager's per-conversation
// lock.
type Session struct {
	Address   bot.ConversationAddress
	Identity  string
	Token     *oauth2.Token
	Pending   *SchedulingRequest
	Stack     []DialogID
	State     State
	UpdatedAt time.Time
}

func (s *Session) beginDialog(id DialogID) {
	s.Stack = append(s.Stack, id)
}

// endDialog pops the innermost dialog and clears its accumulator. The
// session's credentials and identity survive; they belong to the
// conversation, not the dialog instance.
func (s *Session) endDialog() {
	if n := len(s.Stack); n > 0 {
		s.Stack = s.Stack[:n-1]
	}
	s.Pending = nil
	s.State = StateDefault
}

// ActiveDialog returns the dialog currently in control, or DialogRoot.
func (s *Session) ActiveDialog() DialogID {
	if n := len(s.Stack); n > 0 {
		return s.Stack[n-1]
	}
	return DialogRoot
}
