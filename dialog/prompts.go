package dialog

import "fmt"

// Prompt keys, overridable through the configured prompts file.
const (
	PromptLoginConfirm     = "login_confirm"
	PromptLoginRetry       = "login_retry"
	PromptFarewell         = "farewell"
	PromptSigninCard       = "signin_card"
	PromptWelcome          = "welcome"
	PromptStartTime        = "start_time"
	PromptEndTime          = "end_time"
	PromptLocation         = "location"
	PromptReason           = "reason"
	PromptInvitee          = "invitee"
	PromptRetryTime        = "retry_time"
	PromptEndNotAfterStart = "end_not_after_start"
	PromptRetryText        = "retry_text"
	PromptEventConfirmed   = "event_confirmed"
	PromptEventFailed      = "event_failed"
	PromptSigninFailed     = "signin_failed"
)

var defaultPrompts = map[string]string{
	PromptLoginConfirm:     "Hi! Would you like to login using google? (yes or no)",
	PromptLoginRetry:       "Please answer yes or no. Would you like to login using google?",
	PromptFarewell:         "Okay bye",
	PromptSigninCard:       "Authenticate with Google",
	PromptWelcome:          "Sign-in successful. Welcome to the agency scheduler.",
	PromptStartTime:        "Please provide a date and time for the meeting (e.g.: July 14 at 7pm)",
	PromptEndTime:          "When will the meeting end? (e.g.: July 14 at 7pm)",
	PromptLocation:         "Where would you like to meet?",
	PromptReason:           "What is the reason for the meeting?",
	PromptInvitee:          "Who would you like to invite? (e.g. JohnDoe@gmail.com)",
	PromptRetryTime:        "Sorry, I didn't catch that date and time. Try something like \"July 14 at 7pm\".",
	PromptEndNotAfterStart: "The meeting has to end after it starts (%s). When will the meeting end?",
	PromptRetryText:        "Sorry, I need an answer to continue. %s",
	PromptEventConfirmed:   "Meeting confirmed. Meeting Details:\nDate/Time: %s - %s\nLocation: %s\nReason: %s\nURL: %s",
	PromptEventFailed:      "There was an error making the event",
	PromptSigninFailed:     "Your Google sign-in didn't go through. Type \"login\" to try again.",
}

// Prompts is the catalog of user-facing messages.
type Prompts struct {
	m map[string]string
}

// NewPrompts builds a catalog from the defaults plus overrides. Unknown
// override keys are ignored.
func NewPrompts(overrides map[string]string) *Prompts {
	m := make(map[string]string, len(defaultPrompts))
	for k, v := range defaultPrompts {
		m[k] = v
	}
	for k, v := range overrides {
		if _, ok := m[k]; ok {
			m[k] = v
		}
	}
	return &Prompts{m: m}
}

// Get formats the prompt registered under key.
func (p *Prompts) Get(key string, args ...interface{}) string {
	text := p.m[key]
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}
