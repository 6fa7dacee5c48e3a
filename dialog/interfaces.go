package dialog

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/jvjruiz/schedule-bot/bot"
	"github.com/jvjruiz/schedule-bot/gcal"
)

//go:generate mockgen -source=interfaces.go -destination=../tests/mocks/dialog.go -package=mocks

// Authenticator builds the consent URL for one conversation.
type Authenticator interface {
	AuthCodeURL(addr bot.ConversationAddress) (string, error)
}

// EventSubmitter submits the completed scheduling request downstream.
type EventSubmitter interface {
	CreateEvent(ctx context.Context, token *oauth2.Token, req gcal.EventRequest) (*gcal.EventResult, error)
}
