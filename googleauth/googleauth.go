// Package googleauth drives the Google OAuth consent round trip: building
// the authorization URL carrying the conversation address as the state
// parameter, exchanging the authorization code for tokens, and recovering
// the user's identity from the ID token.
package googleauth

import (
	"context"
	"errors"
	"fmt"

	oidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/jvjruiz/schedule-bot/bot"
	l "github.com/jvjruiz/schedule-bot/logger"
)

// GoogleIssuer is the OIDC issuer used to verify ID tokens from the exchange.
const GoogleIssuer = "https://accounts.google.com"

// ErrBadState marks a state parameter that does not decode back into a
// conversation address. The callback handler must treat it as a bad request,
// never as a crash.
var ErrBadState = errors.New("malformed state parameter")

// ExchangeError wraps failures of the code-for-tokens exchange: expired or
// invalid authorization codes and transport failures alike.
type ExchangeError struct {
	Err error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("oauth code exchange failed: %v", e.Err)
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}

type idTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

// Flow is stateless: credentials are returned to the caller, never held here.
type Flow struct {
	oauth    *oauth2.Config
	verifier idTokenVerifier
	logger   l.Logger
}

// NewFlow builds a Flow whose ID tokens are verified against Google's OIDC
// discovery document. The discovery fetch happens once, at startup.
func NewFlow(ctx context.Context, oauth *oauth2.Config, logger l.Logger) (*Flow, error) {
	provider, err := oidc.NewProvider(ctx, GoogleIssuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	return &Flow{
		oauth:    oauth,
		verifier: provider.Verifier(&oidc.Config{ClientID: oauth.ClientID}),
		logger:   logger,
	}, nil
}

// NewFlowWithVerifier skips discovery; used by tests.
func NewFlowWithVerifier(oauth *oauth2.Config, verifier idTokenVerifier, logger l.Logger) *Flow {
	return &Flow{oauth: oauth, verifier: verifier, logger: logger}
}

// AuthCodeURL builds the consent URL for one conversation. The serialized
// address rides along as the state parameter so the redirect can resume the
// right suspended dialog. Pure: no side effects.
func (f *Flow) AuthCodeURL(addr bot.ConversationAddress) (string, error) {
	state, err := addr.Encode()
	if err != nil {
		return "", err
	}
	return f.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Exchange trades the authorization code for a token bundle and extracts the
// user's identity (name, else email) from the ID token. A missing or
// unverifiable ID token degrades to an empty identity rather than failing
// the sign-in: calendar access needs the access token, not the identity.
func (f *Flow) Exchange(ctx context.Context, code string) (*oauth2.Token, string, error) {
	token, err := f.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, "", &ExchangeError{Err: err}
	}
	return token, f.identity(ctx, token), nil
}

func (f *Flow) identity(ctx context.Context, token *oauth2.Token) string {
	raw, ok := token.Extra("id_token").(string)
	if !ok || raw == "" || f.verifier == nil {
		return ""
	}
	idToken, err := f.verifier.Verify(ctx, raw)
	if err != nil {
		f.logger.Warn("could not verify id token", "error", err.Error())
		return ""
	}
	var claims struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		f.logger.Warn("could not read id token claims", "error", err.Error())
		return ""
	}
	if claims.Name != "" {
		return claims.Name
	}
	return claims.Email
}

// DecodeState reverses the state parameter back into a conversation address.
func DecodeState(raw string) (bot.ConversationAddress, error) {
	addr, err := bot.DecodeAddress(raw)
	if err != nil {
		return bot.ConversationAddress{}, fmt.Errorf("%w: %v", ErrBadState, err)
	}
	return addr, nil
}
