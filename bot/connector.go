package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/jvjruiz/schedule-bot/config"
	l "github.com/jvjruiz/schedule-bot/logger"
)

//go:generate mockgen -source=connector.go -destination=../tests/mocks/sender.go -package=mocks
type Sender interface {
	SendToConversation(ctx context.Context, addr ConversationAddress, activity Activity) error
}

// Connector posts activities back to the messaging platform's service URL,
// authenticating with the app's client credentials. With no app ID configured
// (local emulator) requests go out unauthenticated.
type Connector struct {
	client *http.Client
	logger l.Logger
}

func NewConnector(cfg *config.BotConfig, logger l.Logger) *Connector {
	client := &http.Client{Timeout: 30 * time.Second}
	if cfg.AppID != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.AppID,
			ClientSecret: cfg.AppPassword,
			TokenURL:     cfg.TokenURL,
			Scopes:       []string{cfg.TokenScope},
		}
		client = cc.Client(context.Background())
		client.Timeout = 30 * time.Second
	}
	return &Connector{
		client: client,
		logger: logger,
	}
}

// SendToConversation posts an activity to the conversation identified by the
// address. It is used both for normal turn replies and for proactive sends
// when the OAuth callback resumes a suspended dialog.
func (c *Connector) SendToConversation(ctx context.Context, addr ConversationAddress, activity Activity) error {
	endpoint := fmt.Sprintf("%s/v3/conversations/%s/activities",
		activityBase(addr.ServiceURL), url.PathEscape(addr.Conversation.ID))

	body, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("marshaling activity: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building connector request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting activity: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("connector rejected activity: %s: %s", resp.Status, msg)
	}

	c.logger.Debug("activity sent", "conversation", addr.Conversation.ID, "status", resp.Status)
	return nil
}

func activityBase(serviceURL string) string {
	for len(serviceURL) > 0 && serviceURL[len(serviceURL)-1] == '/' {
		serviceURL = serviceURL[:len(serviceURL)-1]
	}
	return serviceURL
}
