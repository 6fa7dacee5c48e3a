package api

import (
	"context"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	bot "github.com/jvjruiz/schedule-bot/bot"
	config "github.com/jvjruiz/schedule-bot/config"
	dialog "github.com/jvjruiz/schedule-bot/dialog"
	googleauth "github.com/jvjruiz/schedule-bot/googleauth"
	l "github.com/jvjruiz/schedule-bot/logger"
	otel "github.com/jvjruiz/schedule-bot/otel"
)

// CodeExchanger trades an authorization code for tokens and the signed-in
// user's display identity.
//
//go:generate mockgen -source=routes.go -destination=../tests/mocks/exchanger.go -package=mocks
type CodeExchanger interface {
	Exchange(ctx context.Context, code string) (*oauth2.Token, string, error)
}

type Router interface {
	NotFoundHandler(c *gin.Context)
	HealthcheckHandler(c *gin.Context)
	MessagesHandler(c *gin.Context)
	OAuthCallbackHandler(c *gin.Context)
}

type RouterImpl struct {
	cfg       config.Config
	logger    l.Logger
	manager   *dialog.Manager
	engine    *dialog.Engine
	exchanger CodeExchanger
	sender    bot.Sender
	telemetry otel.OpenTelemetry
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ResponseJSON struct {
	Message string `json:"message"`
}

func NewRouter(cfg config.Config, logger l.Logger, manager *dialog.Manager, engine *dialog.Engine, exchanger CodeExchanger, sender bot.Sender, telemetry otel.OpenTelemetry) Router {
	return &RouterImpl{
		cfg,
		logger,
		manager,
		engine,
		exchanger,
		sender,
		telemetry,
	}
}

func (router *RouterImpl) NotFoundHandler(c *gin.Context) {
	router.logger.Error("requested route is not found", nil)
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "Requested route is not found"})
}

func (router *RouterImpl) HealthcheckHandler(c *gin.Context) {
	router.logger.Debug("healthcheck")
	c.JSON(http.StatusOK, ResponseJSON{Message: "OK"})
}

// MessagesHandler ingests one channel activity. Only message activities run
// a dialog turn; conversation updates, typing indicators and the like are
// acknowledged and dropped. The turn runs under the conversation's lock, so
// a second message in the same conversation waits its turn.
func (router *RouterImpl) MessagesHandler(c *gin.Context) {
	var activity bot.Activity
	if err := c.ShouldBindJSON(&activity); err != nil {
		router.logger.Error("failed to decode activity", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to decode activity"})
		return
	}

	if router.cfg.EnableTelemetry && router.telemetry != nil {
		router.telemetry.RecordActivity(c.Request.Context(), activity.ChannelID, activity.Type)
	}

	if activity.Type != bot.ActivityMessage {
		router.logger.Debug("ignoring non-message activity", "type", activity.Type)
		c.JSON(http.StatusOK, ResponseJSON{Message: "Ignored"})
		return
	}

	addr := activity.Address()
	if addr.Conversation.ID == "" || addr.ServiceURL == "" {
		router.logger.Error("activity has no usable conversation address", nil)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Activity is missing conversation address"})
		return
	}

	var replies []dialog.Reply
	router.manager.Do(addr, func(s *dialog.Session) {
		replies = router.engine.HandleMessage(c.Request.Context(), s, activity.Text)
	})

	router.deliver(c.Request.Context(), addr, replies)
	c.JSON(http.StatusAccepted, ResponseJSON{Message: "Accepted"})
}

// OAuthCallbackHandler completes the Google sign-in. The state parameter
// carries the conversation address the flow started from, so the exchanged
// credentials land back in the right conversation. Exchange failures are
// reported into the conversation rather than dropped; the user otherwise only
// sees a bot that never answers.
func (router *RouterImpl) OAuthCallbackHandler(c *gin.Context) {
	addr, err := googleauth.DecodeState(c.Query("state"))
	if err != nil {
		router.logger.Error("oauth callback with bad state", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid state parameter"})
		return
	}

	if denied := c.Query("error"); denied != "" {
		router.logger.Warn("oauth consent denied", "reason", denied, "conversation", addr.Conversation.ID)
		router.notifySigninFailed(c.Request.Context(), addr)
		c.String(http.StatusOK, "Sign-in was cancelled. You can return to the conversation and try again.")
		return
	}

	token, identity, err := router.exchanger.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		router.logger.Error("oauth code exchange failed", err, "conversation", addr.Conversation.ID)
		router.notifySigninFailed(c.Request.Context(), addr)
		c.String(http.StatusOK, "Sign-in failed. You can return to the conversation and try again.")
		return
	}

	if router.cfg.EnableTelemetry && router.telemetry != nil {
		router.telemetry.RecordSignin(c.Request.Context(), addr.ChannelID)
	}

	var replies []dialog.Reply
	router.manager.Do(addr, func(s *dialog.Session) {
		replies = router.engine.ResumeWithTokens(s, token, identity)
	})

	router.deliver(c.Request.Context(), addr, replies)
	c.String(http.StatusOK, "Sign-in complete. You can close this window and return to the conversation.")
}

func (router *RouterImpl) notifySigninFailed(ctx context.Context, addr bot.ConversationAddress) {
	router.deliver(ctx, addr, []dialog.Reply{
		{Text: router.engine.Prompts().Get(dialog.PromptSigninFailed)},
	})
}

// deliver pushes replies back over the connector. A delivery failure is
// logged but does not fail the handler; the channel retries inbound
// activities and a 5xx here would double-run the turn.
func (router *RouterImpl) deliver(ctx context.Context, addr bot.ConversationAddress, replies []dialog.Reply) {
	for _, r := range replies {
		var activity bot.Activity
		if r.SigninURL != "" {
			activity = bot.NewSigninReply(addr, r.Text, r.SigninURL)
		} else {
			activity = bot.NewReply(addr, r.Text)
		}
		if err := router.sender.SendToConversation(ctx, addr, activity); err != nil {
			router.logger.Error("failed to deliver reply", err, "conversation", addr.Conversation.ID)
		}
	}
}
