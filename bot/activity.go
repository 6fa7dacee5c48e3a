// Package bot is the thin messaging-platform collaborator: the activity
// types received on the webhook, the conversation address threaded through
// the OAuth redirect, and the connector client used to post replies.
package bot

import (
	"encoding/json"
	"fmt"
)

const (
	ActivityMessage = "message"

	// SigninCardContentType is the attachment content type for sign-in cards.
	SigninCardContentType = "application/vnd.microsoft.card.signin"
)

// ChannelAccount identifies a user or bot on a channel.
type ChannelAccount struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ConversationAccount identifies a conversation on a channel.
type ConversationAccount struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Activity is a single inbound or outbound message on the messaging platform.
type Activity struct {
	Type         string              `json:"type"`
	ID           string              `json:"id,omitempty"`
	ChannelID    string              `json:"channelId,omitempty"`
	ServiceURL   string              `json:"serviceUrl,omitempty"`
	From         ChannelAccount      `json:"from,omitempty"`
	Recipient    ChannelAccount      `json:"recipient,omitempty"`
	Conversation ConversationAccount `json:"conversation,omitempty"`
	Text         string              `json:"text,omitempty"`
	ReplyToID    string              `json:"replyToId,omitempty"`
	Attachments  []Attachment        `json:"attachments,omitempty"`
}

// Attachment carries rich content such as a sign-in card.
type Attachment struct {
	ContentType string      `json:"contentType"`
	Content     interface{} `json:"content,omitempty"`
}

// SigninCard prompts the user to authenticate through an external URL.
type SigninCard struct {
	Text    string       `json:"text,omitempty"`
	Buttons []CardAction `json:"buttons"`
}

// CardAction is a clickable button on a card.
type CardAction struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Value string `json:"value"`
}

// ConversationAddress is everything needed to resume a conversation later:
// the channel, the two parties, and the service endpoint replies go to. It is
// the payload serialized into the OAuth state parameter.
type ConversationAddress struct {
	ChannelID    string              `json:"channelId"`
	ServiceURL   string              `json:"serviceUrl"`
	Bot          ChannelAccount      `json:"bot"`
	User         ChannelAccount      `json:"user"`
	Conversation ConversationAccount `json:"conversation"`
}

// Address extracts the resumable address from an inbound activity. The bot is
// the recipient of an inbound message, so the roles flip on the way out.
func (a *Activity) Address() ConversationAddress {
	return ConversationAddress{
		ChannelID:    a.ChannelID,
		ServiceURL:   a.ServiceURL,
		Bot:          a.Recipient,
		User:         a.From,
		Conversation: a.Conversation,
	}
}

// Encode serializes the address for use as an opaque state parameter. The
// oauth2 library URL-encodes the state when building the consent URL, so the
// payload here is plain JSON.
func (addr ConversationAddress) Encode() (string, error) {
	b, err := json.Marshal(addr)
	if err != nil {
		return "", fmt.Errorf("encoding conversation address: %w", err)
	}
	return string(b), nil
}

// DecodeAddress reverses Encode. It rejects payloads that are not a JSON
// address or that lack the fields needed to resume the conversation.
func DecodeAddress(raw string) (ConversationAddress, error) {
	var addr ConversationAddress
	if err := json.Unmarshal([]byte(raw), &addr); err != nil {
		return ConversationAddress{}, fmt.Errorf("decoding conversation address: %w", err)
	}
	if addr.Conversation.ID == "" || addr.ServiceURL == "" {
		return ConversationAddress{}, fmt.Errorf("conversation address missing conversation ID or service URL")
	}
	return addr, nil
}

// NewReply builds an outbound text message addressed to a conversation.
func NewReply(addr ConversationAddress, text string) Activity {
	return Activity{
		Type:         ActivityMessage,
		ChannelID:    addr.ChannelID,
		ServiceURL:   addr.ServiceURL,
		From:         addr.Bot,
		Recipient:    addr.User,
		Conversation: addr.Conversation,
		Text:         text,
	}
}

// NewSigninReply builds an outbound message carrying a sign-in card.
func NewSigninReply(addr ConversationAddress, text, url string) Activity {
	a := NewReply(addr, "")
	a.Attachments = []Attachment{
		{
			ContentType: SigninCardContentType,
			Content: SigninCard{
				Text: text,
				Buttons: []CardAction{
					{Type: "signin", Title: "Sign-in", Value: url},
				},
			},
		},
	}
	return a
}
