// Package whatsapp handles WhatsApp Cloud API webhook envelopes and
// outbound text replies.
package whatsapp

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultGraphURL is the Cloud API base used outside tests.
const DefaultGraphURL = "https://graph.facebook.com/v19.0"

// Envelope is the provider's webhook delivery payload, trimmed to the
// fields the relay reads.
type Envelope struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []Message `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// Message is one inbound message inside an envelope.
type Message struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
}

// FirstMessage extracts the first message from the envelope. Envelopes
// without messages (status updates etc.) return ok=false and are
// ignored.
func (e *Envelope) FirstMessage() (Message, bool) {
	if len(e.Entry) == 0 || len(e.Entry[0].Changes) == 0 {
		return Message{}, false
	}
	msgs := e.Entry[0].Changes[0].Value.Messages
	if len(msgs) == 0 {
		return Message{}, false
	}
	return msgs[0], true
}

// Body returns the text to feed the chat responder. Non-text messages
// become a fixed placeholder instead of being dropped.
func (m Message) Body() string {
	if m.Type == "text" {
		return m.Text.Body
	}
	return "(unsupported message type)"
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// StripHTML flattens a chat reply (which may be a product card or a
// listing) to plain text for WhatsApp delivery.
func StripHTML(s string) string {
	out := tagPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(out, " "))
}

// Client sends text messages through the Cloud API.
type Client struct {
	http    *resty.Client
	baseURL string
	token   string
	phoneID string
}

// NewClient creates a sender. Empty token or phoneID disables sending;
// SendText then silently succeeds, matching webhook best-effort
// semantics.
func NewClient(baseURL, token, phoneID string) *Client {
	if baseURL == "" {
		baseURL = DefaultGraphURL
	}
	return &Client{
		http:    resty.New().SetTimeout(10 * time.Second),
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		phoneID: phoneID,
	}
}

// Configured reports whether outbound sending is set up.
func (c *Client) Configured() bool {
	return c.token != "" && c.phoneID != ""
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             sendText `json:"text"`
}

type sendText struct {
	Body string `json:"body"`
}

// SendText relays body to the given phone number.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	if !c.Configured() {
		return nil
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetBody(sendRequest{
			MessagingProduct: "whatsapp",
			To:               to,
			Type:             "text",
			Text:             sendText{Body: body},
		}).
		Post(fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID))
	if err != nil {
		return fmt.Errorf("whatsapp send failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("whatsapp send returned %s", resp.Status())
	}
	return nil
}
