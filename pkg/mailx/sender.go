// Package mailx sends transactional email through an external provider.
package mailx

import (
	"context"
	"time"
)

// SendRequest is one outgoing email
type SendRequest struct {
	To      []string `json:"to"`
	From    string   `json:"from,omitempty"` // falls back to the sender's default
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"replyTo,omitempty"`
}

// SendResult is the provider's acknowledgement
type SendResult struct {
	MessageID string    `json:"messageId"`
	SentAt    time.Time `json:"sentAt"`
}

// Sender delivers email
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
