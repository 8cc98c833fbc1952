package mailx

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/backoffice/pkg/logx"
	"github.com/resend/resend-go/v2"
)

// ResendSender sends email through the Resend API
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender with a default from address
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) params(req SendRequest) *resend.SendEmailRequest {
	from := req.From
	if from == "" {
		from = s.from
	}
	p := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
		Text:    req.Text,
	}
	if req.ReplyTo != "" {
		p.ReplyTo = req.ReplyTo
	}
	return p
}

// Send delivers one email and returns Resend's message ID
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, s.params(req))
	if err != nil {
		logx.Errorf("resend: sending %q to %v failed: %v", req.Subject, req.To, err)
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	logx.Infof("resend: sent %q to %v (id %s)", req.Subject, req.To, sent.Id)
	return SendResult{
		MessageID: sent.Id,
		SentAt:    time.Now(),
	}, nil
}
