package mailx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Abraxas-365/backoffice/pkg/logx"
)

// NoopSender logs instead of delivering. It is used when no provider key
// is configured, and it keeps what it was asked to send.
type NoopSender struct {
	mu   sync.Mutex
	sent []SendRequest
}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	s.mu.Lock()
	s.sent = append(s.sent, req)
	s.mu.Unlock()

	logx.Infof("mail (not delivered): %q to %v", req.Subject, req.To)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

// Sent returns a copy of everything passed to Send
func (s *NoopSender) Sent() []SendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SendRequest(nil), s.sent...)
}
