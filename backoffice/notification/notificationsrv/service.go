package notificationsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/backoffice/backoffice/notification"
	"github.com/Abraxas-365/backoffice/pkg/kernel"
	"github.com/Abraxas-365/backoffice/pkg/logx"
	"github.com/Abraxas-365/backoffice/pkg/mailx"
	"github.com/google/uuid"
)

const defaultRetryDelay = 30 * time.Second

// Settings configures delivery
type Settings struct {
	From        string
	AdminEmail  kernel.Email
	MaxAttempts int
	// RetryDelay is multiplied by the attempt number before a requeue
	RetryDelay time.Duration
}

// NotificationService renders and delivers transactional email. With a
// queue it enqueues and returns at once; without one it sends inline.
type NotificationService struct {
	sender   mailx.Sender
	queue    notification.Queue
	renderer *Renderer
	settings Settings
}

// NewNotificationService creates a new notification service. queue may be nil.
func NewNotificationService(
	sender mailx.Sender,
	queue notification.Queue,
	renderer *Renderer,
	settings Settings,
) *NotificationService {
	if settings.MaxAttempts < 1 {
		settings.MaxAttempts = 1
	}
	if settings.RetryDelay <= 0 {
		settings.RetryDelay = defaultRetryDelay
	}
	return &NotificationService{
		sender:   sender,
		queue:    queue,
		renderer: renderer,
		settings: settings,
	}
}

// Queued reports whether sends go through the queue
func (s *NotificationService) Queued() bool {
	return s.queue != nil
}

// SendBookingConfirmation confirms a booking to the customer and, when an
// admin address is configured, sends the admin a copy
func (s *NotificationService) SendBookingConfirmation(ctx context.Context, req notification.BookingConfirmationRequest) (*notification.Receipt, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	customer, err := s.message(notification.KindBookingConfirmation, req, req.To, "")
	if err != nil {
		return nil, err
	}
	messages := []mailx.SendRequest{customer}

	if s.settings.AdminEmail.IsValid() {
		admin, err := s.message(notification.KindBookingAdminCopy, req, s.settings.AdminEmail, req.To.String())
		if err != nil {
			return nil, err
		}
		messages = append(messages, admin)
	}

	return s.dispatch(ctx, notification.KindBookingConfirmation, messages)
}

// SendApplicationStatus tells an applicant about a status change
func (s *NotificationService) SendApplicationStatus(ctx context.Context, req notification.ApplicationStatusRequest) (*notification.Receipt, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	msg, err := s.message(notification.KindApplicationStatus, req, req.To, s.settings.AdminEmail.String())
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, notification.KindApplicationStatus, []mailx.SendRequest{msg})
}

// SendContactReply answers a contact-form message
func (s *NotificationService) SendContactReply(ctx context.Context, req notification.ContactReplyRequest) (*notification.Receipt, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	msg, err := s.message(notification.KindContactReply, req, req.To, s.settings.AdminEmail.String())
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, notification.KindContactReply, []mailx.SendRequest{msg})
}

func (s *NotificationService) message(kind notification.Kind, data any, to kernel.Email, replyTo string) (mailx.SendRequest, error) {
	rendered, err := s.renderer.Render(kind, data)
	if err != nil {
		return mailx.SendRequest{}, notification.ErrRenderFailed().WithCause(err).WithDetail("kind", string(kind))
	}
	return mailx.SendRequest{
		To:      []string{to.String()},
		From:    s.settings.From,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
		ReplyTo: replyTo,
	}, nil
}

func (s *NotificationService) dispatch(ctx context.Context, kind notification.Kind, messages []mailx.SendRequest) (*notification.Receipt, error) {
	if s.queue == nil {
		return s.sendInline(ctx, kind, messages)
	}

	job := &notification.Job{
		ID:          uuid.NewString(),
		Kind:        kind,
		Messages:    messages,
		MaxAttempts: s.settings.MaxAttempts,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return nil, notification.ErrEnqueueFailed().WithCause(err).WithDetail("kind", string(kind))
	}

	logx.Infof("Queued %s email job %s (%d messages)", kind, job.ID, len(messages))
	return &notification.Receipt{ID: job.ID, Queued: true}, nil
}

// sendInline sends messages in order. The first one decides the outcome;
// once it is delivered, a failed copy is logged and counted so a retry by
// the caller never mails the recipient twice.
func (s *NotificationService) sendInline(ctx context.Context, kind notification.Kind, messages []mailx.SendRequest) (*notification.Receipt, error) {
	res, err := s.sender.Send(ctx, messages[0])
	if err != nil {
		return nil, notification.ErrSendFailed().WithCause(err).WithDetail("kind", string(kind))
	}

	receipt := &notification.Receipt{ID: res.MessageID}
	for _, msg := range messages[1:] {
		if _, err := s.sender.Send(ctx, msg); err != nil {
			logx.Warnf("%s copy to %v not delivered: %v", kind, msg.To, err)
			receipt.Undelivered++
		}
	}
	return receipt, nil
}

// ProcessJob delivers a queued job's pending messages. On failure the job
// is rescheduled until it runs out of attempts; messages already sent are
// not sent again.
func (s *NotificationService) ProcessJob(ctx context.Context, job *notification.Job) error {
	job.Attempt++

	for _, msg := range job.Pending() {
		if _, err := s.sender.Send(ctx, msg); err != nil {
			job.LastError = err.Error()
			return s.retry(ctx, job, err)
		}
		job.Sent++
	}

	logx.Infof("Email job %s delivered on attempt %d", job.ID, job.Attempt)
	return nil
}

func (s *NotificationService) retry(ctx context.Context, job *notification.Job, cause error) error {
	if s.queue == nil || !job.CanRetry() {
		logx.Errorf("Email job %s failed permanently after %d attempts: %v", job.ID, job.Attempt, cause)
		return fmt.Errorf("email job %s: %w", job.ID, cause)
	}

	delay := s.settings.RetryDelay * time.Duration(job.Attempt)
	if err := s.queue.EnqueueDelayed(ctx, job, delay); err != nil {
		logx.Errorf("Email job %s could not be rescheduled: %v", job.ID, err)
		return fmt.Errorf("rescheduling email job %s: %w", job.ID, err)
	}

	logx.Warnf("Email job %s attempt %d failed, retrying in %s: %v", job.ID, job.Attempt, delay, cause)
	return fmt.Errorf("email job %s: %w", job.ID, cause)
}
