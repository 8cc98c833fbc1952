package notification

import (
	"strings"
	"time"

	"github.com/Abraxas-365/backoffice/backoffice/application"
	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/kernel"
	"github.com/Abraxas-365/backoffice/pkg/mailx"
)

// Policy is how the email routes find their token
var Policy = auth.Policy{
	Resource: "emails",
	Sources:  auth.SourcesStandard,
}

// Kind names a notification template
type Kind string

const (
	KindBookingConfirmation Kind = "booking_confirmation"
	KindBookingAdminCopy    Kind = "booking_admin_copy"
	KindApplicationStatus   Kind = "application_status"
	KindContactReply        Kind = "contact_reply"
)

// ============================================================================
// Requests
// ============================================================================

// BookingConfirmationRequest confirms a booking to the customer
type BookingConfirmationRequest struct {
	To           kernel.Email      `json:"to"`
	CustomerName kernel.PersonName `json:"customerName"`
	ServiceName  string            `json:"serviceName"`
	Date         string            `json:"date"`
	Time         string            `json:"time,omitempty"`
	BookingID    string            `json:"bookingId,omitempty"`
	Address      string            `json:"address,omitempty"`
	Notes        string            `json:"notes,omitempty"`
}

func (r BookingConfirmationRequest) Validate() error {
	if !r.To.IsValid() {
		return ErrInvalidRecipient().WithDetail("to", r.To.String())
	}
	if err := required("customerName", r.CustomerName.String()); err != nil {
		return err
	}
	if err := required("serviceName", r.ServiceName); err != nil {
		return err
	}
	return required("date", r.Date)
}

// ApplicationStatusRequest tells an applicant where their application stands
type ApplicationStatusRequest struct {
	To            kernel.Email       `json:"to"`
	ApplicantName kernel.PersonName  `json:"applicantName"`
	JobTitle      string             `json:"jobTitle"`
	Status        application.Status `json:"status"`
	Message       string             `json:"message,omitempty"`
}

func (r ApplicationStatusRequest) Validate() error {
	if !r.To.IsValid() {
		return ErrInvalidRecipient().WithDetail("to", r.To.String())
	}
	if err := required("applicantName", r.ApplicantName.String()); err != nil {
		return err
	}
	if err := required("jobTitle", r.JobTitle); err != nil {
		return err
	}
	if !r.Status.IsValid() {
		return ErrInvalidStatus().WithDetail("status", string(r.Status))
	}
	return nil
}

// ContactReplyRequest answers a contact-form message
type ContactReplyRequest struct {
	To              kernel.Email      `json:"to"`
	Name            kernel.PersonName `json:"name"`
	Subject         string            `json:"subject,omitempty"`
	Reply           string            `json:"reply"`
	OriginalMessage string            `json:"originalMessage,omitempty"`
}

func (r ContactReplyRequest) Validate() error {
	if !r.To.IsValid() {
		return ErrInvalidRecipient().WithDetail("to", r.To.String())
	}
	if err := required("name", r.Name.String()); err != nil {
		return err
	}
	return required("reply", r.Reply)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrMissingField().WithDetail("field", field)
	}
	return nil
}

// ============================================================================
// Delivery
// ============================================================================

// Job is a queued delivery of one or more rendered emails
type Job struct {
	ID          string              `json:"id"`
	Kind        Kind                `json:"kind"`
	Messages    []mailx.SendRequest `json:"messages"`
	Sent        int                 `json:"sent"` // messages already delivered
	Attempt     int                 `json:"attempt"`
	MaxAttempts int                 `json:"maxAttempts"`
	LastError   string              `json:"lastError,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// Pending returns the messages not yet delivered
func (j *Job) Pending() []mailx.SendRequest {
	if j.Sent >= len(j.Messages) {
		return nil
	}
	return j.Messages[j.Sent:]
}

// CanRetry reports whether another attempt is allowed
func (j *Job) CanRetry() bool {
	return j.Attempt < j.MaxAttempts
}

// Receipt is returned to the caller of a send route
type Receipt struct {
	ID     string `json:"id"`
	Queued bool   `json:"queued,omitempty"`

	// Undelivered counts copies that failed after the main message went out
	Undelivered int `json:"undelivered,omitempty"`
}
