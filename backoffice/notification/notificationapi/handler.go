package notificationapi

import (
	"encoding/json"

	"github.com/Abraxas-365/backoffice/backoffice/notification"
	"github.com/Abraxas-365/backoffice/backoffice/notification/notificationsrv"
	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for transactional email
type Handlers struct {
	service *notificationsrv.NotificationService
	queue   notification.QueueInspector
}

// NewHandlers creates email handlers. queue may be nil.
func NewHandlers(service *notificationsrv.NotificationService, queue notification.QueueInspector) *Handlers {
	return &Handlers{
		service: service,
		queue:   queue,
	}
}

func decode(c *fiber.Ctx, v any) error {
	body, err := proxy.JSONBody(c)
	if err != nil {
		return notification.ErrInvalidRequest().WithDetail("body", "must be valid JSON")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return notification.ErrInvalidRequest().WithDetail("body", err.Error())
	}
	return nil
}

func respond(c *fiber.Ctx, receipt *notification.Receipt) error {
	status := fiber.StatusOK
	if receipt.Queued {
		status = fiber.StatusAccepted
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    receipt,
	})
}

// BookingConfirmation emails a booking confirmation
// POST /api/emails/booking-confirmation
func (h *Handlers) BookingConfirmation(c *fiber.Ctx) error {
	var req notification.BookingConfirmationRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	receipt, err := h.service.SendBookingConfirmation(proxy.RequestContext(c), req)
	if err != nil {
		return err
	}
	return respond(c, receipt)
}

// ApplicationStatus emails an application status update
// POST /api/emails/application-status
func (h *Handlers) ApplicationStatus(c *fiber.Ctx) error {
	var req notification.ApplicationStatusRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	receipt, err := h.service.SendApplicationStatus(proxy.RequestContext(c), req)
	if err != nil {
		return err
	}
	return respond(c, receipt)
}

// ContactReply emails a reply to a contact message
// POST /api/emails/contact-reply
func (h *Handlers) ContactReply(c *fiber.Ctx) error {
	var req notification.ContactReplyRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	receipt, err := h.service.SendContactReply(proxy.RequestContext(c), req)
	if err != nil {
		return err
	}
	return respond(c, receipt)
}

// QueueStats reports the email backlog
// GET /api/emails/queue
func (h *Handlers) QueueStats(c *fiber.Ctx) error {
	if h.queue == nil {
		return c.JSON(fiber.Map{
			"success": true,
			"data":    fiber.Map{"queued": false},
		})
	}

	stats, err := h.queue.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

// RegisterRoutes registers email routes
func RegisterRoutes(app fiber.Router, h *Handlers) {
	api := app.Group("/api/emails", auth.Authenticate(notification.Policy), auth.RequireToken())

	api.Post("/booking-confirmation", h.BookingConfirmation)
	api.Post("/application-status", h.ApplicationStatus)
	api.Post("/contact-reply", h.ContactReply)
	api.Get("/queue", h.QueueStats)
}
