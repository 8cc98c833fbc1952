package bookingapi

import (
	"github.com/Abraxas-365/backoffice/backoffice/booking"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for booking operations
type Handlers struct {
	*proxy.Handlers
}

// NewHandlers creates a new booking handlers instance
func NewHandlers(gateway *proxy.Gateway) *Handlers {
	return &Handlers{
		Handlers: proxy.NewHandlers(gateway, booking.Resource),
	}
}

// RegisterRoutes registers booking routes
//
//	GET    /api/bookings
//	GET    /api/bookings/:id
//	POST   /api/bookings
//	PUT    /api/bookings/:id
//	PATCH  /api/bookings/:id
//	DELETE /api/bookings/:id
func RegisterRoutes(app fiber.Router, h *Handlers) {
	proxy.RegisterRoutes(app, h.Handlers)
}
