package contactapi

import (
	"github.com/Abraxas-365/backoffice/backoffice/contact"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for contact operations
type Handlers struct {
	*proxy.Handlers
}

// NewHandlers creates a new contact handlers instance
func NewHandlers(gateway *proxy.Gateway) *Handlers {
	return &Handlers{
		Handlers: proxy.NewHandlers(gateway, contact.Resource),
	}
}

// RegisterRoutes registers contact routes
//
//	GET    /api/contacts
//	GET    /api/contacts/:id
//	POST   /api/contacts
//	PUT    /api/contacts/:id
//	PATCH  /api/contacts/:id
//	DELETE /api/contacts/:id
func RegisterRoutes(app fiber.Router, h *Handlers) {
	proxy.RegisterRoutes(app, h.Handlers)
}
