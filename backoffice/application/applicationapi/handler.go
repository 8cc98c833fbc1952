package applicationapi

import (
	"github.com/Abraxas-365/backoffice/backoffice/application"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	*proxy.Handlers
}

// NewHandlers creates a new application handlers instance
func NewHandlers(gateway *proxy.Gateway) *Handlers {
	return &Handlers{
		Handlers: proxy.NewHandlers(gateway, application.Resource),
	}
}

// RegisterRoutes registers application routes
//
//	GET    /api/applications
//	GET    /api/applications/:id
//	POST   /api/applications
//	PUT    /api/applications/:id
//	PATCH  /api/applications/:id
//	DELETE /api/applications/:id
func RegisterRoutes(app fiber.Router, h *Handlers) {
	proxy.RegisterRoutes(app, h.Handlers)
}
