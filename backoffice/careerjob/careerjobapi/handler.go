package careerjobapi

import (
	"github.com/Abraxas-365/backoffice/backoffice/careerjob"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for career job operations
type Handlers struct {
	*proxy.Handlers
}

// NewHandlers creates a new career job handlers instance
func NewHandlers(gateway *proxy.Gateway) *Handlers {
	return &Handlers{
		Handlers: proxy.NewHandlers(gateway, careerjob.Resource),
	}
}

// RegisterRoutes registers career job routes
//
//	GET    /api/career-jobs
//	GET    /api/career-jobs/:id
//	POST   /api/career-jobs
//	PUT    /api/career-jobs/:id
//	PATCH  /api/career-jobs/:id
//	DELETE /api/career-jobs/:id
func RegisterRoutes(app fiber.Router, h *Handlers) {
	proxy.RegisterRoutes(app, h.Handlers)
}
