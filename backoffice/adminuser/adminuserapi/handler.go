package adminuserapi

import (
	"github.com/Abraxas-365/backoffice/backoffice/adminuser"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for admin user operations
type Handlers struct {
	*proxy.Handlers
}

// NewHandlers creates a new admin user handlers instance
func NewHandlers(gateway *proxy.Gateway) *Handlers {
	return &Handlers{
		Handlers: proxy.NewHandlers(gateway, adminuser.Resource),
	}
}

// RegisterRoutes registers admin user routes
//
//	GET    /api/admin-users
//	GET    /api/admin-users/:id
//	POST   /api/admin-users
//	PUT    /api/admin-users/:id
//	PATCH  /api/admin-users/:id
//	DELETE /api/admin-users/:id
func RegisterRoutes(app fiber.Router, h *Handlers) {
	proxy.RegisterRoutes(app, h.Handlers)
}
