package blogpostapi

import (
	"github.com/Abraxas-365/backoffice/backoffice/blogpost"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for blog post operations
type Handlers struct {
	*proxy.Handlers
}

// NewHandlers creates a new blog post handlers instance
func NewHandlers(gateway *proxy.Gateway) *Handlers {
	return &Handlers{
		Handlers: proxy.NewHandlers(gateway, blogpost.Resource),
	}
}

// RegisterRoutes registers blog post routes
//
//	GET    /api/blog-posts
//	GET    /api/blog-posts/:id
//	POST   /api/blog-posts
//	PUT    /api/blog-posts/:id
//	PATCH  /api/blog-posts/:id
//	DELETE /api/blog-posts/:id
func RegisterRoutes(app fiber.Router, h *Handlers) {
	proxy.RegisterRoutes(app, h.Handlers)
}
