package dashboardapi

import (
	"github.com/Abraxas-365/backoffice/backoffice/dashboard"
	"github.com/Abraxas-365/backoffice/backoffice/dashboard/dashboardsrv"
	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for the dashboard
type Handlers struct {
	service *dashboardsrv.DashboardService
}

// NewHandlers creates a new dashboard handlers instance
func NewHandlers(service *dashboardsrv.DashboardService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Stats returns per-resource counts
// GET /api/dashboard/stats
func (h *Handlers) Stats(c *fiber.Ctx) error {
	token, _ := auth.GetToken(c)

	overview, err := h.service.Overview(proxy.RequestContext(c), token)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(fiber.Map{
		"success": true,
		"data":    overview,
	})
}

// RegisterRoutes registers dashboard routes
func RegisterRoutes(app fiber.Router, h *Handlers) {
	api := app.Group("/api/dashboard", auth.Authenticate(dashboard.Policy), auth.RequireToken())

	api.Get("/stats", h.Stats)
}
