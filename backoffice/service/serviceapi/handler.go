package serviceapi

import (
	"github.com/Abraxas-365/backoffice/backoffice/service"
	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/kernel"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for services and their sub-services
type Handlers struct {
	*proxy.Handlers
}

// NewHandlers creates a new service handlers instance
func NewHandlers(gateway *proxy.Gateway) *Handlers {
	return &Handlers{
		Handlers: proxy.NewHandlers(gateway, service.Resource),
	}
}

// ListSubServices lists the sub-services of a service
// GET /api/services/:slug/sub-services
func (h *Handlers) ListSubServices(c *fiber.Ctx) error {
	slug, err := slugParam(c)
	if err != nil {
		return err
	}

	token, _ := auth.GetToken(c)
	res, err := h.Gateway().List(proxy.RequestContext(c), service.SubServices(slug), token, proxy.QueryString(c))
	if err != nil {
		return err
	}
	return proxy.Respond(c, res)
}

// GetSubService retrieves one sub-service
// GET /api/services/:slug/sub-services/:subSlug
func (h *Handlers) GetSubService(c *fiber.Ctx) error {
	slug, subSlug, err := subSlugParams(c)
	if err != nil {
		return err
	}

	token, _ := auth.GetToken(c)
	res, err := h.Gateway().Get(proxy.RequestContext(c), service.SubService(slug, subSlug), token)
	if err != nil {
		return err
	}
	return proxy.Respond(c, res)
}

// CreateSubService adds a sub-service to a service
// POST /api/services/:slug/sub-services
func (h *Handlers) CreateSubService(c *fiber.Ctx) error {
	slug, err := slugParam(c)
	if err != nil {
		return err
	}
	body, err := proxy.JSONBody(c)
	if err != nil {
		return err
	}

	token, _ := auth.GetToken(c)
	res, err := h.Gateway().Create(proxy.RequestContext(c), service.SubServices(slug), token, body)
	if err != nil {
		return err
	}
	return proxy.Respond(c, res)
}

// UpdateSubService updates a sub-service
// PUT /api/services/:slug/sub-services/:subSlug
// PATCH /api/services/:slug/sub-services/:subSlug
func (h *Handlers) UpdateSubService(c *fiber.Ctx) error {
	slug, subSlug, err := subSlugParams(c)
	if err != nil {
		return err
	}
	body, err := proxy.JSONBody(c)
	if err != nil {
		return err
	}

	token, _ := auth.GetToken(c)
	res, err := h.Gateway().Update(proxy.RequestContext(c), service.SubService(slug, subSlug), token, c.Method(), body)
	if err != nil {
		return err
	}
	return proxy.Respond(c, res)
}

// DeleteSubService removes a sub-service
// DELETE /api/services/:slug/sub-services/:subSlug
func (h *Handlers) DeleteSubService(c *fiber.Ctx) error {
	slug, subSlug, err := subSlugParams(c)
	if err != nil {
		return err
	}

	token, _ := auth.GetToken(c)
	res, err := h.Gateway().Delete(proxy.RequestContext(c), service.SubService(slug, subSlug), token)
	if err != nil {
		return err
	}
	return proxy.Respond(c, res)
}

func slugParam(c *fiber.Ctx) (kernel.Slug, error) {
	slug := kernel.NewSlug(c.Params("slug"))
	if slug.IsEmpty() {
		return "", service.ErrMissingSlug().WithDetail("slug", "missing or empty")
	}
	if err := proxy.PathSegment("slug", slug.String()); err != nil {
		return "", err
	}
	return slug, nil
}

func subSlugParams(c *fiber.Ctx) (kernel.Slug, kernel.Slug, error) {
	slug, err := slugParam(c)
	if err != nil {
		return "", "", err
	}
	subSlug := kernel.NewSlug(c.Params("subSlug"))
	if subSlug.IsEmpty() {
		return "", "", service.ErrMissingSubSlug().WithDetail("subSlug", "missing or empty")
	}
	if err := proxy.PathSegment("subSlug", subSlug.String()); err != nil {
		return "", "", err
	}
	return slug, subSlug, nil
}

// RegisterRoutes registers service and sub-service routes. Sub-service
// routes are mounted on the services group so they share its policy.
func RegisterRoutes(app fiber.Router, h *Handlers) {
	api := proxy.RegisterRoutes(app, h.Handlers)

	api.Get("/:slug/sub-services", h.ListSubServices)
	api.Get("/:slug/sub-services/:subSlug", h.GetSubService)
	api.Post("/:slug/sub-services", auth.RequireToken(), h.CreateSubService)
	api.Put("/:slug/sub-services/:subSlug", auth.RequireToken(), h.UpdateSubService)
	api.Patch("/:slug/sub-services/:subSlug", auth.RequireToken(), h.UpdateSubService)
	api.Delete("/:slug/sub-services/:subSlug", auth.RequireToken(), h.DeleteSubService)
}
