package proxy

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/kernel"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides the CRUD handlers shared by every proxied resource
type Handlers struct {
	gateway  *Gateway
	resource Resource
}

// NewHandlers creates handlers for one resource
func NewHandlers(gateway *Gateway, resource Resource) *Handlers {
	return &Handlers{
		gateway:  gateway,
		resource: resource,
	}
}

// Gateway returns the gateway the handlers forward through
func (h *Handlers) Gateway() *Gateway {
	return h.gateway
}

// List relays the collection
// GET /api/<resource>
func (h *Handlers) List(c *fiber.Ctx) error {
	token, _ := auth.GetToken(c)
	res, err := h.gateway.List(RequestContext(c), h.resource.Collection(), token, QueryString(c))
	if err != nil {
		return err
	}
	return Respond(c, res)
}

// Get relays one entity
// GET /api/<resource>/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := PathParam(c, "id")
	if err != nil {
		return err
	}

	token, _ := auth.GetToken(c)
	res, err := h.gateway.Get(RequestContext(c), h.resource.Item(id), token)
	if err != nil {
		return err
	}
	return Respond(c, res)
}

// Create forwards the JSON body to the collection
// POST /api/<resource>
func (h *Handlers) Create(c *fiber.Ctx) error {
	body, err := JSONBody(c)
	if err != nil {
		return err
	}

	token, _ := auth.GetToken(c)
	res, err := h.gateway.Create(RequestContext(c), h.resource.Collection(), token, body)
	if err != nil {
		return err
	}
	return Respond(c, res)
}

// Update forwards the JSON body with the incoming method
// PUT /api/<resource>/:id
// PATCH /api/<resource>/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := PathParam(c, "id")
	if err != nil {
		return err
	}
	body, err := JSONBody(c)
	if err != nil {
		return err
	}

	token, _ := auth.GetToken(c)
	res, err := h.gateway.Update(RequestContext(c), h.resource.Item(id), token, c.Method(), body)
	if err != nil {
		return err
	}
	return Respond(c, res)
}

// Delete removes one entity
// DELETE /api/<resource>/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := PathParam(c, "id")
	if err != nil {
		return err
	}

	token, _ := auth.GetToken(c)
	res, err := h.gateway.Delete(RequestContext(c), h.resource.Item(id), token)
	if err != nil {
		return err
	}
	return Respond(c, res)
}

// RegisterRoutes mounts the standard CRUD routes for h's resource under
// /api/<resource>. Reads skip RequireToken when the policy allows it.
func RegisterRoutes(app fiber.Router, h *Handlers) fiber.Router {
	policy := h.resource.Policy
	api := app.Group("/api/"+h.resource.Name(), auth.Authenticate(policy))

	read := []fiber.Handler{}
	if !policy.PublicRead {
		read = append(read, auth.RequireToken())
	}

	api.Get("/", append(read, h.List)...)
	api.Get("/:id", append(read, h.Get)...)
	api.Post("/", auth.RequireToken(), h.Create)
	api.Put("/:id", auth.RequireToken(), h.Update)
	api.Patch("/:id", auth.RequireToken(), h.Update)
	api.Delete("/:id", auth.RequireToken(), h.Delete)

	return api
}

// ============================================================================
// Request helpers
// ============================================================================

// Respond writes a normalized result as JSON
func Respond(c *fiber.Ctx, res upstream.Result) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(res.Status).Send(res.Body)
}

// PathParam reads a required path parameter. Blank values and dot
// segments are rejected before anything reaches upstream.
func PathParam(c *fiber.Ctx, name string) (kernel.ResourceID, error) {
	id := kernel.NewResourceID(c.Params(name))
	if id.IsEmpty() {
		return "", ErrMissingParam().WithDetail(name, "missing or empty")
	}
	if err := PathSegment(name, id.String()); err != nil {
		return "", err
	}
	return id, nil
}

// PathSegment rejects a parameter that would change the upstream path once
// decoded: "." and ".." segments and embedded slashes.
func PathSegment(name, value string) error {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return ErrInvalidParam().WithDetail(name, value)
	}
	if decoded == "." || decoded == ".." || strings.ContainsAny(decoded, `/\`) {
		return ErrInvalidParam().WithDetail(name, value)
	}
	return nil
}

// JSONBody returns the raw request body after checking it is valid JSON
func JSONBody(c *fiber.Ctx) (json.RawMessage, error) {
	body := c.Body()
	if !json.Valid(body) {
		return nil, ErrInvalidBody()
	}
	// fasthttp reuses the buffer once the handler returns
	return json.RawMessage(append([]byte(nil), body...)), nil
}

// QueryString returns the raw query string of the request
func QueryString(c *fiber.Ctx) string {
	return string(c.Request().URI().QueryString())
}

// RequestContext carries the request ID set by the requestid middleware
func RequestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
		ctx = upstream.WithRequestID(ctx, kernel.RequestID(id))
	}
	return ctx
}
