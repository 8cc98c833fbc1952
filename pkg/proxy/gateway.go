package proxy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Abraxas-365/backoffice/pkg/errx"
	"github.com/Abraxas-365/backoffice/pkg/logx"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
)

// Gateway performs one upstream call per browser request and normalizes
// the answer
type Gateway struct {
	client *upstream.Client
}

// NewGateway creates a new gateway over the upstream client
func NewGateway(client *upstream.Client) *Gateway {
	return &Gateway{client: client}
}

// List fetches a collection, forwarding the browser's raw query string
func (g *Gateway) List(ctx context.Context, t Target, token, query string) (upstream.Result, error) {
	opts := g.readOptions(t)
	if t.Resource.EmptyListOnError {
		opts = append(opts, upstream.WithFailureField("data", "[]"))
	}
	res, err := g.Forward(ctx, upstream.Request{
		Method: http.MethodGet,
		Base:   t.Resource.Base,
		Path:   t.Path,
		Query:  query,
		Token:  token,
	}, opts...)
	if err != nil && t.Resource.EmptyListOnError {
		return emptyListFailure(err)
	}
	return res, err
}

// emptyListFailure renders a local list failure the way the error handler
// would, plus "success":false and "data":[]
func emptyListFailure(err error) (upstream.Result, error) {
	e := errx.Wrap(err, "Internal Server Error", errx.TypeInternal)
	resp := e.ToHTTPResponse()
	resp["success"] = false
	resp["data"] = []any{}

	body, mErr := json.Marshal(resp)
	if mErr != nil {
		return upstream.Result{}, err
	}
	logx.Errorf("list failed locally: %v", e)
	return upstream.Result{Status: e.HTTPStatus, Body: body}, nil
}

// Get fetches a single entity
func (g *Gateway) Get(ctx context.Context, t Target, token string) (upstream.Result, error) {
	return g.Forward(ctx, upstream.Request{
		Method: http.MethodGet,
		Base:   t.Resource.Base,
		Path:   t.Path,
		Token:  token,
	}, g.readOptions(t)...)
}

// Create posts body to the target collection
func (g *Gateway) Create(ctx context.Context, t Target, token string, body json.RawMessage) (upstream.Result, error) {
	return g.Forward(ctx, upstream.Request{
		Method: http.MethodPost,
		Base:   t.Resource.Base,
		Path:   t.Path,
		Token:  token,
		Body:   body,
	}, upstream.WithID(t.ID.String()))
}

// Update sends body with PUT or PATCH
func (g *Gateway) Update(ctx context.Context, t Target, token, method string, body json.RawMessage) (upstream.Result, error) {
	if method != http.MethodPatch {
		method = http.MethodPut
	}
	return g.Forward(ctx, upstream.Request{
		Method: method,
		Base:   t.Resource.Base,
		Path:   t.Path,
		Token:  token,
		Body:   body,
	}, upstream.WithID(t.ID.String()))
}

// Delete removes the target entity. A 204 comes back as
// {"success":true,"data":{"id":...}}; a 404 is relayed as is.
func (g *Gateway) Delete(ctx context.Context, t Target, token string) (upstream.Result, error) {
	return g.Forward(ctx, upstream.Request{
		Method: http.MethodDelete,
		Base:   t.Resource.Base,
		Path:   t.Path,
		Token:  token,
	}, upstream.WithID(t.ID.String()))
}

// Forward sends an arbitrary request and normalizes the response
func (g *Gateway) Forward(ctx context.Context, req upstream.Request, opts ...upstream.NormalizeOption) (upstream.Result, error) {
	res, err := g.client.Do(ctx, req)
	if err != nil {
		return upstream.Result{}, err
	}

	result := upstream.Normalize(res, opts...)
	if !res.IsSuccess() {
		logx.Infof("upstream %s %s answered %d", req.Method, req.Path, res.StatusCode)
	}
	return result, nil
}

func (g *Gateway) readOptions(t Target) []upstream.NormalizeOption {
	if t.Resource.UnwrapData {
		return []upstream.NormalizeOption{upstream.WithUnwrap()}
	}
	return nil
}
