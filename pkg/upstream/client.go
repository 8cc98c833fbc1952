package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Abraxas-365/backoffice/pkg/kernel"
	"github.com/Abraxas-365/backoffice/pkg/logx"
	"github.com/dustin/go-humanize"
)

// Base selects one of the configured upstream base URLs
type Base string

const (
	BasePrimary   Base = "primary"
	BaseAlternate Base = "alternate"
)

type Config struct {
	BaseURL          string
	AlternateBaseURL string
	Timeout          time.Duration
	// MaxBodyBytes caps response bodies; 0 means no cap
	MaxBodyBytes uint64
}

// Client issues single-attempt, uncached requests to the upstream API
type Client struct {
	http    *http.Client
	bases   map[Base]string
	maxBody uint64
}

// NewClient creates an upstream client. A nil httpClient gets a plain
// http.Client with cfg.Timeout (zero leaves the transport defaults alone).
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	alternate := cfg.AlternateBaseURL
	if alternate == "" {
		alternate = cfg.BaseURL
	}
	return &Client{
		http: httpClient,
		bases: map[Base]string{
			BasePrimary:   strings.TrimRight(cfg.BaseURL, "/"),
			BaseAlternate: strings.TrimRight(alternate, "/"),
		},
		maxBody: cfg.MaxBodyBytes,
	}
}

// Request describes one upstream call
type Request struct {
	Method string
	Base   Base
	Path   string // relative to the base, e.g. "bookings/42"
	Query  string // raw query string without '?'
	Token  string
	Body   any // json.RawMessage and []byte are sent verbatim
}

// Response is the raw upstream answer with its body already read
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports a 2xx status
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the Content-Type header
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// URL joins a base with a relative path and optional query
func (c *Client) URL(base Base, path, query string) string {
	root, ok := c.bases[base]
	if !ok {
		root = c.bases[BasePrimary]
	}
	u := root + "/" + strings.TrimLeft(path, "/")
	if query != "" {
		u += "?" + query
	}
	return u
}

// Do sends the request once. Transport failures come back as ErrNetwork;
// any HTTP status, including 4xx and 5xx, is a successful call.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, ErrRequestInvalid().WithCause(err).WithDetail("path", req.Path)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.URL(req.Base, req.Path, req.Query)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, ErrRequestInvalid().WithCause(err).WithDetail("path", req.Path)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Accept-Encoding", "br, gzip")
	httpReq.Header.Set("Cache-Control", "no-store")
	httpReq.Header.Set("Pragma", "no-cache")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	if id := RequestIDFromContext(ctx); !id.IsEmpty() {
		httpReq.Header.Set("X-Request-ID", id.String())
	}

	started := time.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		logx.Warnf("upstream %s %s failed: %v", method, req.Path, err)
		return nil, ErrNetwork().WithCause(err).WithDetail("path", req.Path)
	}
	defer httpResp.Body.Close()

	data, err := decodeBody(httpResp.Header.Get("Content-Encoding"), httpResp.Body, c.maxBody)
	if err != nil {
		if isTooLarge(err) {
			logx.Warnf("upstream %s %s answered more than %s", method, req.Path, humanize.Bytes(c.maxBody))
			return nil, ErrBodyTooLarge().WithCause(err).
				WithDetail("path", req.Path).
				WithDetail("limit", humanize.Bytes(c.maxBody))
		}
		if isReadError(err) {
			return nil, ErrNetwork().WithCause(err).WithDetail("path", req.Path)
		}
		return nil, ErrDecodeFailed().WithCause(err).WithDetail("path", req.Path)
	}

	logx.Debugf("upstream %s %s -> %d (%s) in %s",
		method, req.Path, httpResp.StatusCode, humanize.Bytes(uint64(len(data))), time.Since(started))

	header := httpResp.Header.Clone()
	header.Del("Content-Encoding")
	header.Del("Content-Length")

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     header,
		Body:       data,
	}, nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		if len(b) == 0 {
			return nil, nil
		}
		return b, nil
	case []byte:
		if len(b) == 0 {
			return nil, nil
		}
		return b, nil
	default:
		return json.Marshal(b)
	}
}

// ============================================================================
// Request ID propagation
// ============================================================================

type requestIDKey struct{}

// WithRequestID stores the browser request's correlation ID on ctx
func WithRequestID(ctx context.Context, id kernel.RequestID) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation ID stored by WithRequestID
func RequestIDFromContext(ctx context.Context) kernel.RequestID {
	id, _ := ctx.Value(requestIDKey{}).(kernel.RequestID)
	return id
}
