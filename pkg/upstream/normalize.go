package upstream

import (
	"bytes"
	"mime"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultFailureMessage is used when a failure body has no usable
// message or error field
const DefaultFailureMessage = "Request failed"

// Result is what goes back to the browser: a status and a JSON body
type Result struct {
	Status int
	Body   []byte
}

type normalizeOptions struct {
	id        string
	unwrap    bool
	extraFail map[string]string
}

type NormalizeOption func(*normalizeOptions)

// WithID is echoed as data.id when the upstream answers 204
func WithID(id string) NormalizeOption {
	return func(o *normalizeOptions) { o.id = id }
}

// WithUnwrap returns only the data field of a successful wrapped body
func WithUnwrap() NormalizeOption {
	return func(o *normalizeOptions) { o.unwrap = true }
}

// WithFailureField adds a raw JSON field to failure envelopes when the
// upstream body does not already carry it, e.g. "data" = "[]" for lists.
func WithFailureField(key, raw string) NormalizeOption {
	return func(o *normalizeOptions) {
		if o.extraFail == nil {
			o.extraFail = map[string]string{}
		}
		o.extraFail[key] = raw
	}
}

// Normalize converts an upstream response into the browser-facing result.
//
//   - 204 becomes 200 {"success":true,"data":{"id":...}}
//   - a non-JSON body becomes {"success":false,"message":<text>} with the upstream status
//   - a non-2xx JSON body becomes {"success":false,...body,"message":...}
//   - a 2xx JSON body passes through unchanged
func Normalize(res *Response, opts ...NormalizeOption) Result {
	var o normalizeOptions
	for _, opt := range opts {
		opt(&o)
	}

	if res.StatusCode == http.StatusNoContent {
		return Result{Status: http.StatusOK, Body: noContentBody(o.id)}
	}

	if !isJSON(res) {
		body, _ := sjson.SetBytes([]byte(`{"success":false}`), "message", string(res.Body))
		return Result{Status: res.StatusCode, Body: withFailureFields(body, o.extraFail)}
	}

	trimmed := bytes.TrimSpace(res.Body)
	valid := len(trimmed) > 0 && gjson.ValidBytes(trimmed)

	if !res.IsSuccess() {
		var body []byte
		if valid {
			body = failureFrom(trimmed)
		} else {
			msg := strings.TrimSpace(string(res.Body))
			if msg == "" {
				msg = DefaultFailureMessage
			}
			body, _ = sjson.SetBytes([]byte(`{"success":false}`), "message", msg)
		}
		return Result{Status: res.StatusCode, Body: withFailureFields(body, o.extraFail)}
	}

	if !valid {
		return Result{Status: res.StatusCode, Body: []byte(`{}`)}
	}

	if o.unwrap {
		env := ParseEnvelope(trimmed)
		if env.Kind == KindWrapped && env.Data != nil {
			return Result{Status: res.StatusCode, Body: env.Data}
		}
	}

	return Result{Status: res.StatusCode, Body: trimmed}
}

func noContentBody(id string) []byte {
	if id == "" {
		return []byte(`{"success":true,"data":{}}`)
	}
	body, _ := sjson.SetBytes([]byte(`{"success":true,"data":{}}`), "data.id", id)
	return body
}

// isJSON trusts the Content-Type when present and sniffs the body otherwise
func isJSON(res *Response) bool {
	ct := res.ContentType()
	if ct == "" {
		if len(bytes.TrimSpace(res.Body)) == 0 {
			return true
		}
		return mimetype.Detect(res.Body).Is("application/json")
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	}
	return strings.Contains(mediaType, "json")
}

// failureFrom builds {"success":false, <upstream fields in order>, "message":...}.
// A "success" or "message" key in the upstream body keeps its position.
func failureFrom(body []byte) []byte {
	out := []byte(`{"success":false}`)
	parsed := gjson.ParseBytes(body)

	if parsed.IsObject() {
		parsed.ForEach(func(key, value gjson.Result) bool {
			next, err := sjson.SetRawBytes(out, escapePath(key.String()), []byte(value.Raw))
			if err != nil {
				// sjson cannot address some keys, such as ""
				next = appendMember(out, key.Raw, value.Raw)
			}
			out = next
			return true
		})
	}

	out, _ = sjson.SetRawBytes(out, "message", []byte(failureMessage(parsed)))
	return out
}

// appendMember adds "key":value at the end of a non-empty JSON object
func appendMember(obj []byte, rawKey, rawValue string) []byte {
	end := bytes.LastIndexByte(obj, '}')
	if end < 0 {
		return obj
	}
	out := make([]byte, 0, len(obj)+len(rawKey)+len(rawValue)+2)
	out = append(out, obj[:end]...)
	out = append(out, ',')
	out = append(out, rawKey...)
	out = append(out, ':')
	out = append(out, rawValue...)
	out = append(out, obj[end:]...)
	return out
}

// failureMessage picks the first truthy of message and error, as raw JSON
func failureMessage(parsed gjson.Result) string {
	if parsed.IsObject() {
		for _, key := range []string{"message", "error"} {
			if v := parsed.Get(key); truthy(v) {
				return v.Raw
			}
		}
	}
	return `"` + DefaultFailureMessage + `"`
}

func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return v.Str != ""
	case gjson.Number:
		return v.Num != 0
	case gjson.JSON, gjson.True:
		return true
	default:
		return false
	}
}

func withFailureFields(body []byte, fields map[string]string) []byte {
	for key, raw := range fields {
		path := escapePath(key)
		if gjson.GetBytes(body, path).Exists() {
			continue
		}
		if next, err := sjson.SetRawBytes(body, path, []byte(raw)); err == nil {
			body = next
		}
	}
	return body
}

// escapePath makes an object key safe to use as a gjson/sjson path
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
