package upstream

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Kind tells which shape an upstream body has
type Kind int

const (
	// KindRaw is any body that is not a {success, data, message} object
	KindRaw Kind = iota
	// KindWrapped is an object carrying a boolean "success" or a "data" field
	KindWrapped
)

func (k Kind) String() string {
	if k == KindWrapped {
		return "wrapped"
	}
	return "raw"
}

// Envelope is the parsed form of an upstream JSON body. Callers that need
// the records read them through Items instead of probing both shapes.
type Envelope struct {
	Kind       Kind
	Raw        json.RawMessage
	Success    bool
	HasSuccess bool
	Data       json.RawMessage
	Message    string
}

// listKeys are the fields checked when "data" is an object holding a list
var listKeys = []string{"items", "results", "docs"}

// ParseEnvelope classifies body. Invalid JSON yields an empty raw envelope.
func ParseEnvelope(body []byte) Envelope {
	if !gjson.ValidBytes(body) {
		return Envelope{Kind: KindRaw}
	}
	root := gjson.ParseBytes(body)
	env := Envelope{Kind: KindRaw, Raw: json.RawMessage(root.Raw)}
	if !root.IsObject() {
		return env
	}

	success := root.Get("success")
	data := root.Get("data")
	isBool := success.Type == gjson.True || success.Type == gjson.False
	if !isBool && !data.Exists() {
		return env
	}

	env.Kind = KindWrapped
	if isBool {
		env.HasSuccess = true
		env.Success = success.Bool()
	}
	if data.Exists() {
		env.Data = json.RawMessage(data.Raw)
	}
	if msg := root.Get("message"); msg.Type == gjson.String {
		env.Message = msg.Str
	}
	return env
}

// Items returns the records of a list body: a bare array, a wrapped array,
// or a wrapped object with an items/results/docs array. ok is false when
// no list is present.
func (e Envelope) Items() ([]json.RawMessage, bool) {
	var list gjson.Result
	switch e.Kind {
	case KindRaw:
		list = gjson.ParseBytes(e.Raw)
	case KindWrapped:
		if e.HasSuccess && !e.Success {
			return nil, false
		}
		list = gjson.ParseBytes(e.Data)
		if list.IsObject() {
			for _, key := range listKeys {
				if v := list.Get(key); v.IsArray() {
					list = v
					break
				}
			}
		}
	}
	if !list.IsArray() {
		return nil, false
	}

	items := make([]json.RawMessage, 0)
	list.ForEach(func(_, v gjson.Result) bool {
		items = append(items, json.RawMessage(v.Raw))
		return true
	})
	return items, true
}
