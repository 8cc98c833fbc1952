package upstream

import "testing"

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantKind  Kind
		wantItems int
		wantList  bool
	}{
		{name: "bare array", body: `[{"id":1},{"id":2}]`, wantKind: KindRaw, wantItems: 2, wantList: true},
		{name: "wrapped array", body: `{"success":true,"data":[{"id":1}]}`, wantKind: KindWrapped, wantItems: 1, wantList: true},
		{name: "wrapped items", body: `{"data":{"items":[1,2,3],"total":3}}`, wantKind: KindWrapped, wantItems: 3, wantList: true},
		{name: "wrapped failure", body: `{"success":false,"data":[]}`, wantKind: KindWrapped, wantList: false},
		{name: "single record", body: `{"id":1,"name":"x"}`, wantKind: KindRaw, wantList: false},
		{name: "string success is not a flag", body: `{"success":"yes"}`, wantKind: KindRaw, wantList: false},
		{name: "invalid", body: `{`, wantKind: KindRaw, wantList: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := ParseEnvelope([]byte(tt.body))
			if env.Kind != tt.wantKind {
				t.Fatalf("wanted kind %s, got %s", tt.wantKind, env.Kind)
			}
			items, ok := env.Items()
			if ok != tt.wantList {
				t.Fatalf("wanted list=%v, got %v", tt.wantList, ok)
			}
			if ok && len(items) != tt.wantItems {
				t.Fatalf("wanted %d items, got %d", tt.wantItems, len(items))
			}
		})
	}
}

func TestEnvelopeFields(t *testing.T) {
	env := ParseEnvelope([]byte(`{"success":true,"message":"ok","data":{"id":5}}`))
	if string(env.Data) != `{"id":5}` {
		t.Fatalf("wanted data payload, got %s", env.Data)
	}
	if env.Message != "ok" || !env.Success || !env.HasSuccess {
		t.Fatalf("wanted success envelope with message, got %+v", env)
	}

	raw := ParseEnvelope([]byte(`{"id":5}`))
	if raw.Data != nil || string(raw.Raw) != `{"id":5}` {
		t.Fatalf("wanted whole body kept raw, got %+v", raw)
	}
}
