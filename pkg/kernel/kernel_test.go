package kernel

import "testing"

func TestResourceIDIsEmpty(t *testing.T) {
	if !NewResourceID("   ").IsEmpty() {
		t.Fatalf("wanted blank id to be empty")
	}
	if NewResourceID(" 42 ").String() != "42" {
		t.Fatalf("wanted id to be trimmed")
	}
}

func TestEmailIsValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ops@example.com", true},
		{"", false},
		{"not-an-email", false},
		{"Name <ops@example.com>", false},
	}
	for _, tt := range tests {
		if got := NewEmail(tt.in).IsValid(); got != tt.want {
			t.Fatalf("Email(%q).IsValid(): wanted %v, got %v", tt.in, tt.want, got)
		}
	}
}
