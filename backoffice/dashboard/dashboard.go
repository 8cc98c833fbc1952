package dashboard

import (
	"time"

	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
)

// Policy is how the dashboard routes find their token
var Policy = auth.Policy{
	Resource: "dashboard",
	Sources:  auth.SourcesStandard,
}

// Source is one collection counted on the overview
type Source struct {
	Resource proxy.Resource

	// GroupBy names a string field to tally, e.g. "status". Empty skips it.
	GroupBy string

	// Seed lists group values reported even when no item has them
	Seed []string
}

// Keys converts a list of string enums into Seed values
func Keys[S ~string](values []S) []string {
	keys := make([]string, len(values))
	for i, v := range values {
		keys[i] = string(v)
	}
	return keys
}

// ResourceStats is the overview entry for one collection
type ResourceStats struct {
	// Count is nil when the collection could not be listed
	Count   *int           `json:"count"`
	ByGroup map[string]int `json:"byStatus,omitempty"`
}

// Overview is the dashboard summary
type Overview struct {
	Resources   map[string]ResourceStats `json:"resources"`
	Errors      map[string]string        `json:"errors,omitempty"`
	GeneratedAt time.Time                `json:"generatedAt"`
}
