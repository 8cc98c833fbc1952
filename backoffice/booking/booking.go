// Package booking proxies customer bookings. Reads return the unwrapped
// data payload and failed lists always carry an empty data array.
package booking

import (
	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
)

// Policy is how bookings routes find their token
var Policy = auth.Policy{
	Resource: "bookings",
	Sources:  auth.SourcesStandard,
}

// Resource is the upstream bookings collection
var Resource = proxy.Resource{
	Policy:           Policy,
	Path:             "bookings",
	Base:             upstream.BasePrimary,
	UnwrapData:       true,
	EmptyListOnError: true,
}

// Status is a booking's lifecycle state as reported by upstream
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Statuses lists the known states in display order
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}
