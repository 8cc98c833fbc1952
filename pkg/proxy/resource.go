package proxy

import (
	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/kernel"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
)

// Resource describes one upstream collection and how its routes behave
type Resource struct {
	// Policy decides token sources and whether reads are public
	Policy auth.Policy

	// Path is the upstream collection path relative to the base, e.g. "bookings"
	Path string

	// Base selects the configured upstream host
	Base upstream.Base

	// UnwrapData returns only the data field of successful reads
	UnwrapData bool

	// EmptyListOnError adds "data":[] to failed list responses
	EmptyListOnError bool
}

// Name is the browser-facing resource name
func (r Resource) Name() string {
	return r.Policy.Resource
}

// Collection targets the resource's collection
func (r Resource) Collection() Target {
	return Target{Resource: r, Path: r.Path}
}

// Item targets one entity of the resource
func (r Resource) Item(id kernel.ResourceID) Target {
	return r.Collection().Item(id)
}

// Target is an upstream path within a resource
type Target struct {
	Resource Resource
	Path     string
	// ID is echoed back when the upstream answers 204
	ID kernel.ResourceID
}

// Item descends into one entity below t
func (t Target) Item(id kernel.ResourceID) Target {
	return Target{Resource: t.Resource, Path: t.Path + "/" + id.String(), ID: id}
}

// Child descends into a named sub-collection below t
func (t Target) Child(name string) Target {
	return Target{Resource: t.Resource, Path: t.Path + "/" + name}
}
