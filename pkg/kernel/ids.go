package kernel

import "strings"

// ResourceID identifies an upstream entity in a path parameter
type ResourceID string

func NewResourceID(id string) ResourceID { return ResourceID(strings.TrimSpace(id)) }
func (r ResourceID) String() string      { return string(r) }
func (r ResourceID) IsEmpty() bool       { return strings.TrimSpace(string(r)) == "" }

// Slug identifies a service or sub-service by its URL name
type Slug string

func NewSlug(s string) Slug   { return Slug(strings.TrimSpace(s)) }
func (s Slug) String() string { return string(s) }
func (s Slug) IsEmpty() bool  { return strings.TrimSpace(string(s)) == "" }

// RequestID correlates one browser request with its upstream call
type RequestID string

func (r RequestID) String() string { return string(r) }
func (r RequestID) IsEmpty() bool  { return string(r) == "" }
