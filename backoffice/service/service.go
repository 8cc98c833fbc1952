// Package service proxies the service catalogue and each service's
// sub-services. Reads are public; the marketing site renders from them.
package service

import (
	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/kernel"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
)

// Policy is shared by services and sub-services
var Policy = auth.Policy{
	Resource:   "services",
	Sources:    auth.SourcesContent,
	PublicRead: true,
}

// Resource is the upstream services collection
var Resource = proxy.Resource{
	Policy: Policy,
	Path:   "services",
	Base:   upstream.BaseAlternate,
}

// SubServices targets the sub-service collection of one service
func SubServices(slug kernel.Slug) proxy.Target {
	return Resource.Item(kernel.ResourceID(slug)).Child("sub-services")
}

// SubService targets one sub-service of a service
func SubService(slug, subSlug kernel.Slug) proxy.Target {
	return SubServices(slug).Item(kernel.ResourceID(subSlug))
}
