// Package contact proxies messages sent through the public contact form.
package contact

import (
	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
)

// Policy is how contacts routes find their token
var Policy = auth.Policy{
	Resource: "contacts",
	Sources:  auth.SourcesCookieOnly,
}

// Resource is the upstream contacts collection
var Resource = proxy.Resource{
	Policy: Policy,
	Path:   "contacts",
	Base:   upstream.BasePrimary,
}
