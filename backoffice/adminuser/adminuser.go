// Package adminuser proxies back-office staff accounts.
package adminuser

import (
	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
)

// Policy is how admin-users routes find their token
var Policy = auth.Policy{
	Resource: "admin-users",
	Sources:  auth.SourcesStandard,
}

// Resource is the upstream admin-users collection
var Resource = proxy.Resource{
	Policy: Policy,
	Path:   "admin-users",
	Base:   upstream.BasePrimary,
}
