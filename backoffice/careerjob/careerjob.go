package careerjob

import (
	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
)

// Policy is how career-jobs routes find their token
var Policy = auth.Policy{
	Resource: "career-jobs",
	Sources:  auth.SourcesContent,
}

// Resource is the upstream career-jobs collection
var Resource = proxy.Resource{
	Policy: Policy,
	Path:   "career-jobs",
	Base:   upstream.BasePrimary,
}
