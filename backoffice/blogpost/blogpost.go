package blogpost

import (
	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
)

// Policy is how blog-posts routes find their token
var Policy = auth.Policy{
	Resource:   "blog-posts",
	Sources:    auth.SourcesContent,
	PublicRead: true,
}

// Resource is the upstream blog-posts collection
var Resource = proxy.Resource{
	Policy: Policy,
	Path:   "blog-posts",
	Base:   upstream.BaseAlternate,
}
