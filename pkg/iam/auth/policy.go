package auth

// ============================================================================
// ROUTE ACCESS POLICIES
// ============================================================================

// Policy describes how a resource's routes find and require a token
type Policy struct {
	// Resource is the browser-facing resource name, e.g. "bookings"
	Resource string

	// Sources lists where a token is looked for, in priority order
	Sources []TokenSource

	// PublicRead lets GET routes through without a token
	PublicRead bool
}

// Resolver returns the token resolver for the policy's sources
func (p Policy) Resolver() Resolver {
	return NewResolver(p.Sources...)
}

// Source sets in use across routes. The differences between them are
// deliberate: each route keeps the credential sources it always accepted.
var (
	// SourcesStandard: token, access_token, then the Authorization header
	SourcesStandard = []TokenSource{
		SourceCookieToken,
		SourceCookieAccessToken,
		SourceAuthorizationHeader,
	}

	// SourcesContent adds the legacy authToken cookie used by the content editors
	SourcesContent = []TokenSource{
		SourceCookieToken,
		SourceCookieAccessToken,
		SourceCookieAuthToken,
		SourceAuthorizationHeader,
	}

	// SourcesCookieOnly ignores the Authorization header
	SourcesCookieOnly = []TokenSource{
		SourceCookieToken,
		SourceCookieAccessToken,
	}
)

// DefaultPolicy is used by routes that are not tied to a single resource
var DefaultPolicy = Policy{
	Resource: "default",
	Sources:  SourcesStandard,
}
