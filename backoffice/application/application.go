// Package application proxies job applications submitted through the career pages.
package application

import (
	"github.com/Abraxas-365/backoffice/pkg/iam/auth"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
)

// Policy is how applications routes find their token
var Policy = auth.Policy{
	Resource: "applications",
	Sources:  auth.SourcesStandard,
}

// Resource is the upstream applications collection
var Resource = proxy.Resource{
	Policy: Policy,
	Path:   "applications",
	Base:   upstream.BasePrimary,
}

// Status is where an application stands in the hiring process
type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewing   Status = "reviewing"
	StatusShortlisted Status = "shortlisted"
	StatusInterview   Status = "interview"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
)

// Statuses lists the known states in pipeline order
var Statuses = []Status{
	StatusPending,
	StatusReviewing,
	StatusShortlisted,
	StatusInterview,
	StatusAccepted,
	StatusRejected,
}

var statusLabels = map[Status]string{
	StatusPending:     "Pending",
	StatusReviewing:   "Under review",
	StatusShortlisted: "Shortlisted",
	StatusInterview:   "Invited to interview",
	StatusAccepted:    "Accepted",
	StatusRejected:    "Not selected",
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the wording used in messages to the applicant
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}
