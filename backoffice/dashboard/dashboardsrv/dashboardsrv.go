package dashboardsrv

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Abraxas-365/backoffice/backoffice/dashboard"
	"github.com/Abraxas-365/backoffice/pkg/errx"
	"github.com/Abraxas-365/backoffice/pkg/logx"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentLists = 4

// DashboardService builds the overview from read-only list calls
type DashboardService struct {
	gateway *proxy.Gateway
	sources []dashboard.Source
	now     func() time.Time
}

// NewDashboardService creates a new instance of the dashboard service
func NewDashboardService(gateway *proxy.Gateway, sources ...dashboard.Source) *DashboardService {
	return &DashboardService{
		gateway: gateway,
		sources: sources,
		now:     time.Now,
	}
}

// Overview lists every source concurrently. A failing source shows up in
// Errors with a nil count; it never fails the whole overview.
func (s *DashboardService) Overview(ctx context.Context, token string) (*dashboard.Overview, error) {
	overview := &dashboard.Overview{
		Resources:   make(map[string]dashboard.ResourceStats, len(s.sources)),
		Errors:      map[string]string{},
		GeneratedAt: s.now().UTC(),
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(maxConcurrentLists)

	for _, src := range s.sources {
		g.Go(func() error {
			stats, err := s.collect(ctx, src, token)

			mu.Lock()
			defer mu.Unlock()
			overview.Resources[src.Resource.Name()] = stats
			if err != nil {
				overview.Errors[src.Resource.Name()] = err.Error()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errx.Wrap(err, "failed to build dashboard overview", errx.TypeInternal)
	}

	if len(overview.Errors) == 0 {
		overview.Errors = nil
	}
	return overview, nil
}

type sourceError struct {
	status  int
	message string
}

func (e *sourceError) Error() string {
	if e.message != "" {
		return e.message
	}
	return http.StatusText(e.status)
}

func (s *DashboardService) collect(ctx context.Context, src dashboard.Source, token string) (dashboard.ResourceStats, error) {
	res, err := s.gateway.List(ctx, src.Resource.Collection(), token, "")
	if err != nil {
		logx.Warnf("dashboard: listing %s failed: %v", src.Resource.Name(), err)
		if e, ok := errx.As(err); ok && e.Cause != nil {
			return dashboard.ResourceStats{}, e.Cause
		}
		return dashboard.ResourceStats{}, err
	}

	env := upstream.ParseEnvelope(res.Body)
	if res.Status < 200 || res.Status >= 300 {
		message := env.Message
		if message == "" {
			// local failures rendered for list fallbacks carry the cause here
			message = gjson.GetBytes(res.Body, "details").String()
		}
		return dashboard.ResourceStats{}, &sourceError{status: res.Status, message: message}
	}

	items, ok := env.Items()
	if !ok {
		return dashboard.ResourceStats{}, &sourceError{status: res.Status, message: "response is not a list"}
	}

	count := len(items)
	stats := dashboard.ResourceStats{Count: &count}
	if src.GroupBy != "" {
		stats.ByGroup = make(map[string]int, len(src.Seed))
		for _, key := range src.Seed {
			stats.ByGroup[key] = 0
		}
		for _, item := range items {
			if v := gjson.GetBytes(item, src.GroupBy); v.Type == gjson.String && v.Str != "" {
				stats.ByGroup[v.Str]++
			}
		}
	}
	return stats, nil
}
