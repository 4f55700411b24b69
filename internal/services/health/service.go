package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultProbeTimeout = 3 * time.Second

// Probe reports whether one dependency is usable.
type Probe func(ctx context.Context) error

// Check is a named probe. Optional checks degrade the report without
// marking the service unhealthy.
type Check struct {
	Name     string
	Probe    Probe
	Optional bool
}

// Result is the outcome of one check.
type Result struct {
	Name       string `json:"name"`
	OK         bool   `json:"ok"`
	Optional   bool   `json:"optional,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

// Report is the health payload.
type Report struct {
	OK       bool     `json:"ok"`
	Degraded bool     `json:"degraded,omitempty"`
	Checks   []Result `json:"checks"`
}

// Service runs health checks concurrently.
type Service struct {
	checks  []Check
	timeout time.Duration
}

// NewService constructs a health service over checks.
func NewService(timeout time.Duration, checks ...Check) *Service {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &Service{checks: checks, timeout: timeout}
}

// Status runs every check under the probe timeout and aggregates the results.
func (s *Service) Status(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var mu sync.Mutex
	results := make([]Result, 0, len(s.checks))

	eg, egCtx := errgroup.WithContext(ctx)
	for _, check := range s.checks {
		eg.Go(func() error {
			started := time.Now()
			err := check.Probe(egCtx)
			res := Result{
				Name:       check.Name,
				OK:         err == nil,
				Optional:   check.Optional,
				DurationMs: time.Since(started).Milliseconds(),
			}
			if err != nil {
				res.Error = err.Error()
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			// failures are reported, not propagated, so sibling probes keep running
			return nil
		})
	}
	_ = eg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	report := Report{OK: true, Checks: results}
	for _, r := range results {
		if r.OK {
			continue
		}
		if r.Optional {
			report.Degraded = true
		} else {
			report.OK = false
		}
	}
	return report
}
