package config

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Validate checks every server and request and returns all defects combined.
func Validate(t *Topology) error {
	var errs error
	if len(t.Servers) == 0 {
		errs = multierr.Append(errs, ErrNoServers)
	}

	servers := map[string]bool{}
	for i, s := range t.Servers {
		if s.ID == "" {
			errs = multierr.Append(errs, errors.Errorf("servers[%d]: missing id", i))
		} else if servers[s.ID] {
			errs = multierr.Append(errs, errors.Errorf("servers[%d]: duplicate id %q", i, s.ID))
		}
		servers[s.ID] = true
		if s.Capacity <= 0 {
			errs = multierr.Append(errs, errors.Errorf("servers[%d] %q: capacity must be positive, got %d", i, s.ID, s.Capacity))
		}
	}

	requests := map[string]bool{}
	for i, r := range t.Requests {
		if r.ID == "" {
			errs = multierr.Append(errs, errors.Errorf("requests[%d]: missing id", i))
		} else if requests[r.ID] {
			errs = multierr.Append(errs, errors.Errorf("requests[%d]: duplicate id %q", i, r.ID))
		}
		requests[r.ID] = true
		if r.ExecTime > MaxSeconds {
			errs = multierr.Append(errs, errors.Errorf("requests[%d] %q: exec_time must be at most %g, got %g", i, r.ID, MaxSeconds, r.ExecTime))
		} else if !(r.ExecTime > 0) || Seconds(r.ExecTime) <= 0 {
			errs = multierr.Append(errs, errors.Errorf("requests[%d] %q: exec_time must be positive, got %g", i, r.ID, r.ExecTime))
		}
		if !(r.ArrivalTime >= 0) {
			errs = multierr.Append(errs, errors.Errorf("requests[%d] %q: arrival_time must not be negative, got %g", i, r.ID, r.ArrivalTime))
		} else if r.ArrivalTime > MaxSeconds {
			errs = multierr.Append(errs, errors.Errorf("requests[%d] %q: arrival_time must be at most %g, got %g", i, r.ID, MaxSeconds, r.ArrivalTime))
		}
	}
	return errs
}
