// Package health serves the aggregated health endpoint.
package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"countryref/pkg/platform/httputil"
)

const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// Result is the outcome of one component check.
type Result struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// Check reports on one component.
type Check func(ctx context.Context) Result

// Up is a healthy result with optional details.
func Up(details map[string]any) Result {
	return Result{Status: StatusUp, Details: details}
}

// Down is an unhealthy result with optional details.
func Down(details map[string]any) Result {
	return Result{Status: StatusDown, Details: details}
}

// FromError turns a ping-style probe into a Check.
func FromError(probe func(ctx context.Context) error) Check {
	return func(ctx context.Context) Result {
		if err := probe(ctx); err != nil {
			return Down(map[string]any{"error": err.Error()})
		}
		return Up(nil)
	}
}

type response struct {
	Status     string            `json:"status"`
	Components map[string]Result `json:"components"`
}

// Handler runs every check and answers 200 when all are up, 503 otherwise.
func Handler(checks map[string]Check) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := response{Status: StatusUp, Components: make(map[string]Result, len(checks))}
		for _, name := range names {
			res := checks[name](ctx)
			resp.Components[name] = res
			if res.Status != StatusUp {
				resp.Status = StatusDown
			}
		}

		status := http.StatusOK
		if resp.Status != StatusUp {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, resp)
	}
}
