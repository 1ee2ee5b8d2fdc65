// ABOUTME: Time-proximity route resolver with one-to-one claim semantics.
// ABOUTME: Claim checks tolerance and marks the route taken under one lock.
package routes

import (
	"sync"
	"time"

	"github.com/rsharman/hk2tcx/internal/models"
)

// DefaultTolerance bounds how far a route's first point may sit from the
// workout's start time and still match. Route recording starts within seconds
// of the workout; five minutes absorbs clock rounding and paused starts
// without reaching into a neighboring workout.
const DefaultTolerance = 5 * time.Minute

// Registry holds the run's pool of candidate routes and which of them have
// already been assigned. It is the only shared mutable state in a run and is
// safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	routes  []*models.RoutePointSequence // sorted by name
	claimed map[string]bool
}

// NewRegistry creates a Registry over the given routes. Callers should pass
// the name-sorted output of LoadDir so tie-breaks are reproducible.
func NewRegistry(routes []*models.RoutePointSequence) *Registry {
	return &Registry{
		routes:  routes,
		claimed: make(map[string]bool, len(routes)),
	}
}

// Claim finds the best unclaimed route whose first point lies within
// tolerance of start, marks it claimed, and returns it. Returns nil when
// nothing matches — a normal outcome for indoor workouts. Ties on time
// difference go to the lexically smallest route name.
func (r *Registry) Claim(start time.Time, tolerance time.Duration) *models.RoutePointSequence {
	r.mu.Lock()
	defer r.mu.Unlock()

	var best *models.RoutePointSequence
	var bestDiff time.Duration
	for _, seq := range r.routes {
		if r.claimed[seq.Name] {
			continue
		}
		diff := seq.StartTime().Sub(start)
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			continue
		}
		// routes is name-sorted, so strict < keeps the lexically smallest
		// name on an exact tie.
		if best == nil || diff < bestDiff {
			best = seq
			bestDiff = diff
		}
	}
	if best != nil {
		r.claimed[best.Name] = true
	}
	return best
}

// Claimed reports how many routes have been assigned so far.
func (r *Registry) Claimed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.claimed)
}

// Available reports how many routes were loaded into the registry.
func (r *Registry) Available() int {
	return len(r.routes)
}
