// Package stats keeps in-memory governance counters for the admin surface.
// Per-process only; counters reset on restart.
package stats

import "sync"

type Counters struct {
	Allowed int64 `json:"allowed"`
	Denied  int64 `json:"denied"`
}

type Recorder struct {
	mu         sync.Mutex
	total      Counters
	byEndpoint map[string]Counters
}

func NewRecorder() *Recorder {
	return &Recorder{byEndpoint: make(map[string]Counters)}
}

// Record tallies one rate-limit decision for an endpoint.
func (r *Recorder) Record(endpoint string, allowed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.byEndpoint[endpoint]
	if allowed {
		r.total.Allowed++
		c.Allowed++
	} else {
		r.total.Denied++
		c.Denied++
	}
	r.byEndpoint[endpoint] = c
}

func (r *Recorder) Total() Counters {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

func (r *Recorder) ByEndpoint() map[string]Counters {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Counters, len(r.byEndpoint))
	for k, v := range r.byEndpoint {
		out[k] = v
	}
	return out
}
