// Package monitor tracks in-flight and recently finished runs in memory so
// the HTTP API can answer status/progress queries without touching the
// run store, whose row for an in-flight run holds only its parameters and
// "running" status until the run finishes.
package monitor

import (
	"sync"
	"time"

	"github.com/nerevar/traclusdl/internal/progress"
)

// Status is the lifecycle state of a tracked run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Snapshot is the point-in-time view of a run returned by the API.
type Snapshot struct {
	ID                   string
	Status               Status
	TrajectoriesDone     int
	TrajectoriesTotal    int
	Corridors            int
	ClusteredSegments    int
	NonClusteredSegments int
	Error                string
	StartedAt            time.Time
	UpdatedAt            time.Time
}

// Registry holds the latest Snapshot per run id, updated by an Observer
// attached to that run's orchestration.
type Registry struct {
	mu   sync.RWMutex
	runs map[string]*Snapshot
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{runs: make(map[string]*Snapshot)}
}

// Start records a new running entry for id.
func (r *Registry) Start(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[id] = &Snapshot{ID: id, Status: StatusRunning, StartedAt: time.Now()}
}

// Get returns the snapshot for id and whether it exists.
func (r *Registry) Get(id string) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.runs[id]
	if !ok {
		return Snapshot{}, false
	}
	return *s, true
}

// Observer returns a progress.Observer that updates this registry's entry
// for id as the run it's attached to reports events.
func (r *Registry) Observer(id string) progress.Observer {
	return &registryObserver{reg: r, id: id}
}

type registryObserver struct {
	reg *Registry
	id  string
}

func (o *registryObserver) touch(fn func(s *Snapshot)) {
	o.reg.mu.Lock()
	defer o.reg.mu.Unlock()
	s, ok := o.reg.runs[o.id]
	if !ok {
		return
	}
	fn(s)
	s.UpdatedAt = time.Now()
}

func (o *registryObserver) OnLoadComplete(e progress.LoadComplete) {
	o.touch(func(s *Snapshot) {
		s.TrajectoriesTotal = e.Trajectories
	})
}

func (o *registryObserver) OnDiscoveryProgress(e progress.DiscoveryProgress) {
	o.touch(func(s *Snapshot) {
		s.TrajectoriesDone = e.TrajectoriesDone
		s.TrajectoriesTotal = e.TrajectoriesTotal
	})
}

func (o *registryObserver) OnRunComplete(e progress.RunComplete) {
	o.touch(func(s *Snapshot) {
		s.Status = StatusCompleted
		s.Corridors = e.Corridors
		s.ClusteredSegments = e.ClusteredSegments
		s.NonClusteredSegments = e.NonClusteredSegments
	})
}

func (o *registryObserver) OnRunFailed(e progress.RunFailed) {
	o.touch(func(s *Snapshot) {
		s.Status = StatusFailed
		s.Error = e.Err.Error()
	})
}
