package unitreg

import "sort"

// UnitState is the lifecycle state of one unit as observed at a point in
// time.
type UnitState string

const (
	StateDeactivated UnitState = "deactivated"
	StateUnstarted   UnitState = "unstarted"
	StateStarted     UnitState = "started"
	StateClosed      UnitState = "closed"
)

// UnitStatus pairs a unit name with its observed state.
type UnitStatus struct {
	Name  string    `json:"name"`
	State UnitState `json:"state"`
}

// Status returns a point-in-time view of every known unit, deactivated ones
// included, sorted by name. States may be stale by the time the caller
// reads them; use for logging and diagnostics only.
func (r *Registry[T]) Status() []UnitStatus {
	r.mu.RLock()
	statuses := make([]UnitStatus, 0, len(r.units)+len(r.deactivated))
	for name, u := range r.units {
		statuses = append(statuses, UnitStatus{Name: name, State: u.state()})
	}
	for name := range r.deactivated {
		statuses = append(statuses, UnitStatus{Name: name, State: StateDeactivated})
	}
	r.mu.RUnlock()

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})
	return statuses
}
