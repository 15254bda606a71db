package metric

import (
	"expvar"
	"fmt"
	"sync"
)

const queuesLabel = "flow.queues"

const (
	// PushCounter measures number of accepted pushes.
	PushCounter = "Pushes"
	// PullCounter measures number of successful pulls.
	PullCounter = "Pulls"
	// WarningCounter counts transitions above the warn watermark.
	WarningCounter = "Warnings"
	// OverflowCounter counts rejected pushes.
	OverflowCounter = "Overflows"
	// OccupancyGauge holds current queue occupancy.
	OccupancyGauge = "Occupancy"
)

var (
	meters = registry{
		m: make(map[string]*Meter),
	}

	counters = []string{
		PushCounter,
		PullCounter,
		WarningCounter,
		OverflowCounter,
		OccupancyGauge,
	}
)

// Get metric values for provided queue name.
func Get(name string) map[string]string {
	m := make(map[string]string)
	for _, counter := range counters {
		v := expvar.Get(key(name, counter))
		if v != nil {
			m[counter] = v.String()
		}
	}
	return m
}

// GetAll returns counters for all measured queues.
func GetAll() map[string]map[string]string {
	m := make(map[string]map[string]string)
	meters.Lock()
	defer meters.Unlock()
	for name := range meters.m {
		m[name] = Get(name)
	}
	return m
}

// GetMeter returns the meter for provided queue name. Meters are shared:
// queues with the same name update the same counters.
func GetMeter(name string) *Meter {
	return meters.get(name)
}

type registry struct {
	sync.Mutex
	m map[string]*Meter
}

func (r *registry) get(name string) *Meter {
	r.Lock()
	defer r.Unlock()
	if meter, ok := r.m[name]; ok {
		// return existing meter if available
		return meter
	}
	// create new meter
	meter := newMeter(name)
	r.m[name] = meter
	return meter
}

func (r *registry) each(fn func(name string, m *Meter)) {
	r.Lock()
	defer r.Unlock()
	for name, m := range r.m {
		fn(name, m)
	}
}

// Meter captures counters of a single queue name.
type Meter struct {
	key       string
	pushes    *expvar.Int
	pulls     *expvar.Int
	warnings  *expvar.Int
	overflows *expvar.Int
	occupancy *expvar.Int
}

func newMeter(name string) *Meter {
	return &Meter{
		key:       name,
		pushes:    expvar.NewInt(key(name, PushCounter)),
		pulls:     expvar.NewInt(key(name, PullCounter)),
		warnings:  expvar.NewInt(key(name, WarningCounter)),
		overflows: expvar.NewInt(key(name, OverflowCounter)),
		occupancy: expvar.NewInt(key(name, OccupancyGauge)),
	}
}

// Push counts an accepted push and records the resulting occupancy.
func (m *Meter) Push(occupancy int64) {
	m.pushes.Add(1)
	m.occupancy.Set(occupancy)
}

// Pull counts a successful pull and records the resulting occupancy.
func (m *Meter) Pull(occupancy int64) {
	m.pulls.Add(1)
	m.occupancy.Set(occupancy)
}

// Warning counts a transition above the warn watermark.
func (m *Meter) Warning() {
	m.warnings.Add(1)
}

// Overflow counts a rejected push.
func (m *Meter) Overflow() {
	m.overflows.Add(1)
}

// SetOccupancy records current occupancy.
func (m *Meter) SetOccupancy(occupancy int64) {
	m.occupancy.Set(occupancy)
}

func key(name, counter string) string {
	return fmt.Sprintf("%s.%s.%s", queuesLabel, name, counter)
}
