// Package registry creates and locates the pools a host owns, and fans one
// clock tick out to all of them.
package registry

import (
	"log"

	"github.com/ticklab/writeafter/bus"
	"github.com/ticklab/writeafter/hooking"
	"github.com/ticklab/writeafter/pool"
	"github.com/ticklab/writeafter/timing"
)

// DefaultPoolName is the name of the pool that Default creates.
const DefaultPoolName = "Global"

// A Registry owns a set of named pools that share one sink. The host's update
// loop calls ProcessAll once per tick; pools are processed in creation order.
type Registry struct {
	sink      bus.Sink
	pools     map[string]*pool.Pool
	order     []*pool.Pool
	poolHooks []hooking.Hook
}

// New creates a registry whose pools deliver to sink.
func New(sink bus.Sink) *Registry {
	if sink == nil {
		log.Panic("registry must have a sink")
	}

	return &Registry{
		sink:  sink,
		pools: make(map[string]*pool.Pool),
	}
}

// Sink returns the sink shared by the registry's pools.
func (r *Registry) Sink() bus.Sink {
	return r.sink
}

// CreatePool creates and registers a pool. Pool names are unique within a
// registry; creating a pool under a taken name panics.
func (r *Registry) CreatePool(name string) *pool.Pool {
	if _, ok := r.pools[name]; ok {
		log.Panic("pool " + name + " already registered")
	}

	p := pool.NewPool(name, r.sink)
	for _, h := range r.poolHooks {
		p.AcceptHook(h)
	}

	r.pools[name] = p
	r.order = append(r.order, p)

	return p
}

// Pool returns the pool registered under name, or nil.
func (r *Registry) Pool(name string) *pool.Pool {
	return r.pools[name]
}

// Default returns the registry's default pool, creating it on first use.
// Hosts that only ever need one queue use this instead of naming their own.
func (r *Registry) Default() *pool.Pool {
	if p, ok := r.pools[DefaultPoolName]; ok {
		return p
	}

	return r.CreatePool(DefaultPoolName)
}

// Pools returns the registered pools in creation order.
func (r *Registry) Pools() []*pool.Pool {
	pools := make([]*pool.Pool, len(r.order))
	copy(pools, r.order)
	return pools
}

// AcceptPoolHook registers a hook on every current pool and every pool
// created later. Observers such as delivery recorders attach here once
// instead of chasing individual pools.
func (r *Registry) AcceptPoolHook(h hooking.Hook) {
	r.poolHooks = append(r.poolHooks, h)
	for _, p := range r.order {
		p.AcceptHook(h)
	}
}

// ProcessAll advances every registered pool by elapsed, once each, in
// creation order.
func (r *Registry) ProcessAll(elapsed timing.Seconds) {
	for _, p := range r.order {
		p.Process(elapsed)
	}
}
