package loadbalancer

import (
	"sync"

	"github.com/tair/storefront/pkg/logger"
)

// RoundRobin rotates requests across the configured service instances
type RoundRobin struct {
	instances []string
	current   int
	mu        sync.Mutex
}

// NewRoundRobin creates a new round-robin balancer over the given base URLs
func NewRoundRobin(instances []string) *RoundRobin {
	if len(instances) == 0 {
		instances = []string{"http://localhost:8080"} // Default fallback
	}

	logger.Logger.Info().
		Int("instance_count", len(instances)).
		Strs("instances", instances).
		Msg("Round-robin load balancer initialized")

	return &RoundRobin{
		instances: instances,
		current:   0,
	}
}

// Next returns the next instance in round-robin order
func (rr *RoundRobin) Next() string {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if len(rr.instances) == 0 {
		return ""
	}

	instance := rr.instances[rr.current]
	rr.current = (rr.current + 1) % len(rr.instances)

	return instance
}

// Instances returns a copy of the instance pool
func (rr *RoundRobin) Instances() []string {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return append([]string{}, rr.instances...)
}

// AddInstance adds an instance to the pool
func (rr *RoundRobin) AddInstance(instance string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.instances = append(rr.instances, instance)
	logger.Logger.Info().
		Str("instance", instance).
		Int("total_instances", len(rr.instances)).
		Msg("Instance added to load balancer")
}

// RemoveInstance removes an instance from the pool
func (rr *RoundRobin) RemoveInstance(instance string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	for i, s := range rr.instances {
		if s == instance {
			rr.instances = append(rr.instances[:i], rr.instances[i+1:]...)
			logger.Logger.Info().
				Str("instance", instance).
				Int("total_instances", len(rr.instances)).
				Msg("Instance removed from load balancer")
			break
		}
	}

	if rr.current >= len(rr.instances) && len(rr.instances) > 0 {
		rr.current = 0
	}
}

// Stats returns load balancer statistics
func (rr *RoundRobin) Stats() map[string]interface{} {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	return map[string]interface{}{
		"algorithm":      "round-robin",
		"instance_count": len(rr.instances),
		"instances":      rr.instances,
		"current_index":  rr.current,
	}
}
