package discovery

import (
	"math/rand"
	"sync"
)

// Selector chooses the replica a call goes to.
type Selector interface {
	Select(service string, endpoints []Endpoint) Endpoint
}

// UniformRandom picks every replica with equal probability, independently
// on each call.
type UniformRandom struct{}

// NewUniformRandom returns the default selector.
func NewUniformRandom() UniformRandom {
	return UniformRandom{}
}

// Select implements Selector.
func (UniformRandom) Select(_ string, endpoints []Endpoint) Endpoint {
	return endpoints[rand.Intn(len(endpoints))]
}

// RoundRobin cycles through the replicas of each service.
type RoundRobin struct {
	mu   sync.Mutex
	next map[string]int
}

// NewRoundRobin returns a round robin selector.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{next: make(map[string]int)}
}

// Select implements Selector.
func (r *RoundRobin) Select(service string, endpoints []Endpoint) Endpoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.next[service] % len(endpoints)
	r.next[service] = i + 1
	return endpoints[i]
}

// SelectorByName maps a configured selector name to a Selector.
func SelectorByName(name string) Selector {
	if name == "round_robin" {
		return NewRoundRobin()
	}
	return NewUniformRandom()
}
