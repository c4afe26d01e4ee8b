package services

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBusy rejects an operation whose guard is already held.
var ErrBusy = errors.New("another request is already in progress")

// Busy admits a single operation at a time, whatever it targets.
type Busy struct {
	mu   sync.Mutex
	held bool
}

func (b *Busy) Acquire() (release func(), err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.held {
		return nil, ErrBusy
	}
	b.held = true
	return func() {
		b.mu.Lock()
		b.held = false
		b.mu.Unlock()
	}, nil
}

func (b *Busy) Held() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.held
}

// Policy decides how BusyID treats operations on different ids.
type Policy string

const (
	// PolicyBlock keeps one id in flight; everything else waits its turn.
	PolicyBlock Policy = "block"
	// PolicyParallel keeps one operation per id.
	PolicyParallel Policy = "parallel"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyBlock, PolicyParallel:
		return Policy(s), nil
	case "":
		return PolicyBlock, nil
	}
	return "", fmt.Errorf("unknown update policy %q (want block or parallel)", s)
}

// BusyID tracks which ids have an operation in flight.
type BusyID struct {
	mu     sync.Mutex
	policy Policy
	ids    map[string]struct{}
}

func NewBusyID(p Policy) *BusyID {
	return &BusyID{policy: p, ids: map[string]struct{}{}}
}

func (g *BusyID) Acquire(id string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.ids[id]; ok {
		return nil, ErrBusy
	}
	if g.policy != PolicyParallel && len(g.ids) > 0 {
		return nil, ErrBusy
	}
	g.ids[id] = struct{}{}
	return func() {
		g.mu.Lock()
		delete(g.ids, id)
		g.mu.Unlock()
	}, nil
}

// Has reports whether id is in flight.
func (g *BusyID) Has(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.ids[id]
	return ok
}

// Any reports whether anything is in flight.
func (g *BusyID) Any() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.ids) > 0
}

// InFlight is a snapshot of the busy ids, for rendering disabled rows.
func (g *BusyID) InFlight() map[string]bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[string]bool, len(g.ids))
	for id := range g.ids {
		out[id] = true
	}
	return out
}
