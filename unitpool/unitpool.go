// Package unitpool lets callers that compile many x86emit.Unit values
// concurrently (each Unit is single-threaded, but a driver compiling one
// function per goroutine needs somewhere shared and safe to stash finished
// ones) share a lookup keyed by an arbitrary unit ID. It adapts the memory
// half of a wasm engine's compiled-code cache (addCodesToMemory/
// getCodesFromMemory/deleteCodes, keyed there by module ID) to this
// repository's domain: the persistent-cache half of that design (an
// external on-disk cache with its own serialization format) has no
// counterpart here, since a Unit's value is only meaningful within the
// process that built it and there is nothing byte-stable to serialize.
package unitpool

import (
	"sync"

	"github.com/wazerojit/x86emit"
)

// Pool caches compiled Units by an ID the caller controls, such as a
// function index or symbol name. A goroutine that races another to build
// the same ID returns the other's result and discards its own.
type Pool struct {
	mu    sync.RWMutex
	units map[uint64]*x86emit.Unit
}

// New returns an empty Pool.
func New() *Pool {
	return &Pool{units: make(map[uint64]*x86emit.Unit)}
}

// Get returns the Unit previously stored under id, if any.
func (p *Pool) Get(id uint64) (*x86emit.Unit, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	u, ok := p.units[id]
	return u, ok
}

// GetOrCompile returns the Unit already stored under id, or calls compile
// to build one, stores it, and returns it. If two goroutines call
// GetOrCompile for the same id concurrently, the loser's compiled Unit is
// discarded in favor of whichever finished first.
func (p *Pool) GetOrCompile(id uint64, compile func() *x86emit.Unit) *x86emit.Unit {
	if u, ok := p.Get(id); ok {
		return u
	}

	u := compile()

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.units[id]; ok {
		return existing
	}
	p.units[id] = u
	return u
}

// Delete drops the Unit stored under id, if any.
func (p *Pool) Delete(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.units, id)
}

// Len reports how many Units are currently cached.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.units)
}
