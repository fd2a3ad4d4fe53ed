package runtime

import (
	"errors"
	"fmt"
	"sync"
)

// ErrScopeExhausted is returned when a frame or event scope runs out of its
// cell budget. It is the only hard error the draw and event phases produce:
// the host aborts the current frame or dispatch and retries next iteration.
var ErrScopeExhausted = errors.New("runtime: scope budget exhausted")

// DefaultScopeBudget is the per-scope cell budget used when none is given.
// It comfortably fits several full redraws of a large terminal while still
// catching runaway layouts (for example a flex child drawn unconstrained).
const DefaultScopeBudget = 1 << 22

// Scope is a bulk allocation region created fresh for one frame or one
// event dispatch and released as a whole after the output is consumed.
// Surfaces, cell grids, and command payloads are carved out of it; nothing
// allocated from a scope may be retained past Release.
type Scope struct {
	budget   int
	used     int
	released bool

	surfaces []*Surface
	slabs    [][]Cell
}

var slabPool = sync.Pool{
	New: func() any { return make([]Cell, 0, 4096) },
}

// NewScope creates a scope with the default cell budget.
func NewScope() *Scope {
	return NewScopeWithBudget(DefaultScopeBudget)
}

// NewScopeWithBudget creates a scope allowed to allocate at most budget
// cells. A budget of zero or less means unlimited.
func NewScopeWithBudget(budget int) *Scope {
	return &Scope{budget: budget}
}

// Used returns the number of cells allocated so far.
func (s *Scope) Used() int {
	return s.used
}

// allocCells carves a zeroed cell slab out of the scope.
func (s *Scope) allocCells(n int) ([]Cell, error) {
	if s.released {
		panic("runtime: allocation from released scope")
	}
	if s.budget > 0 && s.used+n > s.budget {
		return nil, fmt.Errorf("allocating %d cells with %d of %d used: %w",
			n, s.used, s.budget, ErrScopeExhausted)
	}
	s.used += n

	slab := slabPool.Get().([]Cell)
	if cap(slab) < n {
		slab = make([]Cell, n)
	} else {
		slab = slab[:n]
		clear(slab)
	}
	s.slabs = append(s.slabs, slab)
	return slab, nil
}

// bytesPerCell converts byte payloads into cell-equivalents for budget
// accounting: a Cell is a rune plus a style word.
const bytesPerCell = 8

// CopyBytes copies transient bytes so a command payload survives until the
// scope is released. Source buffers handed to widgets (paste content, cell
// rows) may be reused by the backend after dispatch returns. The copy is
// charged against the cell budget in cell-equivalents, so runaway payloads
// hit the same exhaustion error as runaway surfaces.
func (s *Scope) CopyBytes(b []byte) ([]byte, error) {
	if s.released {
		panic("runtime: allocation from released scope")
	}
	cells := (len(b) + bytesPerCell - 1) / bytesPerCell
	if s.budget > 0 && s.used+cells > s.budget {
		return nil, fmt.Errorf("copying %d bytes with %d of %d cells used: %w",
			len(b), s.used, s.budget, ErrScopeExhausted)
	}
	s.used += cells
	return append([]byte(nil), b...), nil
}

// Release returns the scope's memory for reuse. Every Surface produced
// from the scope is invalidated; using one afterwards panics.
func (s *Scope) Release() {
	if s.released {
		return
	}
	s.released = true

	for _, surf := range s.surfaces {
		surf.invalidate()
	}
	s.surfaces = nil

	for _, slab := range s.slabs {
		slabPool.Put(slab[:0])
	}
	s.slabs = nil
	s.used = 0
}
