/*package mesh contains the read-only interfaces that a mesh provider must
implement to have its cell volumes exported, along with an array-backed
in-memory provider. Adding support for a new mesh engine requires writing an
adapter that implements the Domain and Thread interfaces; the exporter never
sees the engine's internals.
*/
package mesh

import (
	"fmt"
	"math"
	"strings"
)

// Cell indexes a cell within a Thread, in the thread's iteration order.
// Cells have no identity beyond their thread and index.
type Cell int

// Thread is a named group of cells sharing mesh topology/material. All
// methods are pure queries.
type Thread interface {
	// Name returns the thread's name. Names are non-empty, contain no
	// whitespace, and are unique within a domain.
	Name() string
	// Cells returns the number of cells in the thread.
	Cells() int
	// Volume returns the volume of cell c. Volumes are non-negative and
	// finite.
	Volume(c Cell) float64
	// Volumes resizes buf to Cells() and fills it with every cell volume in
	// iteration order. The (potentially cap-expanded) buffer is returned so
	// callers can avoid heap allocations across threads.
	Volumes(buf []float64) []float64
}

// Domain is an ownership scope containing an ordered collection of Threads.
// The provider owns all lifetimes; callers must not hold a Domain beyond the
// duration of one export pass. Iteration order is provider-defined, but a
// given Domain value must iterate identically every time it is walked.
type Domain interface {
	// Threads returns the number of threads in the domain.
	Threads() int
	// Thread returns thread i.
	Thread(i int) Thread
}

// Type assertions
var (
	_ Thread = &MemThread{}
	_ Domain = &MemDomain{}
)

// MemThread implements the Thread interface on top of a plain volume array.
// See the Thread interface for method documentation.
type MemThread struct {
	name string
	vol  []float64
}

// NewMemThread creates a thread with the given name holding the given cell
// volumes. The array is retained, not copied. Returns an error if the name is
// empty or contains whitespace, or if any volume is negative or non-finite.
func NewMemThread(name string, vol []float64) (*MemThread, error) {
	if name == "" {
		return nil, fmt.Errorf("Thread names cannot be empty.")
	} else if strings.ContainsAny(name, " \t\n") {
		return nil, fmt.Errorf("The thread name '%s' contains whitespace.", name)
	}

	for i, v := range vol {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("Cell %d in thread '%s' has the non-finite volume %g.", i, name, v)
		} else if v < 0 {
			return nil, fmt.Errorf("Cell %d in thread '%s' has the negative volume %g.", i, name, v)
		}
	}

	return &MemThread{name, vol}, nil
}

func (t *MemThread) Name() string          { return t.name }
func (t *MemThread) Cells() int            { return len(t.vol) }
func (t *MemThread) Volume(c Cell) float64 { return t.vol[c] }

func (t *MemThread) Volumes(buf []float64) []float64 {
	buf = expand(buf, len(t.vol))
	copy(buf, t.vol)
	return buf
}

// MemDomain implements the Domain interface over a fixed set of MemThreads.
// It exists so tests, file readers, and simple adapters don't need to write
// their own Domain implementation. See the Domain interface for method
// documentation.
type MemDomain struct {
	threads []*MemThread
}

// NewMemDomain creates a domain from the given threads. Returns an error if
// two threads share a name.
func NewMemDomain(threads ...*MemThread) (*MemDomain, error) {
	seen := map[string]bool{}
	for _, t := range threads {
		if seen[t.name] {
			return nil, fmt.Errorf("The thread name '%s' is used more than once.", t.name)
		}
		seen[t.name] = true
	}
	return &MemDomain{threads}, nil
}

func (d *MemDomain) Threads() int        { return len(d.threads) }
func (d *MemDomain) Thread(i int) Thread { return d.threads[i] }

// Cells returns the total number of cells across all threads.
func (d *MemDomain) Cells() int {
	n := 0
	for _, t := range d.threads {
		n += len(t.vol)
	}
	return n
}

// expand expands an array to have size n.
func expand(x []float64, n int) []float64 {
	if m := len(x); m < n {
		x = append(x, make([]float64, n-m)...)
	}
	return x[:n]
}
