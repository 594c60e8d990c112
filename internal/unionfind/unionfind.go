// Package unionfind implements the disjoint-set (union-find) family of data
// structures over a fixed set of sites numbered 0 through N-1.
//
// All variants share the Engine contract and differ only in how they pick
// roots during a union and whether lookups flatten the traversed path:
//   - QuickFind: constant-time find, linear-time union
//   - QuickUnion: unweighted trees, cost proportional to tree height
//   - SizeWeighted: smaller tree under larger, optional path halving (WQUPC)
//   - HeightWeighted: shorter tree under taller, optional full path compression (HWQUPC)
//
// An engine is owned by a single caller and is not safe for concurrent use.
package unionfind

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidSize is returned when an engine is constructed with N <= 0.
	ErrInvalidSize = errors.New("invalid number of sites")

	// ErrOutOfRange is returned when a site index is outside [0, N).
	ErrOutOfRange = errors.New("site out of range")
)

// Engine is the contract common to every union-find variant.
type Engine interface {
	// Find returns the root of the component containing site.
	Find(site int) (int, error)

	// Connected reports whether p and q are in the same component.
	Connected(p, q int) (bool, error)

	// Union merges the components of p and q. It is a no-op when they
	// already share a root.
	Union(p, q int) error

	// Components returns the number of distinct components.
	Components() int

	// Size returns N, the number of sites.
	Size() int
}

// Forest exposes the parent links of an engine for inspection.
type Forest interface {
	// Parents returns a copy of the parent array; roots are self-parented.
	Parents() []int
}

// forest holds the state shared by all variants. weight is nil for the
// unweighted variants.
type forest struct {
	parent []int
	weight []int
	count  int
}

func newForest(n int) (forest, error) {
	if n <= 0 {
		return forest{}, fmt.Errorf("new engine with %d sites: %w", n, ErrInvalidSize)
	}
	f := forest{
		parent: make([]int, n),
		count:  n,
	}
	for i := range f.parent {
		f.parent[i] = i
	}
	return f, nil
}

// withWeights allocates the weight array with every site set to initial.
func (f *forest) withWeights(initial int) {
	f.weight = make([]int, len(f.parent))
	for i := range f.weight {
		f.weight[i] = initial
	}
}

func (f *forest) validate(site int) error {
	if site < 0 || site >= len(f.parent) {
		return fmt.Errorf("site %d not in [0, %d): %w", site, len(f.parent), ErrOutOfRange)
	}
	return nil
}

func (f *forest) validatePair(p, q int) error {
	if err := f.validate(p); err != nil {
		return err
	}
	return f.validate(q)
}

// Components returns the number of distinct components.
func (f *forest) Components() int {
	return f.count
}

// Size returns the number of sites.
func (f *forest) Size() int {
	return len(f.parent)
}

// Parents returns a copy of the parent array.
func (f *forest) Parents() []int {
	return slices.Clone(f.parent)
}

// Height returns the number of nodes on the longest root-to-leaf path of the
// forest. A forest of singletons has height 1.
func Height(f Forest) int {
	parents := f.Parents()
	depth := make([]int, len(parents))
	height := 0
	for i := range parents {
		height = max(height, depthOf(parents, depth, i))
	}
	return height
}

// depthOf memoizes depths so the whole pass stays linear.
func depthOf(parents, depth []int, i int) int {
	var path []int
	for depth[i] == 0 && parents[i] != i {
		path = append(path, i)
		i = parents[i]
	}
	if depth[i] == 0 {
		depth[i] = 1
	}
	d := depth[i]
	for j := len(path) - 1; j >= 0; j-- {
		d++
		depth[path[j]] = d
	}
	return d
}

// Roots returns the number of self-parented sites in the forest.
func Roots(f Forest) int {
	n := 0
	for i, p := range f.Parents() {
		if i == p {
			n++
		}
	}
	return n
}
