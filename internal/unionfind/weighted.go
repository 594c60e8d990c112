package unionfind

// SizeWeighted is weighted quick-union by subtree size. The root of the
// smaller tree is attached under the root of the larger one, which keeps
// every tree's height within floor(log2 N) + 1.
//
// With halving enabled (WQUPC), every Find also points each visited node at
// its grandparent, roughly halving the path for later lookups.
type SizeWeighted struct {
	forest
	halving bool
}

// NewWeighted creates a size-weighted engine without path compression.
func NewWeighted(n int) (*SizeWeighted, error) {
	return newSizeWeighted(n, false)
}

// NewWQUPC creates a size-weighted engine with path halving.
func NewWQUPC(n int) (*SizeWeighted, error) {
	return newSizeWeighted(n, true)
}

func newSizeWeighted(n int, halving bool) (*SizeWeighted, error) {
	f, err := newForest(n)
	if err != nil {
		return nil, err
	}
	f.withWeights(1)
	return &SizeWeighted{forest: f, halving: halving}, nil
}

func (uf *SizeWeighted) root(site int) int {
	for site != uf.parent[site] {
		if uf.halving {
			uf.parent[site] = uf.parent[uf.parent[site]]
		}
		site = uf.parent[site]
	}
	return site
}

// Find returns the root of site's tree.
func (uf *SizeWeighted) Find(site int) (int, error) {
	if err := uf.validate(site); err != nil {
		return 0, err
	}
	return uf.root(site), nil
}

// Connected reports whether p and q share a root.
func (uf *SizeWeighted) Connected(p, q int) (bool, error) {
	if err := uf.validatePair(p, q); err != nil {
		return false, err
	}
	return uf.root(p) == uf.root(q), nil
}

// Union merges the smaller tree into the larger. Ties keep q's root.
func (uf *SizeWeighted) Union(p, q int) error {
	if err := uf.validatePair(p, q); err != nil {
		return err
	}
	i, j := uf.root(p), uf.root(q)
	if i == j {
		return nil
	}
	if uf.weight[i] > uf.weight[j] {
		i, j = j, i
	}
	uf.parent[i] = j
	uf.weight[j] += uf.weight[i]
	uf.count--
	return nil
}

// HeightWeighted is weighted quick-union by tree height. The shorter tree
// goes under the taller one and the surviving root only grows when both
// heights were equal.
//
// With compression enabled (HWQUPC), every Find repoints each node on the
// traversed path directly at the root. Heights then become upper bounds,
// which is all the merge rule needs.
type HeightWeighted struct {
	forest
	compress bool
}

// NewWeightedByHeight creates a height-weighted engine without path compression.
func NewWeightedByHeight(n int) (*HeightWeighted, error) {
	return newHeightWeighted(n, false)
}

// NewHWQUPC creates a height-weighted engine with full path compression.
func NewHWQUPC(n int) (*HeightWeighted, error) {
	return newHeightWeighted(n, true)
}

func newHeightWeighted(n int, compress bool) (*HeightWeighted, error) {
	f, err := newForest(n)
	if err != nil {
		return nil, err
	}
	f.withWeights(1)
	return &HeightWeighted{forest: f, compress: compress}, nil
}

func (uf *HeightWeighted) root(site int) int {
	root := site
	for root != uf.parent[root] {
		root = uf.parent[root]
	}
	if uf.compress {
		for site != root {
			next := uf.parent[site]
			uf.parent[site] = root
			site = next
		}
	}
	return root
}

// Find returns the root of site's tree.
func (uf *HeightWeighted) Find(site int) (int, error) {
	if err := uf.validate(site); err != nil {
		return 0, err
	}
	return uf.root(site), nil
}

// Connected reports whether p and q share a root.
func (uf *HeightWeighted) Connected(p, q int) (bool, error) {
	if err := uf.validatePair(p, q); err != nil {
		return false, err
	}
	return uf.root(p) == uf.root(q), nil
}

// Union merges the shorter tree into the taller. Ties keep q's root and
// increase its height by one.
func (uf *HeightWeighted) Union(p, q int) error {
	if err := uf.validatePair(p, q); err != nil {
		return err
	}
	i, j := uf.root(p), uf.root(q)
	if i == j {
		return nil
	}
	switch {
	case uf.weight[i] < uf.weight[j]:
		uf.parent[i] = j
	case uf.weight[i] > uf.weight[j]:
		uf.parent[j] = i
	default:
		uf.parent[i] = j
		uf.weight[j]++
	}
	uf.count--
	return nil
}
