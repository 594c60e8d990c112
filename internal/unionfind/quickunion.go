package unionfind

// QuickUnion links roots without regard to tree size. Trees can degenerate
// into chains, so both Find and Union cost O(height), up to O(N).
type QuickUnion struct {
	forest
}

// NewQuickUnion creates a quick-union engine with n singleton components.
func NewQuickUnion(n int) (*QuickUnion, error) {
	f, err := newForest(n)
	if err != nil {
		return nil, err
	}
	return &QuickUnion{forest: f}, nil
}

func (uf *QuickUnion) root(site int) int {
	for site != uf.parent[site] {
		site = uf.parent[site]
	}
	return site
}

// Find returns the root of site's tree.
func (uf *QuickUnion) Find(site int) (int, error) {
	if err := uf.validate(site); err != nil {
		return 0, err
	}
	return uf.root(site), nil
}

// Connected reports whether p and q share a root.
func (uf *QuickUnion) Connected(p, q int) (bool, error) {
	if err := uf.validatePair(p, q); err != nil {
		return false, err
	}
	return uf.root(p) == uf.root(q), nil
}

// Union attaches the root of p under the root of q.
func (uf *QuickUnion) Union(p, q int) error {
	if err := uf.validatePair(p, q); err != nil {
		return err
	}
	pRoot, qRoot := uf.root(p), uf.root(q)
	if pRoot == qRoot {
		return nil
	}
	uf.parent[pRoot] = qRoot
	uf.count--
	return nil
}
