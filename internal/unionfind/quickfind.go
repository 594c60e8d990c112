package unionfind

// QuickFind stores a component id per site. Find is a single array read and
// Union relabels every site of one component, so a union costs O(N).
//
// The component id is always a site belonging to that component whose own id
// is itself, which lets the id array double as a parent array of depth one.
type QuickFind struct {
	forest
}

// NewQuickFind creates a quick-find engine with n singleton components.
func NewQuickFind(n int) (*QuickFind, error) {
	f, err := newForest(n)
	if err != nil {
		return nil, err
	}
	return &QuickFind{forest: f}, nil
}

// Find returns the component id of site.
func (uf *QuickFind) Find(site int) (int, error) {
	if err := uf.validate(site); err != nil {
		return 0, err
	}
	return uf.parent[site], nil
}

// Connected reports whether p and q carry the same component id.
func (uf *QuickFind) Connected(p, q int) (bool, error) {
	if err := uf.validatePair(p, q); err != nil {
		return false, err
	}
	return uf.parent[p] == uf.parent[q], nil
}

// Union relabels every site sharing p's id with q's id.
func (uf *QuickFind) Union(p, q int) error {
	if err := uf.validatePair(p, q); err != nil {
		return err
	}
	pID, qID := uf.parent[p], uf.parent[q]
	if pID == qID {
		return nil
	}
	for i, id := range uf.parent {
		if id == pID {
			uf.parent[i] = qID
		}
	}
	uf.count--
	return nil
}
