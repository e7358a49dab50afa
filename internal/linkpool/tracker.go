package linkpool

// LinkTracker maintains a buffer-scoped mapping of link id to the number of
// cells referencing it, holding exactly one pool refcount per distinct id
// observed and releasing all of them on Clear or Drop.
type LinkTracker struct {
	pool  *Pool
	cells map[uint32]int
}

// NewLinkTracker returns a tracker bound to pool.
func NewLinkTracker(pool *Pool) *LinkTracker {
	return &LinkTracker{pool: pool, cells: make(map[uint32]int)}
}

// Observe records a new cell referencing id, taking a pool refcount the
// first time id is seen.
func (t *LinkTracker) Observe(id uint32) error {
	if id == NoLink {
		return nil
	}
	if t.cells[id] == 0 {
		if err := t.pool.Incref(id); err != nil {
			return err
		}
	}
	t.cells[id]++
	return nil
}

// Release records one fewer cell referencing id, dropping the tracker's
// pool refcount once the last cell referencing it is gone.
func (t *LinkTracker) Release(id uint32) error {
	if id == NoLink {
		return nil
	}
	n, ok := t.cells[id]
	if !ok || n == 0 {
		return nil
	}
	n--
	if n == 0 {
		delete(t.cells, id)
		return t.pool.Decref(id)
	}
	t.cells[id] = n
	return nil
}

// CellCount reports how many cells currently reference id.
func (t *LinkTracker) CellCount(id uint32) int {
	return t.cells[id]
}

// Clear releases every tracked refcount and resets the tracker to empty.
func (t *LinkTracker) Clear() error {
	for id := range t.cells {
		if err := t.pool.Decref(id); err != nil {
			return err
		}
	}
	t.cells = make(map[uint32]int)
	return nil
}
