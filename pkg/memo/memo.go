// Package memo provides the memoization primitive used to skip
// recomputation of pure functions between passes: a last-value cell with
// caller-supplied key equality, and a table of cells that discards entries
// no pass has touched recently.
package memo

// Cell caches the most recent result of a pure computation together with
// the key it was computed from. A cell holds at most one entry: a new key
// overwrites the old result.
type Cell[K, V any] struct {
	eq    func(K, K) bool
	valid bool
	key   K
	value V
}

// NewCell returns an empty cell using eq to compare keys.
func NewCell[K, V any](eq func(K, K) bool) *Cell[K, V] {
	return &Cell[K, V]{eq: eq}
}

// Get returns the cached value if key equals the stored key; otherwise it
// runs compute, stores the result under key, and returns it. compute must
// be pure with respect to key.
func (c *Cell[K, V]) Get(key K, compute func() V) V {
	if c.valid && c.eq(c.key, key) {
		return c.value
	}
	c.key = key
	c.value = compute()
	c.valid = true
	return c.value
}

// Invalidate drops the cached entry, forcing the next Get to recompute.
func (c *Cell[K, V]) Invalidate() {
	c.valid = false
	var zeroK K
	var zeroV V
	c.key = zeroK
	c.value = zeroV
}

// Table owns one Cell per identity. Cells are retained for two passes:
// one touched during pass N stays available through pass N+1 and is
// discarded at the start of pass N+2 if still untouched. This keeps
// recently-useful results warm without pinning entries for identities
// that left the input.
type Table[ID comparable, K, V any] struct {
	eq   func(K, K) bool
	prev map[ID]*Cell[K, V]
	curr map[ID]*Cell[K, V]
}

// NewTable returns an empty table whose cells compare keys with eq.
func NewTable[ID comparable, K, V any](eq func(K, K) bool) *Table[ID, K, V] {
	return &Table[ID, K, V]{
		eq:   eq,
		prev: make(map[ID]*Cell[K, V]),
		curr: make(map[ID]*Cell[K, V]),
	}
}

// BeginPass rotates the generations: everything untouched since the
// previous BeginPass becomes eligible for discard.
func (t *Table[ID, K, V]) BeginPass() {
	t.prev = t.curr
	t.curr = make(map[ID]*Cell[K, V], len(t.prev))
}

// Cell returns the cell for id, promoting it from the previous generation
// or creating a fresh one.
func (t *Table[ID, K, V]) Cell(id ID) *Cell[K, V] {
	if c, ok := t.curr[id]; ok {
		return c
	}
	if c, ok := t.prev[id]; ok {
		t.curr[id] = c
		return c
	}
	c := NewCell[K, V](t.eq)
	t.curr[id] = c
	return c
}

// Len reports how many cells the current generation holds.
func (t *Table[ID, K, V]) Len() int {
	return len(t.curr)
}
