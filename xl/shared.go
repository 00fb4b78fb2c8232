package xl

// SharedTable is an append-only collection that assigns every distinct value
// a stable, zero-based index in allocation order. It backs the shared string
// table and every stylesheet list (styles, fonts, fills, borders, custom
// number formats).
//
// A table can be drained exactly once. Draining hands the entries to the
// caller one by one and releases them as it goes, so large string tables do
// not stay alive while the shared strings part is written.
type SharedTable[T comparable] struct {
	items   []T
	index   map[T]int
	drained bool
}

// NewSharedTable returns an empty table.
func NewSharedTable[T comparable]() *SharedTable[T] {
	return &SharedTable[T]{index: map[T]int{}}
}

// Allocate returns the index of v, appending it when v has not been seen yet.
func (t *SharedTable[T]) Allocate(v T) int {
	if i, ok := t.index[v]; ok {
		return i
	}
	i := len(t.items)
	t.items = append(t.items, v)
	t.index[v] = i
	return i
}

// Index returns the index previously allocated for v.
func (t *SharedTable[T]) Index(v T) (int, bool) {
	i, ok := t.index[v]
	return i, ok
}

// Len returns the number of live entries. It is zero once the table is drained.
func (t *SharedTable[T]) Len() int {
	if t.drained {
		return 0
	}
	return len(t.items)
}

// Drained reports whether Drain has been called.
func (t *SharedTable[T]) Drained() bool {
	return t.drained
}

// All calls fn for each entry in allocation order without consuming it.
func (t *SharedTable[T]) All(fn func(i int, v T) error) error {
	if t.drained {
		return ErrDrained
	}
	for i, v := range t.items {
		if err := fn(i, v); err != nil {
			return err
		}
	}
	return nil
}

// Drain calls fn for each entry in allocation order, removing every entry
// from the table once fn has seen it. A second call fails with ErrDrained.
// When fn fails, the remaining entries are discarded.
func (t *SharedTable[T]) Drain(fn func(i int, v T) error) error {
	if t.drained {
		return ErrDrained
	}
	t.drained = true
	items := t.items
	t.items = nil
	defer func() {
		clear(t.index)
	}()

	var zero T
	for i := range items {
		v := items[i]
		items[i] = zero
		delete(t.index, v)
		if err := fn(i, v); err != nil {
			return err
		}
	}
	return nil
}
