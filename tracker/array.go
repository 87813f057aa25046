package tracker

import "strconv"

// Array is a tracked JSON array. Mutations are limited to the methods named
// in the spec this tracker implements: index-set, push, pop, and splice.
// Other bulk operations (sort, reverse, fill) are intentionally unsupported.
type Array struct {
	buf      *Buffer
	strategy Strategy
	path     string

	items []any
}

// Path returns this array's JSON Pointer, fixed at wrap time.
func (a *Array) Path() string { return a.path }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.items) }

// Get returns the (possibly still-wrapped) value at index i.
func (a *Array) Get(i int) (any, bool) {
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

// Push appends one or more values, each emitting "add" at the array's
// trailing "-" pointer.
func (a *Array) Push(values ...any) {
	for _, v := range values {
		idx := len(a.items)
		wrapped := wrapValue(v, joinPath(a.path, strconv.Itoa(idx)), a.buf, a.strategy)
		a.items = append(a.items, wrapped)
		a.buf.record(Operation{Op: "add", Path: a.path + "/-", Value: exportValue(wrapped)})
	}
}

// Pop removes and returns the last element, emitting "remove". ok is false
// on an empty array.
func (a *Array) Pop() (value any, ok bool) {
	if len(a.items) == 0 {
		return nil, false
	}
	idx := len(a.items) - 1
	v := a.items[idx]
	a.items = a.items[:idx]
	a.buf.record(Operation{Op: "remove", Path: joinPath(a.path, strconv.Itoa(idx))})
	return exportValue(v), true
}

// SetIndex overwrites the element at i, or appends if i equals the current
// length. Classification (replace vs. append vs. suppressed) follows the
// same rule as Object.Set.
func (a *Array) SetIndex(i int, value any) {
	if i == len(a.items) {
		a.Push(value)
		return
	}
	if i < 0 || i > len(a.items) {
		panic("tracker: array index out of range")
	}
	path := joinPath(a.path, strconv.Itoa(i))
	old := a.items[i]
	wrapped := wrapValue(value, path, a.buf, a.strategy)

	if a.strategy == Efficient {
		if delta, ok := stringAppendDelta(old, wrapped); ok {
			if delta != "" {
				a.buf.record(Operation{Op: "append", Path: path, Value: delta})
			}
			a.items[i] = wrapped
			return
		}
	}
	if valuesEqual(old, wrapped) {
		return
	}
	a.buf.record(Operation{Op: "replace", Path: path, Value: exportValue(wrapped)})
	a.items[i] = wrapped
}

// Splice removes deleteCount elements starting at start and inserts insert
// in their place, returning the removed (unwrapped) values. Removals are
// emitted from the highest index down so each recorded path is still valid
// against the document as it existed before any removal in this call; the
// insertions that follow are emitted in ascending order, each one assuming
// the previous insert has already taken effect — together they replay
// correctly against a plain JSON Patch applier that processes operations in
// order.
func (a *Array) Splice(start, deleteCount int, insert ...any) []any {
	if start < 0 {
		start = 0
	}
	if start > len(a.items) {
		start = len(a.items)
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if start+deleteCount > len(a.items) {
		deleteCount = len(a.items) - start
	}

	removed := make([]any, deleteCount)
	copy(removed, a.items[start:start+deleteCount])
	for i := deleteCount - 1; i >= 0; i-- {
		a.buf.record(Operation{Op: "remove", Path: joinPath(a.path, strconv.Itoa(start+i))})
	}

	tail := append([]any{}, a.items[start+deleteCount:]...)
	a.items = append(a.items[:start], tail...)

	for i, v := range insert {
		idx := start + i
		wrapped := wrapValue(v, joinPath(a.path, strconv.Itoa(idx)), a.buf, a.strategy)
		a.items = append(a.items, nil)
		copy(a.items[idx+1:], a.items[idx:])
		a.items[idx] = wrapped
		a.buf.record(Operation{Op: "add", Path: joinPath(a.path, strconv.Itoa(idx)), Value: exportValue(wrapped)})
	}

	a.reindexFrom(start + len(insert))

	exported := make([]any, len(removed))
	for i, v := range removed {
		exported[i] = exportValue(v)
	}
	return exported
}

// reindexFrom fixes the Path of every wrapped descendant from index start
// onward after a splice has shifted them to new positions. A container's
// path is otherwise fixed at wrap time; this is the mechanical exception
// insertion/removal requires, not a user-visible move.
func (a *Array) reindexFrom(start int) {
	for i := start; i < len(a.items); i++ {
		rePath(a.items[i], joinPath(a.path, strconv.Itoa(i)))
	}
}

func rePath(v any, newPath string) {
	switch val := v.(type) {
	case *Object:
		val.path = newPath
		for k, cv := range val.values {
			rePath(cv, joinPath(newPath, escapeToken(k)))
		}
	case *Array:
		val.path = newPath
		for i, cv := range val.items {
			rePath(cv, joinPath(newPath, strconv.Itoa(i)))
		}
	}
}
