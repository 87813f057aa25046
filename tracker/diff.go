package tracker

import "strconv"

// Diff compares two plain documents (the shapes exportValue produces) and
// returns the operations that would transform a into b. It's a convenience
// for producing a one-shot patch without going through Track/mutation
// interception; it does not understand the Efficient "append" strategy since
// there is no prior live value to compare a prefix against, only the two
// final snapshots, so string changes are always emitted as "replace".
func Diff(a, b any) []Operation {
	var ops []Operation
	diffInto(&ops, "", a, b)
	return ops
}

func diffInto(ops *[]Operation, path string, a, b any) {
	aObj, aIsObj := a.(map[string]any)
	bObj, bIsObj := b.(map[string]any)
	if aIsObj && bIsObj {
		diffObjects(ops, path, aObj, bObj)
		return
	}

	aArr, aIsArr := a.([]any)
	bArr, bIsArr := b.([]any)
	if aIsArr && bIsArr {
		diffArrays(ops, path, aArr, bArr)
		return
	}

	if !valuesEqual(a, b) {
		if a == nil {
			*ops = append(*ops, Operation{Op: "add", Path: path, Value: b})
		} else {
			*ops = append(*ops, Operation{Op: "replace", Path: path, Value: b})
		}
	}
}

func diffObjects(ops *[]Operation, path string, a, b map[string]any) {
	for k, av := range a {
		childPath := joinPath(path, escapeToken(k))
		bv, ok := b[k]
		if !ok {
			*ops = append(*ops, Operation{Op: "remove", Path: childPath})
			continue
		}
		diffInto(ops, childPath, av, bv)
	}
	for k, bv := range b {
		if _, ok := a[k]; ok {
			continue
		}
		*ops = append(*ops, Operation{Op: "add", Path: joinPath(path, escapeToken(k)), Value: bv})
	}
}

// diffArrays compares index by index over the shared prefix, then emits
// removals for a's tail or additions for b's tail. It does not attempt to
// detect inserts/deletes in the middle of the array (that's an LCS problem
// this package doesn't solve); a mid-array insertion diffs as a run of
// trailing replaces instead of a single "add".
func diffArrays(ops *[]Operation, path string, a, b []any) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		diffInto(ops, joinPath(path, strconv.Itoa(i)), a[i], b[i])
	}
	for i := len(a) - 1; i >= n; i-- {
		*ops = append(*ops, Operation{Op: "remove", Path: joinPath(path, strconv.Itoa(i))})
	}
	for i := n; i < len(b); i++ {
		*ops = append(*ops, Operation{Op: "add", Path: path + "/-", Value: b[i]})
	}
}
