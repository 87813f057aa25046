package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffDetectsObjectAddAndReplace(t *testing.T) {
	a := map[string]any{"x": 1.0, "y": 2.0}
	b := map[string]any{"x": 1.0, "y": 3.0, "z": 4.0}

	ops := Diff(a, b)

	assert.Contains(t, ops, Operation{Op: "replace", Path: "/y", Value: 3.0})
	assert.Contains(t, ops, Operation{Op: "add", Path: "/z", Value: 4.0})
	assert.Len(t, ops, 2)
}

func TestDiffDetectsRemovedKey(t *testing.T) {
	a := map[string]any{"x": 1.0}
	b := map[string]any{}

	ops := Diff(a, b)
	assert.Equal(t, []Operation{{Op: "remove", Path: "/x"}}, ops)
}

func TestDiffNestedObjects(t *testing.T) {
	a := map[string]any{"author": map[string]any{"name": "ann"}}
	b := map[string]any{"author": map[string]any{"name": "anna"}}

	ops := Diff(a, b)
	assert.Equal(t, []Operation{{Op: "replace", Path: "/author/name", Value: "anna"}}, ops)
}

func TestDiffArrayGrowthAppendsAtTail(t *testing.T) {
	a := []any{"x"}
	b := []any{"x", "y"}

	ops := Diff(a, b)
	assert.Equal(t, []Operation{{Op: "add", Path: "/-", Value: "y"}}, ops)
}

func TestDiffArrayShrinkRemovesFromTail(t *testing.T) {
	a := []any{"x", "y"}
	b := []any{"x"}

	ops := Diff(a, b)
	assert.Equal(t, []Operation{{Op: "remove", Path: "/1"}}, ops)
}

func TestDiffApplyRoundTrip(t *testing.T) {
	a := map[string]any{"title": "old", "tags": []any{"a", "b"}}
	b := map[string]any{"title": "new", "tags": []any{"a", "b", "c"}}

	ops := Diff(a, b)
	result, err := Apply(a, ops)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(b, result)
}
