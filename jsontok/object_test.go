package jsontok

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectSetPreservesFirstSeenOrder(t *testing.T) {
	o := NewObject()
	o.Set("b", 1.0)
	o.Set("a", 2.0)
	o.Set("b", 3.0)

	assert.Equal(t, []string{"b", "a"}, o.Keys())
	v, ok := o.Get("b")
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestObjectGetMissingKey(t *testing.T) {
	o := NewObject()
	_, ok := o.Get("missing")
	assert.False(t, ok)
}

func TestObjectToMapFlattensNestedObject(t *testing.T) {
	inner := NewObject()
	inner.Set("name", "ann")
	outer := NewObject()
	outer.Set("author", inner)
	outer.Set("title", "hi")

	flat := outer.ToMap()
	assert.Equal(t, map[string]any{
		"title":  "hi",
		"author": map[string]any{"name": "ann"},
	}, flat)
}

func TestObjectToMapFlattensObjectsInsideArrays(t *testing.T) {
	item := NewObject()
	item.Set("id", 1.0)
	o := NewObject()
	o.Set("items", []any{item, "plain"})

	flat := o.ToMap()
	assert.Equal(t, map[string]any{
		"items": []any{map[string]any{"id": 1.0}, "plain"},
	}, flat)
}

func TestObjectMarshalJSONRoundTrips(t *testing.T) {
	o := NewObject()
	o.Set("title", "hi")
	o.Set("count", 2.0)

	raw, err := json.Marshal(o)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, map[string]any{"title": "hi", "count": 2.0}, decoded)
}

func TestObjectMarshalJSONNested(t *testing.T) {
	inner := NewObject()
	inner.Set("x", 1.0)
	outer := NewObject()
	outer.Set("inner", inner)

	raw, err := json.Marshal(outer)
	require.NoError(t, err)
	assert.JSONEq(t, `{"inner":{"x":1}}`, string(raw))
}
