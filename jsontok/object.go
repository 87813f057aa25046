package jsontok

import "encoding/json"

// Object is an ordered JSON object: it remembers the sequence in which keys
// were first set, unlike a plain Go map. The tokeniser hands one of these to
// the stream package for every partial or complete object observation, so
// that object-node finality (spec's declared-field-order rule) never depends
// on Go's randomized map iteration.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set records or overwrites a key's value, appending it to the key order the
// first time it's seen.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored for key and whether it's present.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in first-set order.
func (o *Object) Keys() []string {
	return o.keys
}

// ToMap flattens the object into a plain map, discarding order. Nested
// *Object values are flattened recursively; nested slices are walked
// recursively too, so objects inside arrays are also flattened. Used by
// MarshalJSON, and in turn by the parser's debug-dump snapshot.
func (o *Object) ToMap() map[string]any {
	out := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		out[k] = flattenValue(o.values[k])
	}
	return out
}

// MarshalJSON lets an *Object participate in ordinary JSON/YAML marshaling
// (e.g. for debug dumps); order is not preserved in the output.
func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.ToMap())
}

func flattenValue(v any) any {
	switch val := v.(type) {
	case *Object:
		return val.ToMap()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = flattenValue(item)
		}
		return out
	default:
		return v
	}
}
