// Package tracker wraps an in-memory document so mutations made through its
// API are translated into JSON Patch operations (plus a non-standard
// "append" extension for prefix-extending string writes) against the
// document's JSON Pointer paths.
//
// Go has no transparent object proxies, so unlike a host language with
// mutable references into arbitrary maps/slices, tracked containers here are
// dedicated types (*Object, *Array) with an explicit mutating API (Set,
// Delete, Push, Pop, SetIndex, Splice) rather than wrappers around native
// map[string]any / []any values a caller could still mutate directly and
// bypass tracking.
package tracker

import (
	"os"
	"strconv"

	"sigs.k8s.io/yaml"
)

// Strategy selects how a scalar overwrite is classified.
type Strategy int

const (
	// Efficient recognizes prefix-extending string writes and emits an
	// "append" operation instead of a full "replace".
	Efficient Strategy = iota
	// Standard always emits "replace" for an overwrite, regardless of
	// whether the new value extends the old one.
	Standard
)

type config struct {
	strategy  Strategy
	debugPath string
}

// Option configures Track.
type Option func(*config)

// WithStrategy selects the Standard or Efficient operation-synthesis
// strategy. The default is Efficient.
func WithStrategy(s Strategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithDebugDump writes a YAML snapshot of every flushed operation batch to
// path, mirroring the host's debug.yaml convention.
func WithDebugDump(path string) Option {
	return func(c *config) { c.debugPath = path }
}

// Track interposes root's containers and returns the wrapped document
// alongside the buffer that will accumulate operations for every subsequent
// mutation made through the wrapped API. Pre-existing nested containers are
// wrapped eagerly; containers assigned later are wrapped lazily by Set/Push/
// SetIndex/Splice. Scalars are never wrapped.
func Track(root any, opts ...Option) (any, *Buffer) {
	cfg := &config{strategy: Efficient}
	for _, opt := range opts {
		opt(cfg)
	}
	buf := &Buffer{debugPath: cfg.debugPath}
	return wrapValue(root, "", buf, cfg.strategy), buf
}

func wrapValue(v any, path string, buf *Buffer, strategy Strategy) any {
	switch val := v.(type) {
	case map[string]any:
		obj := &Object{buf: buf, strategy: strategy, path: path, values: make(map[string]any, len(val))}
		for k, cv := range val {
			obj.values[k] = wrapValue(cv, joinPath(path, escapeToken(k)), buf, strategy)
		}
		return obj
	case []any:
		arr := &Array{buf: buf, strategy: strategy, path: path, items: make([]any, len(val))}
		for i, cv := range val {
			arr.items[i] = wrapValue(cv, joinPath(path, strconv.Itoa(i)), buf, strategy)
		}
		return arr
	default:
		return v
	}
}

// exportValue strips tracker wrapping for embedding a value in an
// Operation's value field, or for returning values to the caller.
func exportValue(v any) any {
	switch val := v.(type) {
	case *Object:
		out := make(map[string]any, len(val.values))
		for k, cv := range val.values {
			out[k] = exportValue(cv)
		}
		return out
	case *Array:
		out := make([]any, len(val.items))
		for i, cv := range val.items {
			out[i] = exportValue(cv)
		}
		return out
	default:
		return v
	}
}

// stringAppendDelta reports whether new is old with a non-empty suffix
// appended; both must be unwrapped strings.
func stringAppendDelta(oldVal, newVal any) (string, bool) {
	oldStr, ok := oldVal.(string)
	if !ok {
		return "", false
	}
	newStr, ok := newVal.(string)
	if !ok {
		return "", false
	}
	if len(newStr) <= len(oldStr) || newStr[:len(oldStr)] != oldStr {
		return "", false
	}
	return newStr[len(oldStr):], true
}

func valuesEqual(a, b any) bool {
	switch a.(type) {
	case *Object, *Array:
		return false
	}
	switch b.(type) {
	case *Object, *Array:
		return false
	}
	return a == b
}

func (b *Buffer) dumpDebug(ops []Operation) {
	if b.debugPath == "" || len(ops) == 0 {
		return
	}
	if raw, err := yaml.Marshal(ops); err == nil {
		_ = os.WriteFile(b.debugPath, raw, 0644)
	}
}
