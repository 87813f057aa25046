package tracker

// Object is a tracked JSON object. Every mutating method records the
// corresponding operation(s) on its Buffer before applying the change
// in-memory.
type Object struct {
	buf      *Buffer
	strategy Strategy
	path     string

	values map[string]any
}

// Path returns this object's JSON Pointer, fixed at wrap time.
func (o *Object) Path() string { return o.path }

// Get returns the (possibly still-wrapped) value stored at key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the object's keys in no particular order; JSON objects are
// unordered and paths name each field explicitly, so tracking never needs a
// declared order the way schema-bound streaming does.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.values))
	for k := range o.values {
		keys = append(keys, k)
	}
	return keys
}

// Set assigns key to value, wrapping value if it's a container. A
// previously-absent key emits "add"; an existing key emits "replace", or
// under the Efficient strategy "append" when both old and new values are
// strings and new is old with a non-empty suffix. Setting a key to its
// current value emits nothing.
func (o *Object) Set(key string, value any) {
	path := joinPath(o.path, escapeToken(key))
	old, existed := o.values[key]
	wrapped := wrapValue(value, path, o.buf, o.strategy)

	if existed {
		if o.strategy == Efficient {
			if delta, ok := stringAppendDelta(old, wrapped); ok {
				if delta != "" {
					o.buf.record(Operation{Op: "append", Path: path, Value: delta})
				}
				o.values[key] = wrapped
				return
			}
		}
		if valuesEqual(old, wrapped) {
			return
		}
		o.buf.record(Operation{Op: "replace", Path: path, Value: exportValue(wrapped)})
	} else {
		o.buf.record(Operation{Op: "add", Path: path, Value: exportValue(wrapped)})
	}
	o.values[key] = wrapped
}

// Delete removes key, if present, emitting "remove".
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	path := joinPath(o.path, escapeToken(key))
	delete(o.values, key)
	o.buf.record(Operation{Op: "remove", Path: path})
}
