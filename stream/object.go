package stream

import "github.com/streamkit-dev/streamjson/jsontok"

// ObjectNode streams a JSON object whose field set and declaration order are
// fixed by the schema. Children are created eagerly at construction, one per
// declared field, since (unlike array elements) the field count is known up
// front.
//
// The finality rule (spec §4.2) is what makes this node the interesting one:
// a field only becomes "final" once a later field has been observed, because
// that's the only signal available mid-stream that the earlier field's text
// has stopped growing.
type ObjectNode struct {
	baseNode

	fields []objectField

	// lastKeyIndex is the declared index most recently forwarded (not
	// completed) an update. -1 means no field has been observed yet.
	lastKeyIndex int
	raw          *jsontok.Object

	onUpdate []func(raw any)
}

type objectField struct {
	name      string
	node      Node
	seen      bool
	completed bool
}

// NewObjectNode creates an idle object node with one child per declared
// field, in declaration order. names and factories must be the same length.
func NewObjectNode(names []string, factories []func() Node) *ObjectNode {
	fields := make([]objectField, len(names))
	for i, name := range names {
		fields[i] = objectField{name: name, node: factories[i]()}
	}
	return &ObjectNode{fields: fields, lastKeyIndex: -1}
}

// Fields returns the child nodes in declaration order.
func (n *ObjectNode) Fields() []Node {
	nodes := make([]Node, len(n.fields))
	for i, f := range n.fields {
		nodes[i] = f.node
	}
	return nodes
}

// Field returns the child node declared under name, if any.
func (n *ObjectNode) Field(name string) (Node, bool) {
	for _, f := range n.fields {
		if f.name == name {
			return f.node, true
		}
	}
	return nil, false
}

// OnUpdate registers a callback fired with the object's raw (partial) value
// every time update observes a new partial object.
func (n *ObjectNode) OnUpdate(cb func(raw any)) {
	n.onUpdate = append(n.onUpdate, cb)
}

// RawValue returns a plain map snapshot of every field that has been
// completed so far. Fields never observed are absent rather than zero-valued,
// matching the "never fires complete" rule for unobserved fields.
func (n *ObjectNode) RawValue() any {
	out := make(map[string]any, len(n.fields))
	for _, f := range n.fields {
		if f.completed {
			out[f.name] = finalValueOf(f.node)
		}
	}
	return out
}

func (n *ObjectNode) update(v any) error {
	n.fireStart()
	if v == nil {
		return nil
	}
	obj, ok := v.(*jsontok.Object)
	if !ok {
		panic("stream: ObjectNode.update received a non-object, non-nil value")
	}
	n.raw = obj

	maxIdx := -1
	for i, f := range n.fields {
		if _, present := obj.Get(f.name); !present {
			continue
		}
		if i > maxIdx {
			maxIdx = i
		}
		if !f.seen {
			n.fields[i].seen = true
			if i < n.lastKeyIndex {
				return &OutOfOrderKeyError{Key: f.name, Index: i, LastSeenIndex: n.lastKeyIndex}
			}
		}
	}
	if maxIdx == -1 {
		n.fireUpdate(obj)
		return nil
	}

	for i := 0; i < maxIdx; i++ {
		f := &n.fields[i]
		if f.completed {
			continue
		}
		val, present := obj.Get(f.name)
		if !present {
			continue
		}
		if err := f.node.update(val); err != nil {
			return err
		}
		if err := f.node.complete(); err != nil {
			return err
		}
		f.completed = true
	}

	current := &n.fields[maxIdx]
	val, _ := obj.Get(current.name)
	if err := current.node.update(val); err != nil {
		return err
	}
	n.lastKeyIndex = maxIdx

	n.fireUpdate(obj)
	return nil
}

func (n *ObjectNode) fireUpdate(raw *jsontok.Object) {
	for _, cb := range n.onUpdate {
		cb(raw)
	}
	n.fireEvent(Event{Type: EventUpdate, Value: raw})
}

func (n *ObjectNode) complete() error {
	if n.completed {
		return nil
	}
	if n.lastKeyIndex >= 0 {
		f := &n.fields[n.lastKeyIndex]
		if !f.completed {
			if err := f.node.complete(); err != nil {
				return err
			}
			f.completed = true
		}
	}
	n.fireComplete(n.RawValue())
	return nil
}
