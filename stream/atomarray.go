package stream

// AtomArrayNode streams an array whose elements are validated as a whole on
// emission rather than streamed character-wise (spec §4.1, array of any
// non-string, non-object leaf; spec §4.2 "Array of atoms").
type AtomArrayNode struct {
	baseNode

	newChild func() Node
	items    []Node

	onAppend []func(child Node, index int)
}

// NewAtomArrayNode creates an idle atom-array node.
func NewAtomArrayNode(newChild func() Node) *AtomArrayNode {
	return &AtomArrayNode{newChild: newChild}
}

// Items returns the children created so far, in index order.
func (n *AtomArrayNode) Items() []Node { return n.items }

// Values returns the completed value of every item created so far (the
// last item's value is whatever it held most recently if still open).
func (n *AtomArrayNode) Values() []any {
	values := make([]any, len(n.items))
	for i, child := range n.items {
		if atom, ok := child.(*AtomNode); ok && !atom.Completed() {
			values[i], _ = atom.Raw()
			continue
		}
		values[i] = finalValueOf(child)
	}
	return values
}

// OnAppend registers a callback fired once per new child, in strictly
// increasing index order.
func (n *AtomArrayNode) OnAppend(cb func(child Node, index int)) {
	n.onAppend = append(n.onAppend, cb)
}

func (n *AtomArrayNode) update(v any) error {
	n.fireStart()
	items, err := growArrayItems(n.items, v, n.newChild, n.fireAppend)
	n.items = items
	return err
}

func (n *AtomArrayNode) fireAppend(child Node, index int) {
	for _, cb := range n.onAppend {
		cb(child, index)
	}
	n.fireEvent(Event{Type: EventAppend, Value: [2]any{child, index}})
}

func (n *AtomArrayNode) complete() error {
	if n.completed {
		return nil
	}
	if len(n.items) > 0 {
		if err := n.items[len(n.items)-1].complete(); err != nil {
			return err
		}
	}
	n.fireComplete(n.Values())
	return nil
}
