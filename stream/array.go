package stream

// ArrayNode streams an array whose elements are themselves streaming nodes
// (e.g. String or Object children), created on demand as the tokeniser
// exposes new indices.
type ArrayNode struct {
	baseNode

	newChild func() Node
	items    []Node

	onAppend []func(child Node, index int)
}

// NewArrayNode creates an idle array node whose children are produced by
// newChild on demand.
func NewArrayNode(newChild func() Node) *ArrayNode {
	return &ArrayNode{newChild: newChild}
}

// Items returns the children created so far, in index order.
func (n *ArrayNode) Items() []Node { return n.items }

// OnAppend registers a callback fired once per new child, in strictly
// increasing index order.
func (n *ArrayNode) OnAppend(cb func(child Node, index int)) {
	n.onAppend = append(n.onAppend, cb)
}

func (n *ArrayNode) update(v any) error {
	n.fireStart()
	items, err := growArrayItems(n.items, v, n.newChild, n.fireAppend)
	n.items = items
	return err
}

func (n *ArrayNode) fireAppend(child Node, index int) {
	for _, cb := range n.onAppend {
		cb(child, index)
	}
	n.fireEvent(Event{Type: EventAppend, Value: [2]any{child, index}})
}

func (n *ArrayNode) complete() error {
	if n.completed {
		return nil
	}
	if len(n.items) > 0 {
		if err := n.items[len(n.items)-1].complete(); err != nil {
			return err
		}
	}
	values := make([]any, len(n.items))
	for i, child := range n.items {
		values[i] = finalValueOf(child)
	}
	n.fireComplete(values)
	return nil
}

// growArrayItems implements the array-of-streaming-children growth rule
// shared by ArrayNode and AtomArrayNode (spec §4.2): on growth, the
// previously-last item is finalized, every strictly intermediate new index
// is created and immediately completed, and the new final index is created
// and updated but left open.
func growArrayItems(items []Node, v any, newChild func() Node, onAppend func(Node, int)) ([]Node, error) {
	if v == nil {
		return items, nil
	}
	newItems, ok := v.([]any)
	if !ok {
		panic("stream: array update received a non-array, non-nil value")
	}
	if len(newItems) == 0 {
		return items, nil
	}
	prevLen := len(items)
	switch {
	case len(newItems) > prevLen:
		if prevLen > 0 {
			last := items[prevLen-1]
			if err := last.update(newItems[prevLen-1]); err != nil {
				return items, err
			}
			if err := last.complete(); err != nil {
				return items, err
			}
		}
		for i := prevLen; i < len(newItems); i++ {
			child := newChild()
			items = append(items, child)
			onAppend(child, i)
			if err := child.update(newItems[i]); err != nil {
				return items, err
			}
			if i != len(newItems)-1 {
				if err := child.complete(); err != nil {
					return items, err
				}
			}
		}
	case len(newItems) == prevLen:
		if prevLen > 0 {
			if err := items[prevLen-1].update(newItems[prevLen-1]); err != nil {
				return items, err
			}
		}
	default:
		// Monotone tokeniser observations never shrink an array; a shorter
		// slice here would violate that contract.
		panic("stream: array update observed a shrinking array")
	}
	return items, nil
}

// finalValueOf extracts the completed value from a Node for reporting in an
// array's aggregate complete callback. Every concrete Node variant tracks
// its own final value; this type switch mirrors the sealed-variant dispatch
// used throughout the package.
func finalValueOf(n Node) any {
	switch c := n.(type) {
	case *StringNode:
		v, _ := c.Value()
		return v
	case *AtomNode:
		return c.Validated()
	case *ArrayNode:
		values := make([]any, len(c.items))
		for i, child := range c.items {
			values[i] = finalValueOf(child)
		}
		return values
	case *AtomArrayNode:
		values := make([]any, len(c.items))
		for i, child := range c.items {
			values[i] = finalValueOf(child)
		}
		return values
	case *ObjectNode:
		return c.RawValue()
	default:
		return nil
	}
}
