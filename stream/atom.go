package stream

// AtomNode holds a JSON-compatible value that's validated as a whole only
// once it completes; mid-stream partial values are never checked against
// the validator (spec §9).
type AtomNode struct {
	baseNode

	validator func(any) error
	raw       any
	hasRaw    bool
	validated any
}

// NewAtomNode creates an idle atom node. validator may be nil, in which case
// completion never fails.
func NewAtomNode(validator func(any) error) *AtomNode {
	return &AtomNode{validator: validator}
}

// Raw returns the last observed raw value and whether one has been set.
func (n *AtomNode) Raw() (any, bool) { return n.raw, n.hasRaw }

// Validated returns the value produced by complete(), or nil before that.
func (n *AtomNode) Validated() any { return n.validated }

func (n *AtomNode) update(v any) error {
	n.fireStart()
	n.raw = v
	n.hasRaw = true
	n.fireEvent(Event{Type: EventUpdate, Value: v})
	return nil
}

func (n *AtomNode) complete() error {
	if n.completed {
		return nil
	}
	if n.validator != nil {
		if err := n.validator(n.raw); err != nil {
			return &ValidationError{Value: n.raw, Err: err}
		}
	}
	n.validated = n.raw
	n.fireComplete(n.validated)
	return nil
}
