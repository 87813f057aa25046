package stream

// StringNode streams a JSON string leaf character-by-character (in whatever
// chunks the tokeniser can safely expose).
type StringNode struct {
	baseNode

	value    *string
	onAppend []func(chunk string)
}

// NewStringNode creates an idle string node.
func NewStringNode() *StringNode {
	return &StringNode{}
}

// Value returns the current accumulated value and whether a non-null value
// has been observed yet; an observed null leaves it reporting false.
func (n *StringNode) Value() (string, bool) {
	if n.value == nil {
		return "", false
	}
	return *n.value, true
}

// OnAppend registers a callback for each incremental chunk appended to the
// string's value, in document order.
func (n *StringNode) OnAppend(cb func(chunk string)) {
	n.onAppend = append(n.onAppend, cb)
}

func (n *StringNode) update(v any) error {
	if v == nil {
		n.fireStart()
		// Null is recorded but produces no append; value stays unset so a
		// later non-null observation is still treated as the first.
		return nil
	}
	s, ok := v.(string)
	if !ok {
		panic("stream: StringNode.update received a non-string, non-nil value")
	}
	if n.value == nil {
		n.fireStart()
		n.value = &s
		n.fireAppend(s)
		return nil
	}
	if s == *n.value {
		return nil
	}
	if len(s) < len(*n.value) || s[:len(*n.value)] != *n.value {
		return &ContinuityError{Previous: *n.value, Received: s}
	}
	delta := s[len(*n.value):]
	n.value = &s
	n.fireAppend(delta)
	return nil
}

func (n *StringNode) fireAppend(chunk string) {
	for _, cb := range n.onAppend {
		cb(chunk)
	}
	n.fireEvent(Event{Type: EventAppend, Value: chunk})
}

func (n *StringNode) complete() error {
	if n.completed {
		return nil
	}
	var v any
	if n.value != nil {
		v = *n.value
	}
	n.fireComplete(v)
	return nil
}
