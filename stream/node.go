// Package stream holds the runtime counterpart to a schema descriptor: a
// tree of typed, stateful nodes that accumulate a value as a parser feeds
// it partial observations, firing lifecycle callbacks as they go.
package stream

// EventType enumerates the lifecycle events a Node can fire, mirroring the
// teacher's closed Update enum (llms.UpdateType).
type EventType string

const (
	EventStart    EventType = "start"
	EventAppend   EventType = "append"
	EventUpdate   EventType = "update"
	EventComplete EventType = "complete"
)

// Event is a consolidated view of a lifecycle callback, for callers who'd
// rather register one sink (OnEvent) than four separate ones. Every Node
// variant still fires its dedicated callbacks (OnStart, OnAppend, ...);
// OnEvent fires in addition to, never instead of, those.
type Event struct {
	Type EventType
	// Value carries the append chunk (string) for EventAppend on a String
	// node, the appended child and index ([2]any{child, index}) for
	// EventAppend on an Array node, the raw partial value for EventUpdate,
	// and the final value for EventComplete. Nil for EventStart.
	Value any
}

// Node is the sealed interface every streaming node variant implements.
// Variant-specific behavior is reached via a type switch on the concrete
// type (StringNode, ArrayNode, AtomArrayNode, AtomNode, ObjectNode) rather
// than through open subtyping, per the teacher's tagged-union idiom for
// content.Item and llms.Update.
//
// update/complete return the framework-raised errors named in spec §7
// (Continuity, OutOfOrderKey, ValidationError) synchronously. A panicking
// user callback is never recovered here, so it propagates to the caller of
// Push/Complete unmodified — that's what "user-callback exceptions are not
// caught" means for a Go implementation.
type Node interface {
	// Started reports whether the node has fired its start event.
	Started() bool
	// Completed reports whether the node has fired its complete event.
	Completed() bool
	// OnStart registers a callback for the node's single start event. A
	// callback registered after start has already fired does not back-fire.
	OnStart(cb func())
	// OnComplete registers a callback for the node's single complete event.
	// A callback registered after complete has already fired does not
	// back-fire.
	OnComplete(cb func(value any))
	// OnEvent registers a consolidated sink that receives every event this
	// node fires, in addition to the dedicated callbacks above.
	OnEvent(cb func(Event))

	// update forwards a partial (or, at the root, complete) observation for
	// this node's value. Called by the parser driver and by parent nodes.
	update(v any) error
	// complete finalizes the node, firing complete at most once.
	complete() error
}

// Drive forwards a tokeniser observation to a node. It exists so the parser
// driver (a different package) can reach the unexported update method
// without every node variant needing an exported, directly user-callable
// update — only the driver is meant to push raw observations.
func Drive(n Node, v any) error {
	return n.update(v)
}

// Finish completes a node from the parser driver, for the same reason Drive
// exists for update.
func Finish(n Node) error {
	return n.complete()
}

// baseNode holds the lifecycle bookkeeping shared by every variant.
type baseNode struct {
	started, completed bool

	onStart    []func()
	onComplete []func(any)
	onEvent    []func(Event)
}

func (b *baseNode) Started() bool   { return b.started }
func (b *baseNode) Completed() bool { return b.completed }

func (b *baseNode) OnStart(cb func()) {
	if b.started {
		return
	}
	b.onStart = append(b.onStart, cb)
}

func (b *baseNode) OnComplete(cb func(value any)) {
	if b.completed {
		return
	}
	b.onComplete = append(b.onComplete, cb)
}

func (b *baseNode) OnEvent(cb func(Event)) {
	b.onEvent = append(b.onEvent, cb)
}

func (b *baseNode) fireStart() {
	if b.started {
		return
	}
	b.started = true
	for _, cb := range b.onStart {
		cb()
	}
	b.fireEvent(Event{Type: EventStart})
}

func (b *baseNode) fireComplete(value any) {
	if b.completed {
		return
	}
	b.completed = true
	for _, cb := range b.onComplete {
		cb(value)
	}
	b.fireEvent(Event{Type: EventComplete, Value: value})
}

func (b *baseNode) fireEvent(e Event) {
	for _, cb := range b.onEvent {
		cb(e)
	}
}
