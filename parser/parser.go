// Package parser drives a schema's streaming node tree from a character
// stream, via the tokeniser in jsontok. It is the glue component: it owns no
// parsing logic of its own beyond sequencing pushes onto the tokeniser and
// observations onto the node tree.
package parser

import (
	"os"

	"sigs.k8s.io/yaml"

	"github.com/streamkit-dev/streamjson/jsontok"
	"github.com/streamkit-dev/streamjson/stream"
)

// Parser feeds chunks of JSON text to a tokeniser and routes the resulting
// observations onto a root streaming node.
type Parser struct {
	tok  *jsontok.Tokenizer
	root stream.Node

	debugPath    string
	completed    bool
	lastObserved any
}

// Option configures a Parser at construction.
type Option func(*Parser)

// WithDebugDump writes a YAML snapshot of the final parsed value to path
// once Complete runs, mirroring the host's debug.yaml convention for LLM
// interactions.
func WithDebugDump(path string) Option {
	return func(p *Parser) { p.debugPath = path }
}

// New creates a parser that drives root as chunks arrive.
func New(root stream.Node, opts ...Option) *Parser {
	p := &Parser{tok: jsontok.New(), root: root}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Push feeds the next chunk of document text. An empty chunk is a no-op.
// Errors raised by the schema (Continuity, OutOfOrderKey, ValidationError)
// or by user callbacks propagate unmodified; the parser does not recover
// from them, and the caller should not call Push again afterward.
func (p *Parser) Push(chunk string) error {
	if chunk == "" {
		return nil
	}
	v, status, err := p.tok.Push(chunk)
	if err != nil {
		return err
	}
	if status == jsontok.StatusPending {
		return nil
	}
	p.lastObserved = v
	return stream.Drive(p.root, v)
}

// Complete finalizes the root node. It's idempotent: a second call is a
// silent no-op. Complete also forces a trailing bare number through, since a
// number only otherwise commits when a non-number character follows it.
func (p *Parser) Complete() error {
	if p.completed {
		return nil
	}
	p.completed = true
	if v, status, _ := p.tok.Finish(); status != jsontok.StatusPending {
		p.lastObserved = v
		if err := stream.Drive(p.root, v); err != nil {
			return err
		}
	}
	if err := stream.Finish(p.root); err != nil {
		return err
	}
	p.dumpDebug()
	return nil
}

// Scoped runs fn with this parser and guarantees Complete runs whether fn
// returns an error, returns normally, or panics. A panic is always
// re-raised after Complete has been given a chance to run; an error
// returned by Complete itself is only surfaced if fn didn't already fail.
func (p *Parser) Scoped(fn func(*Parser) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			_ = p.Complete()
			panic(r)
		}
	}()
	err = fn(p)
	if cErr := p.Complete(); err == nil {
		err = cErr
	}
	return err
}

func (p *Parser) dumpDebug() {
	if p.debugPath == "" {
		return
	}
	snapshot := map[string]any{
		"1_completed": p.root.Completed(),
	}
	if p.lastObserved != nil {
		// Marshaled via *jsontok.Object.MarshalJSON when the last root
		// observation was an object, which flattens it through ToMap; the
		// tokeniser's own key order isn't meaningful in a debug snapshot.
		snapshot["2_last_observed"] = p.lastObserved
	}
	if raw, err := yaml.Marshal(snapshot); err == nil {
		_ = os.WriteFile(p.debugPath, raw, 0644)
	}
}
