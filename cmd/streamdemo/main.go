// Command streamdemo feeds a canned, chunked JSON document through a
// schema-bound parser and prints the lifecycle events as they fire, then
// makes a follow-up edit to the completed document through the tracker and
// prints the resulting patch. It holds no business logic of its own beyond
// wiring the two packages together, the way the host's cmd/mcp-fetch wired a
// single tool end to end.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/streamkit-dev/streamjson/parser"
	"github.com/streamkit-dev/streamjson/schema"
	"github.com/streamkit-dev/streamjson/stream"
	"github.com/streamkit-dev/streamjson/tracker"
)

func main() {
	descriptor := schema.Object(
		schema.F("title", schema.String()),
		schema.F("tags", schema.Array(schema.String())),
		schema.F("priority", schema.Number()),
	)
	root := descriptor.Create()
	root.OnEvent(func(ev stream.Event) {
		fmt.Printf("event: %s\n", ev.Type)
	})

	p := parser.New(root)

	root.OnComplete(func(value any) {
		fmt.Println("--- document complete ---")
		raw, _ := json.MarshalIndent(value, "", "  ")
		fmt.Println(string(raw))

		wrapped, buf := tracker.Track(value)
		if wobj, ok := wrapped.(*tracker.Object); ok {
			wobj.Set("priority", 2.0)
		}
		patch := buf.Flush()
		fmt.Println("--- patch from a follow-up edit ---")
		raw, _ = json.MarshalIndent(patch, "", "  ")
		fmt.Println(string(raw))
	})

	// A model rarely emits a whole token per JSON structural character; three
	// ragged chunks are enough to exercise start/append/update/complete.
	chunks := []string{
		`{"title":"Ship the rel`,
		`ease","tags":["infra",`,
		`"urgent"],"priority":1}`,
	}
	for _, chunk := range chunks {
		if err := p.Push(chunk); err != nil {
			fmt.Fprintln(os.Stderr, "push error:", err)
			os.Exit(1)
		}
	}
	if err := p.Complete(); err != nil {
		fmt.Fprintln(os.Stderr, "complete error:", err)
		os.Exit(1)
	}
}
