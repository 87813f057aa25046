package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/streamkit-dev/streamjson/parser"
	"github.com/streamkit-dev/streamjson/schema"
	"github.com/streamkit-dev/streamjson/tracker"
)

// schemas is the set of document shapes this demo knows how to stream. A
// real caller builds its own schema.Descriptor; this registry only exists so
// the CLI has something to name on the command line.
var schemas = map[string]*schema.Descriptor{
	"task": schema.Object(
		schema.F("title", schema.String()),
		schema.F("tags", schema.Array(schema.String())),
		schema.F("priority", schema.Number()),
	),
	"message": schema.Object(
		schema.F("role", schema.String()),
		schema.F("content", schema.String()),
	),
}

func main() {
	schemaName := flag.String("schema", "task", "name of the registered schema to stream against")
	chunksPath := flag.String("chunks", "", "path to a file of newline-separated JSON chunks")
	debugDump := flag.String("debug-dump", "", "write a YAML snapshot of the parsed document to this path")
	flag.Parse()

	descriptor, ok := schemas[*schemaName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown schema %q\n", *schemaName)
		printUsage()
		os.Exit(1)
	}
	if *chunksPath == "" {
		printUsage()
		os.Exit(1)
	}

	f, err := os.Open(*chunksPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open chunks file:", err)
		os.Exit(1)
	}
	defer f.Close()

	root := descriptor.Create()

	var opts []parser.Option
	if *debugDump != "" {
		opts = append(opts, parser.WithDebugDump(*debugDump))
	}
	p := parser.New(root, opts...)

	var wrapped any
	var buf *tracker.Buffer
	root.OnComplete(func(value any) {
		wrapped, buf = tracker.Track(value)
	})

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := p.Push(scanner.Text()); err != nil {
			fmt.Fprintln(os.Stderr, "parse error:", err)
			os.Exit(1)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "read chunks file:", err)
		os.Exit(1)
	}
	if err := p.Complete(); err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		os.Exit(1)
	}

	if wrapped == nil {
		fmt.Fprintln(os.Stderr, "document never completed")
		os.Exit(1)
	}

	// Append a marker to the first string field found, as a stand-in for
	// whatever edit an application would actually make to the document.
	if wobj, ok := wrapped.(*tracker.Object); ok {
		for _, key := range wobj.Keys() {
			if s, ok := stringValue(wobj, key); ok {
				wobj.Set(key, s+" (edited)")
				break
			}
		}
	}

	ops := buf.Flush()
	raw, err := json.MarshalIndent(ops, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal patch:", err)
		os.Exit(1)
	}
	fmt.Println(string(raw))
}

func stringValue(obj *tracker.Object, key string) (string, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func printUsage() {
	fmt.Println("Usage: streamjson -schema <name> -chunks <file> [-debug-dump <path>]")
	fmt.Println()
	fmt.Println("Registered schemas:")
	for name := range schemas {
		fmt.Printf("  %s\n", name)
	}
}
