// Package schema declares the streaming shape of a document an LLM is
// expected to produce. A descriptor tree is immutable once built; call
// Create to materialize the runtime node that a parser drives.
package schema

import (
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/streamkit-dev/streamjson/stream"
)

// Validator is the injected third-party validator seam named by spec §3/§6.
// A *jsonschema.Schema (via Resolved) satisfies it through the adapter in
// external.go, but callers may supply their own.
type Validator interface {
	Validate(v any) error
}

// Kind identifies which variant of the descriptor sum type a Descriptor is.
type Kind int

const (
	KindString Kind = iota
	KindAtom
	KindAtomArray
	KindArray
	KindObject
)

// Field pairs a declared object key with its descriptor, in declaration order.
type Field struct {
	Key        string
	Descriptor *Descriptor
}

// Descriptor is a node in the schema tree. It is immutable once built: every
// With*/Describe/DefaultValue call returns a new value rather than mutating the
// receiver, so a descriptor can be shared across many Create calls safely.
type Descriptor struct {
	kind Kind

	description string
	hasDefault  bool
	defaultVal  any

	// externalSchema, when set, is the source of truth for this descriptor's
	// metadata; it is mutually exclusive with Describe/Default (SchemaConfig).
	externalSchema *jsonschema.Schema

	validator Validator

	// Array/AtomArray only.
	element *Descriptor

	// Object only, declaration order preserved.
	fields []Field
}

// Kind reports which descriptor variant this is.
func (d *Descriptor) Kind() Kind { return d.kind }

// Element returns the element descriptor of an Array or AtomArray descriptor.
func (d *Descriptor) Element() *Descriptor { return d.element }

// Fields returns the declared fields of an Object descriptor, in order.
func (d *Descriptor) Fields() []Field { return d.fields }

// Description returns the human-readable description set via Describe or
// derived from an external schema.
func (d *Descriptor) Description() string { return d.description }

// Default returns the default value set via Default, and whether one was set.
func (d *Descriptor) Default() (any, bool) { return d.defaultVal, d.hasDefault }

func (d *Descriptor) clone() *Descriptor {
	cp := *d
	return &cp
}

// Describe returns a copy of the descriptor with a human-readable
// description attached. A description and an external schema are mutually
// exclusive: Create panics with ConfigError when both are set, in either
// order.
func (d *Descriptor) Describe(text string) *Descriptor {
	cp := d.clone()
	cp.description = text
	return cp
}

// DefaultValue returns a copy of the descriptor carrying a default value.
func (d *Descriptor) DefaultValue(v any) *Descriptor {
	cp := d.clone()
	cp.hasDefault = true
	cp.defaultVal = v
	return cp
}

// WithExternalSchema returns a copy of the descriptor whose metadata (type
// shape, description, default) is sourced from an external validation
// schema instead of the builder surface.
func (d *Descriptor) WithExternalSchema(s *jsonschema.Schema) *Descriptor {
	cp := d.clone()
	cp.externalSchema = s
	return cp
}

// WithValidator returns a copy of the descriptor using the given validator
// for Atom completion checks, overriding the one implied by any external
// schema. An AtomArray's items are validated through its element descriptor;
// a validator set on the AtomArray descriptor itself is not consulted.
func (d *Descriptor) WithValidator(v Validator) *Descriptor {
	cp := d.clone()
	cp.validator = v
	return cp
}

// Create materializes a fresh streaming node for this descriptor. Each call
// returns an independent node with idle lifecycle state.
func (d *Descriptor) Create() stream.Node {
	if d.externalSchema != nil && (d.description != "" || d.hasDefault) {
		panic(&ConfigError{Reason: "describe/default set alongside an external schema"})
	}
	switch d.kind {
	case KindString:
		return stream.NewStringNode()
	case KindAtom:
		return stream.NewAtomNode(d.validatorOrNil())
	case KindAtomArray:
		return stream.NewAtomArrayNode(func() stream.Node {
			return d.element.Create()
		})
	case KindArray:
		return stream.NewArrayNode(func() stream.Node {
			return d.element.Create()
		})
	case KindObject:
		names := make([]string, len(d.fields))
		factories := make([]func() stream.Node, len(d.fields))
		for i, f := range d.fields {
			names[i] = f.Key
			factories[i] = f.Descriptor.Create
		}
		return stream.NewObjectNode(names, factories)
	default:
		panic("schema: unknown descriptor kind")
	}
}

func (d *Descriptor) validatorOrNil() func(any) error {
	if d.validator != nil {
		return d.validator.Validate
	}
	if d.externalSchema != nil {
		resolved, err := d.externalSchema.Resolve(nil)
		if err != nil {
			return func(any) error { return err }
		}
		return func(v any) error { return resolved.Validate(v) }
	}
	return nil
}

// String builds a streaming string leaf descriptor.
func String() *Descriptor {
	return &Descriptor{kind: KindString}
}

// Number builds a streaming numeric leaf descriptor, whole-validated on
// completion against a plain numeric-type check.
func Number() *Descriptor {
	return &Descriptor{kind: KindAtom, validator: numberValidator{}}
}

// Boolean builds a streaming boolean leaf descriptor.
func Boolean() *Descriptor {
	return &Descriptor{kind: KindAtom, validator: boolValidator{}}
}

// Atom builds a streaming leaf descriptor whose value is validated as a
// whole against v once the node completes.
func Atom(v Validator) *Descriptor {
	return &Descriptor{kind: KindAtom, validator: v}
}

// Array builds a streaming array descriptor whose elements are themselves
// streamed (String or Object children). For any other leaf element use
// AtomArray.
func Array(element *Descriptor) *Descriptor {
	return &Descriptor{kind: KindArray, element: element}
}

// AtomArray builds an array descriptor whose elements are validated as a
// whole on emission rather than streamed character-wise.
func AtomArray(element *Descriptor) *Descriptor {
	return &Descriptor{kind: KindAtomArray, element: element}
}

// Object builds a streaming object descriptor. fields must be supplied in
// the order the LLM is expected to emit them; that order is load-bearing
// (see stream.ObjectNode's finality rule).
func Object(fields ...Field) *Descriptor {
	return &Descriptor{kind: KindObject, fields: fields}
}

// F is a convenience constructor for a Field, for use with Object.
func F(key string, d *Descriptor) Field {
	return Field{Key: key, Descriptor: d}
}

// FromStruct builds an Object descriptor from a Go struct type by
// reflection, analogous to the teacher's generateSchema/fieldTypeToJSONSchema
// reflection walk, but producing a streaming Descriptor tree instead of a
// wire schema. Declaration order follows struct field order. Supported leaf
// kinds: string (String), numeric/bool (Number/Boolean via Atom), slice of
// string or struct (Array), other slices (AtomArray), nested struct
// (Object), pointer (unwrapped).
func FromStruct(typ reflect.Type) *Descriptor {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		panic("schema: FromStruct requires a struct type")
	}
	fields := make([]Field, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			if idx := indexOfComma(tag); idx >= 0 {
				tag = tag[:idx]
			}
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		fields = append(fields, F(name, descriptorForType(f.Type)))
	}
	return Object(fields...)
}

func descriptorForType(t reflect.Type) *Descriptor {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return String()
	case reflect.Bool:
		return Boolean()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Number()
	case reflect.Struct:
		return FromStruct(t)
	case reflect.Slice, reflect.Array:
		elem := t.Elem()
		for elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		switch elem.Kind() {
		case reflect.String, reflect.Struct:
			return Array(descriptorForType(elem))
		default:
			return AtomArray(descriptorForType(elem))
		}
	default:
		panic("schema: unsupported field type " + t.Kind().String())
	}
}

func indexOfComma(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			return i
		}
	}
	return -1
}
