package schema

import (
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToExternal converts a descriptor tree into a *jsonschema.Schema, suitable
// for handing to an LLM SDK that accepts JSON Schema for constrained
// generation (spec §6). If the descriptor carries its own external schema
// (set via WithExternalSchema) that value is returned directly.
func (d *Descriptor) ToExternal() *jsonschema.Schema {
	if d.externalSchema != nil {
		return d.externalSchema
	}
	s := &jsonschema.Schema{Description: d.description}
	if d.hasDefault {
		s.Default = d.defaultVal
	}
	switch d.kind {
	case KindString:
		s.Type = "string"
	case KindAtom:
		switch d.validator.(type) {
		case numberValidator:
			s.Type = "number"
		case boolValidator:
			s.Type = "boolean"
		default:
			// Opaque validator: no narrower type constraint can be inferred.
		}
	case KindArray, KindAtomArray:
		s.Type = "array"
		s.Items = d.element.ToExternal()
	case KindObject:
		props := make(map[string]*jsonschema.Schema, len(d.fields))
		required := make([]string, 0, len(d.fields))
		for _, f := range d.fields {
			props[f.Key] = f.Descriptor.ToExternal()
			required = append(required, f.Key)
		}
		s.Type = "object"
		s.Properties = props
		s.Required = required
	}
	return s
}

// FromExternal rebuilds a descriptor tree from a third-party JSON Schema,
// following the mapping rules of spec §4.1:
//
//   - string validator -> String
//   - numeric/boolean/enum validator -> Atom<that>
//   - array(string) -> Array<String>; array(object) -> Array<Object{...}>;
//     array of any other leaf -> AtomArray<that> (whole-item validated)
//   - object{...} -> Object{recursively mapped fields}
//   - optional/nullable wrapper -> unwrap and map inner
func FromExternal(s *jsonschema.Schema) *Descriptor {
	s = unwrapNullable(s)
	typ := primaryType(s)
	var d *Descriptor
	switch typ {
	case "string":
		d = String()
	case "number", "integer":
		d = Number()
	case "boolean":
		d = Boolean()
	case "array":
		if s.Items == nil {
			d = AtomArray(Atom(schemaValidator{s}))
			break
		}
		elemTyp := primaryType(unwrapNullable(s.Items))
		switch elemTyp {
		case "string":
			d = Array(String())
		case "object":
			d = Array(FromExternal(s.Items))
		default:
			d = AtomArray(FromExternal(s.Items))
		}
	case "object":
		fields := make([]Field, 0, len(s.Properties))
		for _, key := range orderedPropertyNames(s) {
			fields = append(fields, F(key, FromExternal(s.Properties[key])))
		}
		d = Object(fields...)
	default:
		d = Atom(schemaValidator{s})
	}
	if s.Description != "" {
		d = d.Describe(s.Description)
	}
	if s.Default != nil {
		d = d.DefaultValue(s.Default)
	}
	return d
}

// orderedPropertyNames recovers a stable field order for an object schema.
// jsonschema.Schema.Properties is a plain map, so when the schema doesn't
// otherwise communicate order we fall back to Required (itself ordered by
// the schema author) followed by any remaining keys sorted for determinism.
func orderedPropertyNames(s *jsonschema.Schema) []string {
	seen := make(map[string]bool, len(s.Properties))
	names := make([]string, 0, len(s.Properties))
	for _, k := range s.Required {
		if _, ok := s.Properties[k]; ok && !seen[k] {
			names = append(names, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func primaryType(s *jsonschema.Schema) string {
	if s.Type != "" {
		return s.Type
	}
	for _, t := range s.Types {
		if t != "null" {
			return t
		}
	}
	return ""
}

// unwrapNullable strips the "optional" shape a JSON Schema generator emits
// for a nullable field — an anyOf/oneOf with exactly one {"type": "null"}
// branch alongside the real one — and returns the real branch, carrying
// over the wrapper's description/default when the branch doesn't set its
// own. A bare {"type": [..., "null"]} multi-type schema needs no unwrapping;
// primaryType already skips "null" when picking among Types.
func unwrapNullable(s *jsonschema.Schema) *jsonschema.Schema {
	if s == nil {
		return &jsonschema.Schema{}
	}
	for _, branches := range [][]*jsonschema.Schema{s.AnyOf, s.OneOf} {
		if inner, ok := nullableBranch(branches); ok {
			unwrapped := *inner
			if unwrapped.Description == "" {
				unwrapped.Description = s.Description
			}
			if unwrapped.Default == nil {
				unwrapped.Default = s.Default
			}
			return &unwrapped
		}
	}
	return s
}

// nullableBranch reports whether branches is exactly a {real type, null}
// pair, and if so returns the non-null branch.
func nullableBranch(branches []*jsonschema.Schema) (*jsonschema.Schema, bool) {
	if len(branches) != 2 {
		return nil, false
	}
	var real *jsonschema.Schema
	sawNull := false
	for _, b := range branches {
		if b != nil && b.Type == "null" {
			sawNull = true
			continue
		}
		real = b
	}
	if sawNull && real != nil {
		return real, true
	}
	return nil, false
}

// schemaValidator adapts a *jsonschema.Schema to the Validator interface,
// resolving the schema on each Validate call and validating lazily, per spec
// §9 ("atoms validate lazily at complete").
type schemaValidator struct {
	schema *jsonschema.Schema
}

func (v schemaValidator) Validate(value any) error {
	resolved, err := v.schema.Resolve(nil)
	if err != nil {
		return fmt.Errorf("schema: resolving external schema: %w", err)
	}
	return resolved.Validate(value)
}
