package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/streamkit-dev/streamjson/stream"
)

func TestDescriptorBuildersAreImmutable(t *testing.T) {
	base := String()
	described := base.Describe("a title")

	assert.Empty(t, base.Description())
	assert.Equal(t, "a title", described.Description())
}

func TestDefaultValueRoundTrips(t *testing.T) {
	d := Number().DefaultValue(3.0)
	v, ok := d.Default()
	require.True(t, ok)
	assert.Equal(t, 3.0, v)

	_, ok = Number().Default()
	assert.False(t, ok)
}

func TestCreateBuildsMatchingNodeKinds(t *testing.T) {
	tests := []struct {
		name string
		d    *Descriptor
		want func(stream.Node) bool
	}{
		{"string", String(), func(n stream.Node) bool { _, ok := n.(*stream.StringNode); return ok }},
		{"number", Number(), func(n stream.Node) bool { _, ok := n.(*stream.AtomNode); return ok }},
		{"array", Array(String()), func(n stream.Node) bool { _, ok := n.(*stream.ArrayNode); return ok }},
		{"atom array", AtomArray(Number()), func(n stream.Node) bool { _, ok := n.(*stream.AtomArrayNode); return ok }},
		{"object", Object(F("a", String())), func(n stream.Node) bool { _, ok := n.(*stream.ObjectNode); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want(tt.d.Create()))
		})
	}
}

func TestObjectCreatePreservesFieldOrder(t *testing.T) {
	d := Object(F("z", String()), F("a", String()), F("m", String()))
	node := d.Create().(*stream.ObjectNode)

	fields := node.Fields()
	require.Len(t, fields, 3)
	for i, want := range []string{"z", "a", "m"} {
		field, ok := node.Field(want)
		assert.True(t, ok)
		assert.Same(t, field, fields[i])
	}
}

func TestCreatePanicsWhenDescribeAndExternalSchemaConflict(t *testing.T) {
	d := String().Describe("mine").WithExternalSchema(&jsonschema.Schema{Type: "string"})
	assert.Panics(t, func() {
		d.Create()
	})
}

type widget struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func TestFromStructMapsLeafKinds(t *testing.T) {
	d := FromStruct(reflect.TypeOf(widget{}))
	require.Equal(t, KindObject, d.Kind())

	fields := d.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "name", fields[0].Key)
	assert.Equal(t, KindString, fields[0].Descriptor.Kind())
	assert.Equal(t, "count", fields[1].Key)
	assert.Equal(t, KindAtom, fields[1].Descriptor.Kind())
	assert.Equal(t, "tags", fields[2].Key)
	assert.Equal(t, KindArray, fields[2].Descriptor.Kind())
}
