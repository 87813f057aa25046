package jsontok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushIncrementalObject(t *testing.T) {
	tok := New()

	v, status, err := tok.Push(`{"a":"hel`)
	require.NoError(t, err)
	require.Equal(t, StatusPartial, status)
	obj, ok := v.(*Object)
	require.True(t, ok)
	got, _ := obj.Get("a")
	assert.Equal(t, "hel", got)

	v, status, err = tok.Push(`lo","b":1}`)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, status)
	obj = v.(*Object)
	a, _ := obj.Get("a")
	b, _ := obj.Get("b")
	assert.Equal(t, "hello", a)
	assert.Equal(t, 1.0, b)
}

func TestPushArrayGrowth(t *testing.T) {
	tok := New()

	v, _, err := tok.Push(`["x","y"`)
	require.NoError(t, err)
	arr, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, arr, 2)
	assert.Equal(t, "x", arr[0])
	assert.Equal(t, "y", arr[1])

	v, status, err := tok.Push(`]`)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, status)
	arr = v.([]any)
	require.Len(t, arr, 2)
}

func TestPushArrayOfAtomsWithholdsUntilCommit(t *testing.T) {
	tok := New()

	v, _, err := tok.Push(`[1, 2, 3`)
	require.NoError(t, err)
	arr := v.([]any)
	// 3 is still mid-number; only fully-committed atoms are exposed.
	assert.Equal(t, []any{1.0, 2.0}, arr)

	v, status, err := tok.Push(`]`)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, status)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, v)
}

func TestPushStringEscapes(t *testing.T) {
	tok := New()
	v, status, err := tok.Push(`"line1\nline2\tA"`)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, status)
	assert.Equal(t, "line1\nline2\tA", v)
}

func TestPushSurrogatePair(t *testing.T) {
	tok := New()
	v, status, err := tok.Push("\"\\ud83d\\ude00\"")
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, status)
	assert.Equal(t, "\U0001F600", v)
}

func TestFinishCommitsBareTrailingNumber(t *testing.T) {
	tok := New()
	v, status, err := tok.Push(`42`)
	require.NoError(t, err)
	require.Equal(t, StatusPending, status)

	v, status, err = tok.Finish()
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, status)
	assert.Equal(t, 42.0, v)
}

func TestTrailingInputAfterCompletion(t *testing.T) {
	tok := New()
	_, status, err := tok.Push(`{"a":1}`)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, status)

	_, _, err = tok.Push(`x`)
	require.Error(t, err)
	var trailingErr *TrailingInputError
	require.ErrorAs(t, err, &trailingErr)
}

func TestOrderedObjectPreservesFirstSeenOrder(t *testing.T) {
	tok := New()
	v, _, err := tok.Push(`{"z":1,"a":2,"m":3}`)
	require.NoError(t, err)
	obj := v.(*Object)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())
}

func TestWhitespaceBetweenTokensIsIgnored(t *testing.T) {
	tok := New()
	v, status, err := tok.Push(`  {  "a" : "b"  ,  "c" : 1  }  `)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, status)
	obj := v.(*Object)
	a, _ := obj.Get("a")
	assert.Equal(t, "b", a)
}
