package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTypedAccess(t *testing.T) {
	r := NewRecord()
	r.PutString("name", "Sw1")
	r.PutInt("count", 42)
	r.PutFloat("level", -12.5)
	r.PutBool("on", true)

	s, ok := r.GetString("name")
	assert.True(t, ok)
	assert.Equal(t, "Sw1", s)

	i, ok := r.GetInt("count")
	assert.True(t, ok)
	assert.Equal(t, 42, i)

	f, ok := r.GetFloat("level")
	assert.True(t, ok)
	assert.Equal(t, -12.5, f)

	b, ok := r.GetBool("on")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = r.GetString("absent")
	assert.False(t, ok)
	_, ok = r.GetInt("name")
	assert.False(t, ok)
}

func TestRecordOrderAndFirst(t *testing.T) {
	r := NewRecord()
	r.PutString("b", "2")
	r.PutString("a", "1")
	r.PutString("b", "3") // rewrite keeps position

	key, value, ok := r.First()
	require.True(t, ok)
	assert.Equal(t, "b", key)
	assert.Equal(t, "3", value)
	assert.Equal(t, 2, r.Len())

	_, _, ok = NewRecord().First()
	assert.False(t, ok)
}

func TestProfileStoreRoundTrip(t *testing.T) {
	store := NewProfileStore(t.TempDir())

	r := NewRecord()
	r.PutInt("version", 20000)
	r.PutString("source", "cpu_usage")
	r.PutFloat("thresholdUp", 70)

	require.NoError(t, store.Save("widget", r))
	require.True(t, store.Exists("widget"))

	got, err := store.Load("widget")
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())

	key, value, ok := got.First()
	require.True(t, ok)
	assert.Equal(t, "version", key)
	assert.Equal(t, "20000", value)

	ref, ok := got.GetString("source")
	assert.True(t, ok)
	assert.Equal(t, "cpu_usage", ref)
}

func TestProfileStoreMissing(t *testing.T) {
	store := NewProfileStore(t.TempDir())
	assert.False(t, store.Exists("nope"))

	_, err := store.Load("nope")
	assert.Error(t, err)
}
