package kvstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStringsAndTTL(t *testing.T) {
	m := NewMemory()

	_, err := m.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set("k", "v"))
	val, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, m.SetEx("short", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)
	_, err = m.Get("short")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySetNX(t *testing.T) {
	m := NewMemory()

	ok, err := m.SetNX("lock", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.SetNX("lock", "2", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Delete("lock"))
	ok, _ = m.SetNX("lock", "3", time.Minute)
	assert.True(t, ok)
}

func TestMemoryListsAndHashes(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.RPush("l", "a", "b", "c"))
	vals, err := m.LRange("l", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, vals)

	require.NoError(t, m.LRem("l", 1, "b"))
	vals, _ = m.LRange("l", 0, -1)
	assert.Equal(t, []string{"a", "c"}, vals)

	require.NoError(t, m.HSet("h", "f", "1"))
	v, err := m.HGet("h", "f")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	all, err := m.HGetAll("h")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	keys, err := m.Keys("h*")
	require.NoError(t, err)
	assert.Equal(t, []string{"h"}, keys)
}
