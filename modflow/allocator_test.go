package modflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUnitAllocator_Monotonic verifies the allocator contract: values
// are strictly increasing, all above 1000, and never repeated within
// one model's lifetime.
func TestUnitAllocator_Monotonic(t *testing.T) {
	m, err := New("demo", Options{Logger: testLogger()})
	require.NoError(t, err)

	seen := make(map[int]bool)
	prev := externalUnitStart
	for i := 0; i < 50; i++ {
		unit := m.Allocate()
		assert.Greater(t, unit, externalUnitStart)
		assert.Greater(t, unit, prev, "units must be strictly increasing")
		assert.False(t, seen[unit], "unit %d was returned twice", unit)
		seen[unit] = true
		prev = unit
	}
}

// TestUnitAllocator_NoReuseAfterRemoval verifies that removing an
// external file does not recycle its unit number.
func TestUnitAllocator_NoReuseAfterRemoval(t *testing.T) {
	m, err := New("demo", Options{Logger: testLogger()})
	require.NoError(t, err)

	first := m.Allocate()
	m.AddExternal("a.arr", first, false)
	require.True(t, m.RemoveExternal(first))

	assert.Greater(t, m.Allocate(), first)
}

// TestUnitAllocator_PerModel verifies that allocators are per-model:
// two models hand out independent sequences.
func TestUnitAllocator_PerModel(t *testing.T) {
	a, err := New("a", Options{Logger: testLogger()})
	require.NoError(t, err)
	b, err := New("b", Options{Logger: testLogger()})
	require.NoError(t, err)

	assert.Equal(t, a.Allocate(), b.Allocate(), "fresh models start from the same base")
}
