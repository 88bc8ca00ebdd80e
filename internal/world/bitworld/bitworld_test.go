package bitworld

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doctrine/internal/gate"
	"doctrine/internal/world/worldtest"
)

func TestSheafBitsDefinable(t *testing.T) {
	w := NewSheafBits(2)

	assert.True(t, w.Definable(0b101, Assignment{0: 1, 2: 0}))
	assert.False(t, w.Definable(0b101, Assignment{0: 1}), "missing bit 2")
	assert.False(t, w.Definable(0b101, Assignment{0: 1, 1: 0, 2: 0}), "bit 1 outside context")
	assert.False(t, w.Definable(0b1, Assignment{0: 2}), "symbol out of alphabet")
}

func TestSheafBitsRestrict(t *testing.T) {
	w := NewSheafBits(2)
	v := Assignment{0: 1, 1: 0, 2: 1}

	got, ok := w.Restrict(v, 0b111, 0b101)
	require.True(t, ok)
	assert.Equal(t, Assignment{0: 1, 2: 1}, got)

	_, ok = w.Restrict(v, 0b111, 0b1000)
	assert.False(t, ok, "target is not a submask")
}

func TestSheafBitsEnumerate(t *testing.T) {
	w := NewSheafBits(2)

	vs, ok := w.Enumerate(0b11)
	require.True(t, ok)
	assert.Len(t, vs, 4)

	// Enumeration order is fixed: lexicographic over ascending bits.
	again, ok := w.Enumerate(0b11)
	require.True(t, ok)
	assert.Equal(t, vs, again)

	_, ok = w.Enumerate((1 << 20) - 1)
	assert.False(t, ok, "context too wide to sweep")
}

func TestSheafBitsCoversAndOverlap(t *testing.T) {
	w := NewSheafBits(2)

	assert.True(t, w.ValidCover(0b111, []uint64{0b011, 0b110}))
	assert.False(t, w.ValidCover(0b111, []uint64{0b011}), "union does not recover the base")
	assert.False(t, w.ValidCover(0b111, nil))
	assert.False(t, w.ValidCover(0b011, []uint64{0b011, 0b100}), "leg escapes the base")

	o, ok := w.Overlap(0b011, 0b110)
	require.True(t, ok)
	assert.Equal(t, uint64(0b010), o)
}

func TestSheafBitsAdjointTriple(t *testing.T) {
	assert.NoError(t, NewSheafBits(2).AdjointTriple())
	assert.NoError(t, NewSheafBits(3).AdjointTriple())
}

func TestSheafBitsSatisfiesStabilityBattery(t *testing.T) {
	w := NewSheafBits(2)
	value := Assignment{0: 1, 1: 0, 2: 1}
	fixtures := worldtest.StabilityFixtures[Assignment](0b111, 0b011, 0b001, value)

	outcomes, err := worldtest.Run(context.Background(), w, gate.DefaultProfile, fixtures)
	require.NoError(t, err)
	for _, o := range outcomes {
		assert.True(t, o.Conforms, o.Fixture.Name)
	}
}

func TestCollapseDefinable(t *testing.T) {
	w := NewCollapse(2)

	assert.True(t, w.Definable(0, EmptyGlyph))
	assert.False(t, w.Definable(0, 0))
	assert.True(t, w.Definable(0b10, 1))
	assert.False(t, w.Definable(0b10, 2), "symbol out of alphabet")
	assert.False(t, w.Definable(0b10, "x"))
}

func TestCollapseRestrictForgets(t *testing.T) {
	w := NewCollapse(2)

	got, ok := w.Restrict(1, 0b11, 0b01)
	require.True(t, ok)
	assert.Equal(t, 0, got, "proper restriction collapses to the zero symbol")

	got, ok = w.Restrict(1, 0b11, 0)
	require.True(t, ok)
	assert.Equal(t, EmptyGlyph, got)

	got, ok = w.Restrict(1, 0b11, 0b11)
	require.True(t, ok)
	assert.Equal(t, 1, got, "identity restriction keeps the value")
}

func TestIdentityWorldStabilityAlwaysAccepts(t *testing.T) {
	w := NewIdentity("a", "b")
	fixtures := worldtest.StabilityFixtures[string](0b111, 0b010, 0b000, "a")

	outcomes, err := worldtest.Run(context.Background(), w, gate.DefaultProfile, fixtures)
	require.NoError(t, err)
	for _, o := range outcomes {
		assert.True(t, o.Result.Accepted, o.Fixture.Name)
	}
}
