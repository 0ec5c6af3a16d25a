package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(12345)
	b := NewRNG(12345)

	for i := 0; i < 64; i++ {
		assert.Equal(t, a.NextU32(), b.NextU32())
		assert.Equal(t, a.NextFloat64(), b.NextFloat64())
	}
}

func TestRNGSeedsDiverge(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)

	same := true
	for i := 0; i < 16; i++ {
		if a.NextU32() != b.NextU32() {
			same = false
			break
		}
	}
	assert.False(t, same, "different seeds must produce different streams")
}

func TestNextFloat64Range(t *testing.T) {
	r := NewRNG(9)
	for i := 0; i < 1000; i++ {
		v := r.NextFloat64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestIntN(t *testing.T) {
	r := NewRNG(3)
	for i := 0; i < 100; i++ {
		v := r.IntN(7)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 7)
	}
}
