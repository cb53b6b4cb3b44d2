package safeconv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint64ToInt(t *testing.T) {
	t.Parallel()

	t.Run("fits", func(t *testing.T) {
		t.Parallel()

		got, ok := Uint64ToInt(1 << 20)
		assert.True(t, ok)
		assert.Equal(t, 1<<20, got)
	})

	t.Run("max_int", func(t *testing.T) {
		t.Parallel()

		got, ok := Uint64ToInt(math.MaxInt)
		assert.True(t, ok)
		assert.Equal(t, math.MaxInt, got)
	})

	t.Run("overflow", func(t *testing.T) {
		t.Parallel()

		_, ok := Uint64ToInt(math.MaxUint64)
		assert.False(t, ok)
	})
}

func TestMustInt64ToUint64(t *testing.T) {
	t.Parallel()

	t.Run("zero", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, uint64(0), MustInt64ToUint64(0))
	})

	t.Run("positive", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, uint64(4096), MustInt64ToUint64(4096))
	})

	t.Run("negative_panics", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, "safeconv: negative int64 to uint64 conversion", func() {
			MustInt64ToUint64(-1)
		})
	})
}
