package guard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordEstimator(t *testing.T) {
	t.Run("counts whitespace-delimited words with expansion factor", func(t *testing.T) {
		// 10 words * 1.3 = 13, truncated.
		count := WordEstimator{}.Count("one two three four five six seven eight nine ten")
		assert.Equal(t, 13, count)
	})

	t.Run("empty text counts as zero", func(t *testing.T) {
		assert.Equal(t, 0, WordEstimator{}.Count(""))
		assert.Equal(t, 0, WordEstimator{}.Count("   \n\t  "))
	})
}

func TestTokenGuard(t *testing.T) {
	t.Run("short text passes the default limit", func(t *testing.T) {
		g := NewTokenGuardWithEstimator(DefaultTokenLimit, WordEstimator{})

		over, count := g.Check("a short query about ten words long give or take")

		assert.False(t, over)
		assert.Less(t, count, DefaultTokenLimit)
	})

	t.Run("long text exceeds the default limit", func(t *testing.T) {
		g := NewTokenGuardWithEstimator(DefaultTokenLimit, WordEstimator{})
		text := strings.Repeat("word ", 5000)

		over, count := g.Check(text)

		assert.True(t, over)
		assert.Greater(t, count, DefaultTokenLimit)
	})

	t.Run("exactly at the limit is not over", func(t *testing.T) {
		// 10 words * 1.3 = 13.
		g := NewTokenGuardWithEstimator(13, WordEstimator{})

		over, count := g.Check(strings.Repeat("word ", 10))

		assert.False(t, over)
		assert.Equal(t, 13, count)
	})

	t.Run("non-positive limit falls back to the default", func(t *testing.T) {
		g := NewTokenGuardWithEstimator(0, WordEstimator{})
		assert.Equal(t, DefaultTokenLimit, g.Limit())
	})

	t.Run("constructor always yields a working guard", func(t *testing.T) {
		// Estimator selection must not fail even for an unknown model.
		g := NewTokenGuard(100, "not-a-real-model", nil)
		require.NotNil(t, g)

		over, count := g.Check("hello world")
		assert.False(t, over)
		assert.GreaterOrEqual(t, count, 0)
	})
}
