package pagetext_test

import (
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/pagetext"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	t.Run("returns short strings unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "hello", pagetext.Truncate("hello", 10))
	})

	t.Run("cuts mid-word", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "hello wo", pagetext.Truncate("hello world", 8))
	})

	t.Run("returns exact length unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "hello", pagetext.Truncate("hello", 5))
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		got := pagetext.Truncate("żółw i jeż", 4)

		assert.Equal(t, "żółw", got)
		assert.True(t, utf8.ValidString(got))
	})

	t.Run("non-positive limit yields empty string", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, pagetext.Truncate("hello", 0))
		assert.Empty(t, pagetext.Truncate("hello", -1))
	})
}
