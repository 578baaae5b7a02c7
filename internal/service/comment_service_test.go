package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPreviewKeepsRuneBoundaries(t *testing.T) {
	t.Run("short content is untouched", func(t *testing.T) {
		assert.Equal(t, "hello", preview("hello", 120))
	})

	t.Run("ascii content is cut at the limit", func(t *testing.T) {
		long := strings.Repeat("a", 200)
		got := preview(long, 120)
		assert.Len(t, got, 120)
	})

	t.Run("multi-byte content is never split mid-rune", func(t *testing.T) {
		long := strings.Repeat("訪問報告", 50)
		got := preview(long, 120)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, 120, utf8.RuneCountInString(got))
	})
}
