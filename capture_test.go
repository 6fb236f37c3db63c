package sitecrawl_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/sitecrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	t.Parallel()

	t.Run("returns value and message on success", func(t *testing.T) {
		t.Parallel()

		res := sitecrawl.Capture(func() (int, string, error) {
			return 42, "answer", nil
		})

		assert.True(t, res.OK())
		assert.Equal(t, 42, res.Value)
		assert.Equal(t, "answer", res.Message)
	})

	t.Run("returns error and zero value on failure", func(t *testing.T) {
		t.Parallel()

		res := sitecrawl.Capture(func() (string, string, error) {
			return "partial", "ignored", errors.New("no title")
		})

		assert.False(t, res.OK())
		assert.EqualError(t, res.Err, "no title")
		assert.Empty(t, res.Value)
		assert.Empty(t, res.Message)
	})

	t.Run("recovers from panics", func(t *testing.T) {
		t.Parallel()

		res := sitecrawl.Capture(func() (any, string, error) {
			var doc *sitecrawl.Document
			return doc.URL, "", nil
		})

		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "panic:")
	})
}
