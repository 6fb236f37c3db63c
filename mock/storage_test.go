package mock_test

import (
	"testing"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStorage_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ sitecrawl.Storage = mock.MemStorage(map[string]string{})
}

func TestMemStorage(t *testing.T) {
	t.Parallel()

	t.Run("stores writes in the map", func(t *testing.T) {
		t.Parallel()

		files := map[string]string{}
		s := mock.MemStorage(files)

		require.NoError(t, s.WriteFile("a.txt", []byte("x")))

		assert.Equal(t, "x", files["a.txt"])
		got, err := s.ReadFile("a.txt")
		require.NoError(t, err)
		assert.Equal(t, "x", string(got))
	})

	t.Run("fails writes to listed files", func(t *testing.T) {
		t.Parallel()

		files := map[string]string{}
		s := mock.MemStorage(files, "log.txt")

		require.Error(t, s.WriteFile("log.txt", []byte("x")))
		assert.NotContains(t, files, "log.txt")
	})

	t.Run("returns ENOTFOUND for missing files", func(t *testing.T) {
		t.Parallel()

		_, err := mock.MemStorage(map[string]string{}).ReadFile("missing")
		assert.Equal(t, sitecrawl.ENOTFOUND, sitecrawl.ErrorCode(err))
	})
}
