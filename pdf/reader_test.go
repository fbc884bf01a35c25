package pdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0644))

	r, err := Open(path)
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, ErrCorrupt), "expected ErrCorrupt, got %v", err)
}

func TestOpenTruncated(t *testing.T) {
	// A valid header followed by garbage is still corrupt.
	path := filepath.Join(t.TempDir(), "truncated.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\ngarbage"), 0644))

	r, err := Open(path)
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, ErrCorrupt), "expected ErrCorrupt, got %v", err)
}

func TestOpenMissingFile(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "does-not-exist.pdf"))
	assert.Nil(t, r)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCorrupt), "missing file is an IO failure, not corruption")
}
