package tmpfile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirCreator_Create(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "tmp")
	creator := NewDirCreator(dir)

	path, err := creator.Create("prompt_", ".md")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	base := filepath.Base(path)
	assert.True(t, strings.HasPrefix(base, "prompt_"), "got %q", base)
	assert.True(t, strings.HasSuffix(base, ".md"), "got %q", base)
}

func TestDirCreator_Create_UniqueNames(t *testing.T) {
	creator := NewDirCreator(t.TempDir())

	first, err := creator.Create("prompt_", ".md")
	require.NoError(t, err)
	second, err := creator.Create("prompt_", ".md")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
