package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   string
	}{
		{"empty", "", "*****"},
		{"short", "abcd", "*****"},
		{"long", "sk-ant-api-key", "sk-a*****"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, MaskSecret(test.secret))
		})
	}
}

func TestTokenHex(t *testing.T) {
	token := TokenHex(16)
	assert.Len(t, token, 32)
	assert.NotEqual(t, token, TokenHex(16))
}

func TestEnsureParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "file.txt")
	require.NoError(t, EnsureParent(path))
	assert.True(t, DirExists(filepath.Dir(path)))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, FileExists(filepath.Join(dir, "nope")))
	// a directory is not a file
	assert.False(t, FileExists(dir))

	path := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.True(t, FileExists(path))
}

func TestResolvePath(t *testing.T) {
	resolved, err := ResolvePath("/tmp/../tmp/x")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", resolved)

	_, err = ResolvePath("")
	assert.Error(t, err)
}
