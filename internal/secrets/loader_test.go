package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileWinsOverValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groq.key")
	require.NoError(t, os.WriteFile(path, []byte("  gsk-from-file\n"), 0o600))

	got, err := Load(Source{Name: "groq api key", Value: "gsk-inline", File: path})
	require.NoError(t, err)
	assert.Equal(t, "gsk-from-file", got)
}

func TestLoad_Errors(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.key")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))

	_, err := Load(Source{Name: "deepgram api key"})
	assert.ErrorContains(t, err, "deepgram api key is not configured")

	_, err = Load(Source{Name: "deepgram api key", File: empty})
	assert.ErrorContains(t, err, "is empty")

	_, err = Load(Source{File: filepath.Join(t.TempDir(), "missing")})
	assert.ErrorContains(t, err, "reading secret from file")
}

func TestLoadOptional(t *testing.T) {
	got, err := LoadOptional(Source{Name: "openai api key"})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = LoadOptional(Source{Value: " sk-test "})
	require.NoError(t, err)
	assert.Equal(t, "sk-test", got)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "****", Mask("abc"))
	assert.Equal(t, "********wxyz", Mask("gsk-abcdefwxyz"))
}
