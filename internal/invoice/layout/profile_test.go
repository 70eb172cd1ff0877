package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfileDefaults(t *testing.T) {
	g, err := LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), g)
}

func TestLoadProfileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"usable_page_height: 240\nheader_height: 50\nsummary_block_height: 32\n",
	), 0o600))

	g, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, 240.0, g.UsablePageHeight)
	assert.Equal(t, 50.0, g.HeaderHeight)
	assert.Equal(t, 32.0, g.SummaryBlockHeight)
	// Untouched keys keep the defaults.
	assert.Equal(t, Default().LineHeight, g.LineHeight)
}

func TestLoadProfileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"usable_page_height: 10\nheader_height: 50\n",
	), 0o600))

	_, err := LoadProfile(path)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
