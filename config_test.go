package autolog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autolog.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func Test_LoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
topic = "billing"
level = "debug"
emit_each_timer = false
dump_stack_on_root_stop = true
structured_output = true
class_name_displayed = false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	opts := cfg.Options()
	assert.Equal(t, "billing", opts.Topic)
	assert.Equal(t, LevelDebug, opts.Level)
	assert.False(t, opts.EmitEachTimer)
	assert.True(t, opts.DumpStackOnRootStop)
	assert.True(t, opts.StructuredOutput)
	assert.False(t, opts.ClassNameDisplayed)
}

func Test_LoadConfig_DefaultsForAbsentKeys(t *testing.T) {
	path := writeConfigFile(t, `topic = "billing"`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	opts := cfg.Options()
	assert.True(t, opts.EmitEachTimer)
	assert.False(t, opts.DumpStackOnRootStop)
	assert.False(t, opts.StructuredOutput)
	assert.True(t, opts.ClassNameDisplayed)
	assert.Equal(t, LevelInfo, opts.Level)
}

func Test_EmptyConfigMatchesDefaults(t *testing.T) {
	var cfg Config
	assert.Equal(t, DefaultOptions(), cfg.Options())
}

func Test_LoadConfig_InvalidLevel(t *testing.T) {
	path := writeConfigFile(t, `level = "loud"`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func Test_LoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func Test_LoadConfig_Malformed(t *testing.T) {
	path := writeConfigFile(t, `topic = [broken`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
