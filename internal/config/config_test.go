package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hxbind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
output: manifest
strict: true
key: secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset fields keep defaults")
	assert.Equal(t, OutputManifest, cfg.Output)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "secret", cfg.Key)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "output: [not, a, string"))
	assert.Error(t, err)

	cfg, err := Load(writeConfig(t, "output: xml"))
	require.NoError(t, err, "Load does not validate")
	assert.ErrorContains(t, cfg.Validate(), `unknown output "xml"`)
}

func TestLoadAllowsOverrideBeforeValidate(t *testing.T) {
	cfg, err := Load(writeConfig(t, "output: manifest\n"))
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "requires a key")

	cfg.Key = "from-flag"
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Output = OutputManifest
	assert.ErrorContains(t, cfg.Validate(), "requires a key")

	cfg.Key = "k"
	assert.NoError(t, cfg.Validate())

	cfg.Log.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "log format")

	cfg.Log.Format = "json"
	cfg.Log.Level = "verbose"
	assert.ErrorContains(t, cfg.Validate(), `unknown log level "verbose"`)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := Log{Level: "warn", Format: "json"}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "code", "empty-target")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"code":"empty-target"`)

	buf.Reset()
	Log{Level: "debug", Format: "text"}.NewLogger(&buf).Debug("details")
	assert.True(t, strings.Contains(buf.String(), "level=DEBUG"))
}
