package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Transfer.ConnectTimeout)
	assert.NotEmpty(t, cfg.Transfer.KnownHostsFile)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Empty(t, cfg.Journal.Path)
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
transfer:
  connect_timeout: 10s
  known_hosts_file: "` + tmpDir + `/trust/known_hosts"
  min_free_bytes: 1048576

journal:
  path: "` + tmpDir + `/journal/shuttle.db"

logging:
  level: debug
  format: json
`
	configPath := filepath.Join(tmpDir, "shuttle.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Transfer.ConnectTimeout)
	assert.Equal(t, int64(1048576), cfg.Transfer.MinFreeBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Directories for the trust store and journal are created.
	assert.DirExists(t, filepath.Join(tmpDir, "trust"))
	assert.DirExists(t, filepath.Join(tmpDir, "journal"))
}

func TestLoad_EnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("SHUTTLE_TEST_HOSTS", filepath.Join(tmpDir, "known_hosts"))

	configContent := `
transfer:
  known_hosts_file: "${SHUTTLE_TEST_HOSTS}"
`
	configPath := filepath.Join(tmpDir, "shuttle.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "known_hosts"), cfg.Transfer.KnownHostsFile)
}

func TestLoad_InvalidLevel(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "shuttle.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: loud\n"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
