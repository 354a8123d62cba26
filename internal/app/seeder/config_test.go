package seeder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"fixture_path: testdata/demo.yaml\npinned_time: 2024-05-01T12:00:00Z\n"), 0o644))
	t.Setenv("SEEDER_DRY_RUN", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "testdata/demo.yaml", cfg.FixturePath)
	assert.True(t, cfg.DryRun, "ENV overrides the file")
	assert.True(t, cfg.PinnedTime.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, cfg.PinnedTime, cfg.clock()())
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	t.Setenv("SEEDER_FIXTURE_PATH", "/srv/fixture.yaml")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/fixture.yaml", cfg.FixturePath)
	assert.False(t, cfg.DryRun)
	assert.True(t, cfg.PinnedTime.IsZero())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
