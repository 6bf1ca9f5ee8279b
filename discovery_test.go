// FILE: speechrules/prefs/discovery_test.go
package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRulesDir(t *testing.T) {
	t.Run("EnvOverrideWins", func(t *testing.T) {
		t.Setenv(RulesDirEnvVar, "/opt/speechrules/Rules/")
		assert.Equal(t, filepath.Clean("/opt/speechrules/Rules"), defaultRulesDir())
	})

	t.Run("ExecutableRelativeFallback", func(t *testing.T) {
		t.Setenv(RulesDirEnvVar, "")
		dir := defaultRulesDir()
		assert.True(t, strings.HasSuffix(dir, "Rules"), "got %q", dir)
	})
}

func TestDefaultUserConfigDir(t *testing.T) {
	dir := defaultUserConfigDir()
	if dir == "" {
		t.Skip("platform offers no user configuration directory")
	}
	assert.Equal(t, "speechrules", filepath.Base(dir))
}

func TestFindUserPreferenceFile(t *testing.T) {
	t.Run("NoDirectory", func(t *testing.T) {
		assert.Equal(t, "", findUserPreferenceFile(filepath.Join(t.TempDir(), "nope")))
	})

	t.Run("EmptyDirectory", func(t *testing.T) {
		assert.Equal(t, "", findUserPreferenceFile(t.TempDir()))
	})

	t.Run("SingleCandidate", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "prefs.toml")
		require.NoError(t, os.WriteFile(path, []byte("[Speech]\n"), 0644))

		assert.Equal(t, path, findUserPreferenceFile(dir))
	})

	t.Run("ProbeOrderPrefersYAML", func(t *testing.T) {
		dir := t.TempDir()
		yamlPath := filepath.Join(dir, "prefs.yaml")
		require.NoError(t, os.WriteFile(yamlPath, []byte("Speech:\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("[Speech]\n"), 0644))

		assert.Equal(t, yamlPath, findUserPreferenceFile(dir))
	})
}
