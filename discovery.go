// FILE: speechrules/prefs/discovery.go
package prefs

import (
	"os"
	"path/filepath"
)

// RulesDirEnvVar names the environment variable that overrides the rules
// directory location. Useful for tests and for hosts that ship the rules
// tree outside the install directory.
const RulesDirEnvVar = "SPEECHRULES_RULES_DIR"

// userPreferenceCandidates are the per-user override file names probed in
// order inside the user configuration directory.
var userPreferenceCandidates = []string{
	"prefs.yaml",
	"prefs.toml",
	"prefs.json",
}

// defaultRulesDir locates the rules tree: the environment override wins,
// otherwise the Rules directory next to the running executable.
func defaultRulesDir() string {
	if dir := os.Getenv(RulesDirEnvVar); dir != "" {
		return filepath.Clean(dir)
	}
	exe, err := os.Executable()
	if err != nil {
		return "Rules"
	}
	return filepath.Join(filepath.Dir(exe), "Rules")
}

// defaultUserConfigDir returns the per-user preference directory, "" when
// the platform offers no user configuration location.
func defaultUserConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "speechrules")
}

// findUserPreferenceFile probes dir for a preference file, returning the
// first candidate that exists or "" when the user has none.
func findUserPreferenceFile(dir string) string {
	for _, name := range userPreferenceCandidates {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}
