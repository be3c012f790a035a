// Package testutil provides helpers for testing chromespoof in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Environment variables read by the chromespoof command.
var chromespoofEnv = []string{
	"CHROMESPOOF_RULES",
	"CHROMESPOOF_DATASET",
	"CHROMESPOOF_KEYRING",
	"CHROMESPOOF_DEBUG",
}

// SetupTestEnv clears chromespoof configuration from the environment,
// disables colored output and points CHROMESPOOF_CONFIG_DIR at an empty
// temporary directory, which it returns. A user's real rules file is
// therefore never picked up by a test.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	configDir := filepath.Join(t.TempDir(), "config")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		t.Fatalf("failed to create test directory %s: %v", configDir, err)
	}

	t.Setenv("CHROMESPOOF_CONFIG_DIR", configDir)
	for _, name := range chromespoofEnv {
		t.Setenv(name, "")
	}
	t.Setenv("NO_COLOR", "1")

	return configDir
}
