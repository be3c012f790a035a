package main

import (
	"testing"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/testutil"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	return testutil.SetupTestEnv(t)
}

func containsStr(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
