package main

import (
	"bytes"
	"testing"
)

func TestRunDetect(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"chromebook", []string{"--input", "testdata/octopus.json"}, 0, "Chromebook detected (GOOGLE Octopus)"},
		{"desktop", []string{"--input", "testdata/desktop.yaml"}, 1, "No Chromebook hardware detected"},
		{"quiet", []string{"-q", "--input", "testdata/octopus.json"}, 0, ""},
		{"help", []string{"--help"}, 0, "Exit codes:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code, err := runDetect(tt.args, &out)
			if err != nil {
				t.Fatalf("runDetect() error = %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if tt.wantOut == "" && out.Len() != 0 {
				t.Errorf("expected no output, got %q", out.String())
			}
			if tt.wantOut != "" && !containsStr(out.String(), tt.wantOut) {
				t.Errorf("output = %q, want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestRunDetect_Error(t *testing.T) {
	isolateEnv(t)

	var out bytes.Buffer
	code, err := runDetect([]string{"--input", "testdata/missing.json"}, &out)
	if err == nil {
		t.Fatal("runDetect() expected error, got nil")
	}
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}
