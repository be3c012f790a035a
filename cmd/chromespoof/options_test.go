package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseReportArgs(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, o *reportOpts)
		wantErr bool
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, o *reportOpts) {
				if o.input != "" || o.json || o.noPrompt || o.macOS != "" {
					t.Errorf("unexpected options: %+v", o)
				}
			},
		},
		{
			name: "separate values",
			args: []string{"--input", "hw.json", "--macos", "21.0.0", "--rules", "r.lua", "--json", "--no-prompt"},
			check: func(t *testing.T, o *reportOpts) {
				if o.input != "hw.json" || o.macOS != "21.0.0" || o.rulesPath != "r.lua" || !o.json || !o.noPrompt {
					t.Errorf("unexpected options: %+v", o)
				}
			},
		},
		{
			name: "equals values",
			args: []string{"--input=hw.yaml", "--macos=22.0.0", "--codename=Goldmont", "-v"},
			check: func(t *testing.T, o *reportOpts) {
				if o.input != "hw.yaml" || o.macOS != "22.0.0" || o.codename != "Goldmont" || !o.verbose {
					t.Errorf("unexpected options: %+v", o)
				}
			},
		},
		{
			name: "short input",
			args: []string{"-i", "-"},
			check: func(t *testing.T, o *reportOpts) {
				if o.input != "-" {
					t.Errorf("input = %q, want -", o.input)
				}
			},
		},
		{
			name: "signed dataset",
			args: []string{"--dataset", "ids.yaml", "--dataset-sig", "ids.yaml.asc", "--keyring", "key.asc"},
			check: func(t *testing.T, o *reportOpts) {
				if o.datasetPath != "ids.yaml" || o.datasetSig != "ids.yaml.asc" || o.keyring != "key.asc" {
					t.Errorf("unexpected options: %+v", o)
				}
			},
		},
		{name: "missing value", args: []string{"--input"}, wantErr: true},
		{name: "missing macos value", args: []string{"--macos"}, wantErr: true},
		{name: "unknown flag", args: []string{"--bogus"}, wantErr: true},
		{name: "signature without dataset", args: []string{"--dataset-sig", "x.asc", "--keyring", "k"}, wantErr: true},
		{name: "signature without keyring", args: []string{"--dataset", "d", "--dataset-sig", "x.asc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseReportArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseReportArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && err == nil {
				tt.check(t, opts)
			}
		})
	}
}

func TestParseReportArgs_EnvDefaults(t *testing.T) {
	isolateEnv(t)
	t.Setenv(EnvRules, "/etc/chromespoof/rules.lua")
	t.Setenv(EnvDataset, "/etc/chromespoof/ids.yaml")
	t.Setenv(EnvKeyring, "/etc/chromespoof/key.asc")
	t.Setenv(EnvDebug, "1")

	opts, err := parseReportArgs([]string{"--rules", "mine.lua"})
	if err != nil {
		t.Fatalf("parseReportArgs() error = %v", err)
	}
	if opts.rulesPath != "mine.lua" {
		t.Errorf("flag should override env: rulesPath = %q", opts.rulesPath)
	}
	if opts.datasetPath != "/etc/chromespoof/ids.yaml" || opts.keyring != "/etc/chromespoof/key.asc" {
		t.Errorf("env defaults not applied: %+v", opts.sourceOpts)
	}
	if !opts.verbose {
		t.Error("verbose should follow CHROMESPOOF_DEBUG")
	}
}

func TestParseCollectArgs(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name       string
		args       []string
		wantFormat string
		wantErr    bool
	}{
		{name: "default json", args: nil, wantFormat: "json"},
		{name: "explicit yaml", args: []string{"--format", "yaml"}, wantFormat: "yaml"},
		{name: "from output extension", args: []string{"-o", "hw.yml"}, wantFormat: "yaml"},
		{name: "explicit wins over extension", args: []string{"--format=json", "--output=hw.yaml"}, wantFormat: "json"},
		{name: "bad format", args: []string{"--format", "xml"}, wantErr: true},
		{name: "unknown flag", args: []string{"--input", "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseCollectArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCollectArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && string(opts.format) != tt.wantFormat {
				t.Errorf("format = %q, want %q", opts.format, tt.wantFormat)
			}
		})
	}
}

func TestResolveRulesPath(t *testing.T) {
	dir := isolateEnv(t)

	if got := resolveRulesPath("explicit.lua"); got != "explicit.lua" {
		t.Errorf("resolveRulesPath(explicit) = %q", got)
	}
	if got := resolveRulesPath(""); got != "" {
		t.Errorf("resolveRulesPath() without config file = %q, want empty", got)
	}

	path := filepath.Join(dir, rulesFileName)
	if err := os.WriteFile(path, []byte("rules = {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := resolveRulesPath(""); got != path {
		t.Errorf("resolveRulesPath() = %q, want %q", got, path)
	}
}

func TestIsTruthy(t *testing.T) {
	for in, want := range map[string]bool{"1": true, "true": true, "YES": true, "on": true, "0": false, "": false, "no": false} {
		if got := isTruthy(in); got != want {
			t.Errorf("isTruthy(%q) = %v, want %v", in, got, want)
		}
	}
}
