package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/logging"
)

// Environment variables.
const (
	EnvRules     = "CHROMESPOOF_RULES"
	EnvDataset   = "CHROMESPOOF_DATASET"
	EnvKeyring   = "CHROMESPOOF_KEYRING"
	EnvDebug     = "CHROMESPOOF_DEBUG"
	EnvConfigDir = "CHROMESPOOF_CONFIG_DIR"
)

// rulesFileName is looked up in the config directory when no rules file
// is given.
const rulesFileName = "rules.lua"

// sourceOpts selects the inputs shared by report and detect.
type sourceOpts struct {
	input       string // hardware report file, "-" for stdin, "" to collect
	codename    string
	rulesPath   string
	datasetPath string
	datasetSig  string
	keyring     string
	verbose     bool
}

func defaultSourceOpts() sourceOpts {
	return sourceOpts{
		rulesPath:   os.Getenv(EnvRules),
		datasetPath: os.Getenv(EnvDataset),
		keyring:     os.Getenv(EnvKeyring),
		verbose:     isTruthy(os.Getenv(EnvDebug)),
	}
}

// parseSourceFlag consumes one shared flag at args[*i]. It reports false
// when the flag is not a shared one.
func (o *sourceOpts) parseSourceFlag(args []string, i *int) (bool, error) {
	name, value, hasValue := strings.Cut(args[*i], "=")

	target := map[string]*string{
		"--input":       &o.input,
		"--codename":    &o.codename,
		"--rules":       &o.rulesPath,
		"--dataset":     &o.datasetPath,
		"--dataset-sig": &o.datasetSig,
		"--keyring":     &o.keyring,
	}

	switch name {
	case "--verbose", "-v":
		o.verbose = true
		return true, nil
	case "-i":
		name = "--input"
	}

	dst, ok := target[name]
	if !ok {
		return false, nil
	}
	if !hasValue {
		if *i+1 >= len(args) {
			return true, fmt.Errorf("option %s requires a value", name)
		}
		*i++
		value = args[*i]
	}
	*dst = value
	return true, nil
}

func (o *sourceOpts) validate() error {
	if o.datasetSig != "" {
		if o.datasetPath == "" {
			return fmt.Errorf("--dataset-sig requires --dataset")
		}
		if o.keyring == "" {
			return fmt.Errorf("--dataset-sig requires --keyring (or %s)", EnvKeyring)
		}
	}
	return nil
}

// flagValue returns the value of a "--name VALUE" or "--name=VALUE" flag
// at args[*i], advancing i past a separate value.
func flagValue(args []string, i *int) (string, error) {
	name, value, hasValue := strings.Cut(args[*i], "=")
	if hasValue {
		return value, nil
	}
	if *i+1 >= len(args) {
		return "", fmt.Errorf("option %s requires a value", name)
	}
	*i++
	return args[*i], nil
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// getConfigDir returns the chromespoof configuration directory.
func getConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "chromespoof"), nil
}

// resolveRulesPath returns the rules file to load: the explicit path, or
// the config directory's rules.lua when it exists, or "" for the built-in
// rules.
func resolveRulesPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir, err := getConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, rulesFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// newLogger returns a stderr logger when verbose, otherwise a no-op.
func newLogger(verbose bool) logging.Logger {
	if !verbose {
		return logging.Nop()
	}
	return logging.New(os.Stderr, logging.LevelDebug)
}
