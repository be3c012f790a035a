package pcidata

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed chromebook_ids.yaml
var seedTable []byte

// MaxEntries bounds the number of device IDs in a dataset file.
const MaxEntries = 100000

// Dataset maps device IDs to the set of qualifying subsystem IDs.
type Dataset struct {
	version string
	ids     map[string]map[string]struct{}
}

// bundle is the on-disk dataset layout. JSON files are read through the
// same YAML decoder.
type bundle struct {
	Version     string              `yaml:"version"`
	Description string              `yaml:"description"`
	IDs         map[string][]string `yaml:"ids"`
}

// pciIDPattern matches "VVVV-DDDD" hex IDs.
var pciIDPattern = regexp.MustCompile(`^[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}$`)

// New builds a dataset from a device ID -> subsystem IDs mapping.
// The input is copied.
func New(ids map[string][]string) *Dataset {
	d := &Dataset{ids: make(map[string]map[string]struct{}, len(ids))}
	for dev, subs := range ids {
		set := make(map[string]struct{}, len(subs))
		for _, s := range subs {
			set[s] = struct{}{}
		}
		d.ids[dev] = set
	}
	return d
}

var (
	defaultOnce    sync.Once
	defaultDataset *Dataset
)

// Default returns the embedded seed dataset. It is parsed once.
func Default() *Dataset {
	defaultOnce.Do(func() {
		ds, err := Parse(seedTable)
		if err != nil {
			panic(fmt.Sprintf("pcidata: embedded table is invalid: %v", err))
		}
		defaultDataset = ds
	})
	return defaultDataset
}

// Load reads a dataset file (YAML or JSON).
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes and validates a dataset document.
func Parse(data []byte) (*Dataset, error) {
	var b bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	ds := New(b.IDs)
	ds.version = strings.TrimSpace(b.Version)
	return ds, nil
}

func (b *bundle) validate() error {
	if len(b.IDs) == 0 {
		return &ValidationError{Field: "ids", Message: "dataset is empty"}
	}
	if len(b.IDs) > MaxEntries {
		return &ValidationError{
			Field:   "ids",
			Message: fmt.Sprintf("too many entries (%d), maximum is %d", len(b.IDs), MaxEntries),
		}
	}
	for dev, subs := range b.IDs {
		if !pciIDPattern.MatchString(dev) {
			return &ValidationError{Field: "ids", Message: fmt.Sprintf("invalid device ID %q (expected VVVV-DDDD)", dev)}
		}
		if len(subs) == 0 {
			return &ValidationError{Field: "ids." + dev, Message: "no subsystem IDs listed"}
		}
		for i, s := range subs {
			if !pciIDPattern.MatchString(s) {
				return &ValidationError{
					Field:   fmt.Sprintf("ids.%s[%d]", dev, i),
					Message: fmt.Sprintf("invalid subsystem ID %q (expected VVVV-DDDD)", s),
				}
			}
		}
	}
	return nil
}

// Match reports whether the device/subsystem pair identifies a Chromebook.
// A nil dataset matches nothing.
func (d *Dataset) Match(deviceID, subsystemID string) bool {
	if d == nil {
		return false
	}
	subs, ok := d.ids[deviceID]
	if !ok {
		return false
	}
	_, ok = subs[subsystemID]
	return ok
}

// Subsystems returns the sorted subsystem IDs listed for a device ID.
func (d *Dataset) Subsystems(deviceID string) []string {
	if d == nil {
		return nil
	}
	subs := d.ids[deviceID]
	out := make([]string, 0, len(subs))
	for s := range subs {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of device IDs in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.ids)
}

// Version returns the dataset version string, if the file declared one.
func (d *Dataset) Version() string {
	if d == nil {
		return ""
	}
	return d.version
}

// ValidationError reports an invalid dataset document.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dataset validation failed for " + e.Field + ": " + e.Message
	}
	return "dataset validation failed: " + e.Message
}
