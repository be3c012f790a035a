package hwreport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a report serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// MaxReportSize bounds the size of a report read from disk or a stream.
const MaxReportSize = 16 << 20

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format: %q (expected json or yaml)", s)
	}
}

// FormatFromPath guesses the format from a file extension. Anything that
// is not .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads a hardware report from a file.
func Load(path string) (*Record, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open hardware report: %w", err)
	}
	defer f.Close()

	rec, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return rec, nil
}

// Decode reads a hardware report in the given format.
func Decode(r io.Reader, format Format) (*Record, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxReportSize+1))
	if err != nil {
		return nil, fmt.Errorf("read hardware report: %w", err)
	}
	if len(data) > MaxReportSize {
		return nil, fmt.Errorf("hardware report too large (max %d bytes)", MaxReportSize)
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported report format: %q", format)
	}
}

func decodeJSON(data []byte) (*Record, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parse JSON report: %w", err)
	}

	rec := &Record{}
	if raw, ok := top[SectionMotherboard]; ok {
		rec.Motherboard.Name = jsonFields(raw)[FieldName]
	}
	if raw, ok := top[SectionCPU]; ok {
		f := jsonFields(raw)
		rec.CPU = CPU{ProcessorName: f[FieldProcessorName], Codename: f[FieldCodename]}
	}
	if raw, ok := top[SectionDevices]; ok {
		eachJSONEntry(raw, func(name string, value json.RawMessage) {
			f := jsonFields(value)
			rec.Devices = putDevice(rec.Devices, Device{
				Name:        name,
				DeviceID:    f[FieldDeviceID],
				SubsystemID: f[FieldSubsystemID],
			})
		})
	}
	if raw, ok := top[SectionGPU]; ok {
		eachJSONEntry(raw, func(name string, value json.RawMessage) {
			f := jsonFields(value)
			rec.GPUs = putGPU(rec.GPUs, GPU{
				Name:         name,
				Manufacturer: f[FieldManufacturer],
				DeviceID:     f[FieldDeviceID],
				DeviceType:   f[FieldDeviceType],
			})
		})
	}
	return rec, nil
}

// jsonFields returns the string-valued members of a JSON object.
// Non-object input and non-string members are ignored.
func jsonFields(raw json.RawMessage) map[string]string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
		}
	}
	return out
}

// eachJSONEntry walks the members of a JSON object in document order.
func eachJSONEntry(raw json.RawMessage, fn func(name string, value json.RawMessage)) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		key, ok := tok.(string)
		if !ok {
			return
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return
		}
		fn(key, value)
	}
}

func decodeYAML(data []byte) (*Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML report: %w", err)
	}

	rec := &Record{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// empty document
		return rec, nil
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse YAML report: top level must be a mapping, got %s", kindName(root.Kind))
	}

	eachYAMLEntry(root, func(section string, value *yaml.Node) {
		switch section {
		case SectionMotherboard:
			rec.Motherboard.Name = yamlFields(value)[FieldName]
		case SectionCPU:
			f := yamlFields(value)
			rec.CPU = CPU{ProcessorName: f[FieldProcessorName], Codename: f[FieldCodename]}
		case SectionDevices:
			eachYAMLEntry(value, func(name string, entry *yaml.Node) {
				f := yamlFields(entry)
				rec.Devices = putDevice(rec.Devices, Device{
					Name:        name,
					DeviceID:    f[FieldDeviceID],
					SubsystemID: f[FieldSubsystemID],
				})
			})
		case SectionGPU:
			eachYAMLEntry(value, func(name string, entry *yaml.Node) {
				f := yamlFields(entry)
				rec.GPUs = putGPU(rec.GPUs, GPU{
					Name:         name,
					Manufacturer: f[FieldManufacturer],
					DeviceID:     f[FieldDeviceID],
					DeviceType:   f[FieldDeviceType],
				})
			})
		}
	})
	return rec, nil
}

func eachYAMLEntry(n *yaml.Node, fn func(key string, value *yaml.Node)) {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolveAlias(n.Content[i])
		if key.Kind != yaml.ScalarNode {
			continue
		}
		fn(key.Value, resolveAlias(n.Content[i+1]))
	}
}

// yamlFields returns the scalar members of a YAML mapping. Nulls and
// nested collections are ignored.
func yamlFields(n *yaml.Node) map[string]string {
	out := map[string]string{}
	eachYAMLEntry(n, func(key string, value *yaml.Node) {
		if value.Kind == yaml.ScalarNode && value.Tag != "!!null" {
			out[key] = value.Value
		}
	})
	return out
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "mapping"
	default:
		return "unknown"
	}
}

// putDevice appends d, or replaces an earlier entry of the same name
// (later keys win, as with a plain map decode).
func putDevice(devices []Device, d Device) []Device {
	for i := range devices {
		if devices[i].Name == d.Name {
			devices[i] = d
			return devices
		}
	}
	return append(devices, d)
}

func putGPU(gpus []GPU, g GPU) []GPU {
	for i := range gpus {
		if gpus[i].Name == g.Name {
			gpus[i] = g
			return gpus
		}
	}
	return append(gpus, g)
}
