package hwreport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Encode writes the record in the given format. Section order and entry
// order are preserved, so Decode(Encode(r)) yields an equal record.
func Encode(w io.Writer, rec *Record, format Format) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, rec)
	case FormatYAML:
		return encodeYAML(w, rec)
	default:
		return fmt.Errorf("unsupported report format: %q", format)
	}
}

func encodeJSON(w io.Writer, rec *Record) error {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeKey(&buf, SectionMotherboard)
	writeObject(&buf, FieldName, rec.Motherboard.Name)
	buf.WriteByte(',')

	writeKey(&buf, SectionDevices)
	buf.WriteByte('{')
	for i, d := range rec.Devices {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(&buf, d.Name)
		writeObject(&buf, FieldDeviceID, d.DeviceID, FieldSubsystemID, d.SubsystemID)
	}
	buf.WriteString("},")

	writeKey(&buf, SectionGPU)
	buf.WriteByte('{')
	for i, g := range rec.GPUs {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(&buf, g.Name)
		writeObject(&buf,
			FieldManufacturer, g.Manufacturer,
			FieldDeviceID, g.DeviceID,
			FieldDeviceType, g.DeviceType)
	}
	buf.WriteString("},")

	writeKey(&buf, SectionCPU)
	writeObject(&buf, FieldProcessorName, rec.CPU.ProcessorName, FieldCodename, rec.CPU.Codename)
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "    "); err != nil {
		return fmt.Errorf("format JSON report: %w", err)
	}
	out.WriteByte('\n')
	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

func writeKey(buf *bytes.Buffer, key string) {
	writeString(buf, key)
	buf.WriteByte(':')
}

// writeObject writes a flat object from alternating key/value strings.
func writeObject(buf *bytes.Buffer, kv ...string) {
	buf.WriteByte('{')
	for i := 0; i+1 < len(kv); i += 2 {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(buf, kv[i])
		writeString(buf, kv[i+1])
	}
	buf.WriteByte('}')
}

func writeString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s) // string marshaling cannot fail
	buf.Write(b)
}

func encodeYAML(w io.Writer, rec *Record) error {
	root := &yaml.Node{Kind: yaml.MappingNode}

	addPair(root, SectionMotherboard, mapping(FieldName, rec.Motherboard.Name))

	devices := &yaml.Node{Kind: yaml.MappingNode}
	for _, d := range rec.Devices {
		addPair(devices, d.Name, mapping(FieldDeviceID, d.DeviceID, FieldSubsystemID, d.SubsystemID))
	}
	addPair(root, SectionDevices, devices)

	gpus := &yaml.Node{Kind: yaml.MappingNode}
	for _, g := range rec.GPUs {
		addPair(gpus, g.Name, mapping(
			FieldManufacturer, g.Manufacturer,
			FieldDeviceID, g.DeviceID,
			FieldDeviceType, g.DeviceType))
	}
	addPair(root, SectionGPU, gpus)

	addPair(root, SectionCPU, mapping(FieldProcessorName, rec.CPU.ProcessorName, FieldCodename, rec.CPU.Codename))

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("write YAML report: %w", err)
	}
	return enc.Close()
}

func mapping(kv ...string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(kv); i += 2 {
		addPair(n, kv[i], str(kv[i+1]))
	}
	return n
}

func addPair(n *yaml.Node, key string, value *yaml.Node) {
	n.Content = append(n.Content, str(key), value)
}

// str builds a string scalar. The explicit tag keeps values such as
// "0A06" or "yes" from being re-typed on decode.
func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
