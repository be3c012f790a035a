// Package hwreport defines the hardware inventory record consumed by the
// spoof engine and reads it from the JSON or YAML reports produced by
// hardware collectors.
//
// The wire format uses the collector's section and field names verbatim
// ("Motherboard", "System Devices", "GPU", "CPU", "Device ID", ...). Named
// sections are mappings in the document; their order is preserved so that
// diagnostics list devices in the order the collector enumerated them.
//
// Decoding is lenient by design of the format: a missing section, a missing
// field or a field of the wrong type decodes to the zero value. Only a
// document that is not valid JSON/YAML at all is reported as an error.
package hwreport
