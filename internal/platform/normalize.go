package platform

import (
	"strconv"
	"strings"
)

// vendorNames maps PCI vendor IDs to manufacturer names.
var vendorNames = map[string]string{
	"0x8086": "Intel",
	"0x1002": "AMD",
	"0x10de": "NVIDIA",
	"0x1ae0": "Google",
	"0x10ec": "Realtek",
	"0x168c": "Qualcomm Atheros",
	"0x14e4": "Broadcom",
}

// classNames maps PCI class+subclass codes (top 16 bits) to device names.
var classNames = map[string]string{
	"0x0100": "SCSI Storage Controller",
	"0x0106": "SATA Controller",
	"0x0108": "NVMe Controller",
	"0x0200": "Ethernet Controller",
	"0x0280": "Network Controller",
	"0x0300": "VGA Compatible Controller",
	"0x0302": "3D Controller",
	"0x0380": "Display Controller",
	"0x0401": "Audio Device",
	"0x0403": "Audio Controller",
	"0x0500": "RAM Memory",
	"0x0580": "Memory Controller",
	"0x0600": "Host Bridge",
	"0x0601": "ISA Bridge",
	"0x0604": "PCI Bridge",
	"0x0780": "Communication Controller",
	"0x0880": "System Peripheral",
	"0x0c03": "USB Controller",
	"0x0c05": "SMBus Controller",
	"0x0c80": "Serial IO Controller",
	"0x1180": "Signal Processing Controller",
}

// intelCodenames maps Intel family 6 model numbers to codenames understood
// by the processor rules.
var intelCodenames = map[int]string{
	0x3C: "Haswell",
	0x3F: "Haswell",
	0x45: "Haswell",
	0x46: "Haswell",
	0x3D: "Broadwell",
	0x47: "Broadwell",
	0x4E: "Skylake",
	0x5E: "Skylake",
	0x8E: "Kaby Lake",
	0x9E: "Kaby Lake",
	0x5C: "Apollo Lake",
	0x7A: "Gemini Lake",
	0xA5: "Comet Lake",
	0xA6: "Comet Lake",
	0x7D: "Ice Lake",
	0x7E: "Ice Lake",
}

// pciID combines sysfs vendor and device values ("0x8086", "0x5a85") into
// the "8086-5A85" form. It returns "" if either part is malformed.
func pciID(vendor, device string) string {
	v, ok := hex4(vendor)
	if !ok {
		return ""
	}
	d, ok := hex4(device)
	if !ok {
		return ""
	}
	return v + "-" + d
}

func hex4(s string) (string, bool) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if len(s) != 4 {
		return "", false
	}
	if _, err := strconv.ParseUint(s, 16, 16); err != nil {
		return "", false
	}
	return strings.ToUpper(s), true
}

// classPrefix returns the class+subclass part of a sysfs class value.
func classPrefix(class string) string {
	class = strings.ToLower(strings.TrimSpace(class))
	if len(class) < 6 {
		return ""
	}
	return class[:6]
}

// className returns a readable name for a PCI class value.
func className(class string) string {
	if name, ok := classNames[classPrefix(class)]; ok {
		return name
	}
	return "PCI Device"
}

// isDisplayController reports whether a class value is a display
// controller (base class 0x03).
func isDisplayController(class string) bool {
	return strings.HasPrefix(classPrefix(class), "0x03")
}

// vendorName returns the manufacturer for a PCI vendor ID.
func vendorName(vendor string) string {
	vendor = strings.ToLower(strings.TrimSpace(vendor))
	if name, ok := vendorNames[vendor]; ok {
		return name
	}
	return "Unknown"
}

// isRootBus reports whether a slot like "0000:00:02.0" is on bus 00.
func isRootBus(slot string) bool {
	parts := strings.Split(slot, ":")
	return len(parts) == 3 && parts[1] == "00"
}

// gpuType classifies a display controller. Intel graphics on the root bus
// are integrated; everything else is treated as discrete.
func gpuType(vendor, slot string) string {
	if vendorName(vendor) == "Intel" && isRootBus(slot) {
		return DeviceTypeIntegrated
	}
	return DeviceTypeDiscrete
}

// codename infers a codename from the vendor, family and model fields
// reported for the CPU. Only Intel family 6 models are known.
func codename(vendorID, family, model string) string {
	if strings.TrimSpace(vendorID) != "GenuineIntel" || strings.TrimSpace(family) != "6" {
		return ""
	}
	m, err := strconv.ParseInt(strings.TrimSpace(model), 0, 32)
	if err != nil {
		return ""
	}
	return intelCodenames[int(m)]
}

// cleanDMI trims a DMI value and drops firmware placeholders.
func cleanDMI(s string) string {
	s = strings.TrimSpace(s)
	switch s {
	case "To be filled by O.E.M.", "Default string", "Not Applicable":
		return ""
	}
	return s
}
