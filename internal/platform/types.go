// Package platform collects a hardware record from the running machine.
//
// The processor comes from gopsutil; the motherboard name from the DMI
// tables under /sys/class/dmi/id; system devices and display controllers
// from /sys/bus/pci/devices. Every source is optional: when one is missing
// (non-Linux hosts, containers, restricted sysfs) the matching fields are
// left empty and collection continues.
package platform

import (
	"context"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/hwreport"
)

// GPU device types.
const (
	DeviceTypeIntegrated = "Integrated GPU"
	DeviceTypeDiscrete   = "Discrete GPU"
)

// Collector is the interface for hardware inventory collection.
type Collector interface {
	Collect(ctx context.Context) (*hwreport.Record, error)
}

// pciDevice is one entry under /sys/bus/pci/devices.
type pciDevice struct {
	Slot        string // e.g. "0000:00:02.0"
	Class       string // e.g. "0x030000"
	DeviceID    string // "VVVV-DDDD"
	SubsystemID string // "VVVV-DDDD", empty when unavailable
	Vendor      string // raw vendor ID, e.g. "0x8086"
}
