package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// PCIDevice describes a fake /sys/bus/pci/devices entry. Empty fields are
// not written.
type PCIDevice struct {
	Slot            string // e.g. "0000:00:02.0"
	Class           string // e.g. "0x030000"
	Vendor          string // e.g. "0x8086"
	Device          string // e.g. "0x3185"
	SubsystemVendor string
	SubsystemDevice string
}

// NewSysfs writes a fake sysfs tree with the given DMI values (file name
// to content, e.g. "board_vendor": "GOOGLE") and PCI devices, and returns
// its root.
func NewSysfs(t *testing.T, dmi map[string]string, devices []PCIDevice) string {
	t.Helper()
	root := t.TempDir()

	dmiDir := filepath.Join(root, "sys", "class", "dmi", "id")
	mkdir(t, dmiDir)
	for name, value := range dmi {
		writeFile(t, filepath.Join(dmiDir, name), value)
	}

	for _, d := range devices {
		dir := filepath.Join(root, "sys", "bus", "pci", "devices", d.Slot)
		mkdir(t, dir)
		files := map[string]string{
			"class":            d.Class,
			"vendor":           d.Vendor,
			"device":           d.Device,
			"subsystem_vendor": d.SubsystemVendor,
			"subsystem_device": d.SubsystemDevice,
		}
		for name, value := range files {
			if value != "" {
				writeFile(t, filepath.Join(dir, name), value)
			}
		}
	}
	return root
}

func mkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path, value string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(value+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
