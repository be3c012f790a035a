package platform

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	dmiDir        = "sys/class/dmi/id"
	pciDevicesDir = "sys/bus/pci/devices"
)

func readTrimmed(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readDMIField returns the first usable value among the named DMI files.
func readDMIField(root string, names ...string) string {
	for _, name := range names {
		if v := cleanDMI(readTrimmed(filepath.Join(root, dmiDir, name))); v != "" {
			return v
		}
	}
	return ""
}

// readMotherboard returns "<vendor> <board>" from DMI, e.g.
// "GOOGLE Octopus". Either part may be missing.
func readMotherboard(root string) string {
	vendor := readDMIField(root, "board_vendor", "sys_vendor")
	board := readDMIField(root, "board_name", "product_name")
	return strings.TrimSpace(vendor + " " + board)
}

// scanPCI lists PCI devices sorted by slot. Entries without a readable
// vendor/device pair are skipped.
func scanPCI(root string) []pciDevice {
	pattern := filepath.Join(root, pciDevicesDir, "*")
	dirs, err := filepath.Glob(pattern)
	if err != nil || len(dirs) == 0 {
		return nil
	}
	sort.Strings(dirs)

	devices := make([]pciDevice, 0, len(dirs))
	for _, dir := range dirs {
		vendor := readTrimmed(filepath.Join(dir, "vendor"))
		id := pciID(vendor, readTrimmed(filepath.Join(dir, "device")))
		if id == "" {
			continue
		}

		devices = append(devices, pciDevice{
			Slot:     filepath.Base(dir),
			Class:    readTrimmed(filepath.Join(dir, "class")),
			DeviceID: id,
			SubsystemID: pciID(
				readTrimmed(filepath.Join(dir, "subsystem_vendor")),
				readTrimmed(filepath.Join(dir, "subsystem_device")),
			),
			Vendor: vendor,
		})
	}
	return devices
}
