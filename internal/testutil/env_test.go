package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetupTestEnv(t *testing.T) {
	t.Setenv("CHROMESPOOF_RULES", "/home/user/rules.lua")

	dir := SetupTestEnv(t)

	if got := os.Getenv("CHROMESPOOF_CONFIG_DIR"); got != dir {
		t.Errorf("CHROMESPOOF_CONFIG_DIR = %q, want %q", got, dir)
	}
	if got := os.Getenv("CHROMESPOOF_RULES"); got != "" {
		t.Errorf("CHROMESPOOF_RULES = %q, want empty", got)
	}
	if _, ok := os.LookupEnv("NO_COLOR"); !ok {
		t.Error("NO_COLOR should be set")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("config dir not created: %v", err)
	}
}

func TestNewSysfs(t *testing.T) {
	root := NewSysfs(t,
		map[string]string{"board_vendor": "GOOGLE"},
		[]PCIDevice{{Slot: "0000:00:02.0", Class: "0x030000", Vendor: "0x8086", Device: "0x3185"}},
	)

	data, err := os.ReadFile(filepath.Join(root, "sys", "class", "dmi", "id", "board_vendor"))
	if err != nil || string(data) != "GOOGLE\n" {
		t.Errorf("board_vendor = %q, %v", data, err)
	}

	dev := filepath.Join(root, "sys", "bus", "pci", "devices", "0000:00:02.0")
	if _, err := os.Stat(filepath.Join(dev, "device")); err != nil {
		t.Errorf("device file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dev, "subsystem_vendor")); !os.IsNotExist(err) {
		t.Errorf("empty subsystem_vendor should not be written, stat err = %v", err)
	}
}
