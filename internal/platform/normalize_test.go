package platform

import (
	"testing"
)

func TestPCIID(t *testing.T) {
	tests := []struct {
		vendor, device, want string
	}{
		{"0x8086", "0x5a85", "8086-5A85"},
		{"0x1AE0", "0x0A04", "1AE0-0A04"},
		{" 0x8086\n", "0x31ac", "8086-31AC"},
		{"8086", "3185", "8086-3185"},
		{"0x8086", "", ""},
		{"0x808", "0x5a85", ""},
		{"0xzzzz", "0x5a85", ""},
		{"0x8086", "0x15a85", ""},
	}

	for _, tt := range tests {
		if got := pciID(tt.vendor, tt.device); got != tt.want {
			t.Errorf("pciID(%q, %q) = %q, want %q", tt.vendor, tt.device, got, tt.want)
		}
	}
}

func TestClassName(t *testing.T) {
	tests := []struct {
		class, want string
	}{
		{"0x060000", "Host Bridge"},
		{"0x030000", "VGA Compatible Controller"},
		{"0x0C0330", "USB Controller"},
		{"0xff0000", "PCI Device"},
		{"0x06", "PCI Device"},
	}

	for _, tt := range tests {
		if got := className(tt.class); got != tt.want {
			t.Errorf("className(%q) = %q, want %q", tt.class, got, tt.want)
		}
	}
}

func TestIsDisplayController(t *testing.T) {
	for class, want := range map[string]bool{
		"0x030000": true,
		"0x030200": true,
		"0x038000": true,
		"0x040300": false,
		"":         false,
	} {
		if got := isDisplayController(class); got != want {
			t.Errorf("isDisplayController(%q) = %v, want %v", class, got, want)
		}
	}
}

func TestGPUType(t *testing.T) {
	tests := []struct {
		vendor, slot, want string
	}{
		{"0x8086", "0000:00:02.0", DeviceTypeIntegrated},
		{"0x8086", "0000:03:00.0", DeviceTypeDiscrete},
		{"0x1002", "0000:00:01.0", DeviceTypeDiscrete},
		{"0x8086", "garbage", DeviceTypeDiscrete},
	}

	for _, tt := range tests {
		if got := gpuType(tt.vendor, tt.slot); got != tt.want {
			t.Errorf("gpuType(%q, %q) = %q, want %q", tt.vendor, tt.slot, got, tt.want)
		}
	}
}

func TestCodename(t *testing.T) {
	tests := []struct {
		name                  string
		vendor, family, model string
		want                  string
	}{
		{"gemini lake decimal", "GenuineIntel", "6", "122", "Gemini Lake"},
		{"apollo lake hex", "GenuineIntel", "6", "0x5c", "Apollo Lake"},
		{"haswell", "GenuineIntel", "6", "69", "Haswell"},
		{"ice lake", "GenuineIntel", "6", "126", "Ice Lake"},
		{"unknown model", "GenuineIntel", "6", "1", ""},
		{"amd", "AuthenticAMD", "23", "24", ""},
		{"intel other family", "GenuineIntel", "15", "122", ""},
		{"bad model", "GenuineIntel", "6", "x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codename(tt.vendor, tt.family, tt.model); got != tt.want {
				t.Errorf("codename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanDMI(t *testing.T) {
	for in, want := range map[string]string{
		"  GOOGLE \n":            "GOOGLE",
		"To be filled by O.E.M.": "",
		"Default string":         "",
		"":                       "",
	} {
		if got := cleanDMI(in); got != want {
			t.Errorf("cleanDMI(%q) = %q, want %q", in, got, want)
		}
	}
}
