package spoof

import (
	"bytes"
	"encoding/json"
)

// Device is a system device that matched the reference dataset.
type Device struct {
	Name        string `json:"name"`
	DeviceID    string `json:"device_id"`
	SubsystemID string `json:"subsystem_id"`
}

// Detection is the outcome of platform detection.
type Detection struct {
	IsChromebook bool     `json:"is_chromebook"`
	Motherboard  string   `json:"motherboard"`
	Devices      []Device `json:"chromebook_devices"`
}

// GraphicsSubstitution is the substitute identity for one iGPU. Its JSON
// form is written by MarshalJSON because the platform-id key contains a
// comma, which struct tags cannot express.
type GraphicsSubstitution struct {
	Generation       string
	OriginalDeviceID string
	DeviceID         string
	PlatformID       string
	Reason           string
}

// JSON keys of a GraphicsSubstitution, in encoding order.
const (
	KeyGeneration       = "generation"
	KeyOriginalDeviceID = "original_device_id"
	KeyDeviceID         = "spoofed_device_id"
	KeyPlatformID       = "AAPL,ig-platform-id"
	KeyReason           = "reason"
)

// MarshalJSON implements json.Marshaler.
func (g GraphicsSubstitution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range [][2]string{
		{KeyGeneration, g.Generation},
		{KeyOriginalDeviceID, g.OriginalDeviceID},
		{KeyDeviceID, g.DeviceID},
		{KeyPlatformID, g.PlatformID},
		{KeyReason, g.Reason},
	} {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kv[0])
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(kv[1])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Unknown keys are ignored.
func (g *GraphicsSubstitution) UnmarshalJSON(data []byte) error {
	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*g = GraphicsSubstitution{
		Generation:       fields[KeyGeneration],
		OriginalDeviceID: fields[KeyOriginalDeviceID],
		DeviceID:         fields[KeyDeviceID],
		PlatformID:       fields[KeyPlatformID],
		Reason:           fields[KeyReason],
	}
	return nil
}

// ProcessorSubstitution is the substitute identity for the CPU. Model and
// CPUID are set only when NeedsSubstitution is true.
type ProcessorSubstitution struct {
	NeedsSubstitution bool   `json:"needs_spoofing"`
	OriginalCPU       string `json:"original_cpu"`
	Reason            string `json:"reason"`
	Model             string `json:"spoof_as,omitempty"`
	CPUID             string `json:"cpuid_data,omitempty"`
	// Generic is set when the codename was not recognized and the
	// fallback identity was used.
	Generic bool `json:"generic_fallback,omitempty"`
}

// Report aggregates detection and substitutions. When IsChromebook is
// false, Graphics is empty, Processor is the zero value and there are no
// recommendations.
type Report struct {
	IsChromebook    bool                            `json:"is_chromebook"`
	Detection       Detection                       `json:"chromebook_info"`
	Graphics        map[string]GraphicsSubstitution `json:"igpu_spoofing"`
	Processor       ProcessorSubstitution           `json:"cpu_spoofing"`
	Recommendations []string                        `json:"recommendations"`
}

// Recommendation texts, in report order.
const (
	RecommendQuirk        = "Chromebook detected - ProtectMemoryRegions quirk will be enabled"
	RecommendGraphics     = "iGPU spoofing required for proper graphics acceleration"
	RecommendCPUFormat    = "CPU will be spoofed as %s"
	RecommendWriteProtect = "Ensure you have disabled firmware write protection before installation"
	RecommendACPI         = "ChromeOS firmware may require additional ACPI patches"
)

// LowEndReason is the processor substitution reason.
const LowEndReason = "low-end processor family detected"
