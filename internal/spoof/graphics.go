package spoof

import (
	"strings"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/hwreport"
)

// canonicalIDLength is the length of a "VVVV-DDDD" device ID.
const canonicalIDLength = 9

// generationID returns the trailing four characters of a device ID in
// canonical or longer form. Shorter IDs are returned unchanged.
func generationID(deviceID string) string {
	if len(deviceID) >= canonicalIDLength {
		return deviceID[len(deviceID)-4:]
	}
	return deviceID
}

// isIntelIntegrated reports whether the GPU qualifies for substitution.
// Both checks are case-sensitive.
func isIntelIntegrated(g hwreport.GPU) bool {
	return strings.Contains(g.Manufacturer, "Intel") && strings.Contains(g.DeviceType, "Integrated")
}

// ResolveGraphics returns a substitution for every Intel integrated GPU
// whose device ID matches a graphics rule, keyed by GPU name. GPUs that do
// not qualify or match no rule are omitted.
func (e *Engine) ResolveGraphics(rec *hwreport.Record) map[string]GraphicsSubstitution {
	rec = orEmpty(rec)

	out := make(map[string]GraphicsSubstitution)
	for _, g := range rec.GPUs {
		if !isIntelIntegrated(g) {
			continue
		}

		id := generationID(g.DeviceID)
		rule, ok := e.rules.MatchGraphics(id)
		if !ok {
			e.logger.Debug("no graphics rule for iGPU", "gpu", g.Name, "device_id", g.DeviceID)
			continue
		}

		out[g.Name] = GraphicsSubstitution{
			Generation:       rule.Generation,
			OriginalDeviceID: g.DeviceID,
			DeviceID:         rule.DeviceID,
			PlatformID:       rule.PlatformID,
			Reason:           rule.Reason,
		}
	}
	return out
}
