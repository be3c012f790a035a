package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/spoof"
)

const separator = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// Title is the report heading.
const Title = "Chromebook Detection"

// Formatter renders reports as text.
type Formatter struct {
	th theme
}

// NewFormatter returns a formatter for output written to w. When color is
// false the output contains no escape sequences.
func NewFormatter(w io.Writer, color bool) *Formatter {
	if !color {
		return &Formatter{th: plainTheme}
	}
	return &Formatter{th: newColorTheme(w)}
}

// FormatReport renders a report as plain text.
func FormatReport(r spoof.Report) string {
	return NewFormatter(nil, false).Format(r)
}

// Format renders a report. Reports for other hardware render a single
// notice below the heading.
func (f *Formatter) Format(r spoof.Report) string {
	var sb strings.Builder
	sb.Grow(1024)

	th := f.th
	sb.WriteString(th.muted(separator) + "\n")
	sb.WriteString(th.title(Title) + "\n")
	sb.WriteString(th.muted(separator) + "\n\n")

	if !r.IsChromebook {
		sb.WriteString("No Chromebook hardware detected.\n")
		return sb.String()
	}

	sb.WriteString(th.success("✓ Chromebook hardware detected!") + "\n\n")
	motherboard := r.Detection.Motherboard
	if motherboard == "" {
		motherboard = "Unknown"
	}
	sb.WriteString(f.field("", "Motherboard", motherboard))

	if len(r.Detection.Devices) > 0 {
		sb.WriteString("\n" + th.label("Chromebook-specific devices found:") + "\n")
		for _, d := range r.Detection.Devices {
			fmt.Fprintf(&sb, "  - %s (Device ID: %s, Subsystem ID: %s)\n", d.Name, d.DeviceID, d.SubsystemID)
		}
	}

	sb.WriteString("\n" + th.title("Spoofing Configuration:") + "\n\n")

	if p := r.Processor; p.NeedsSubstitution {
		sb.WriteString(th.label("CPU Spoofing:") + "\n")
		sb.WriteString(f.field("  ", "Original", p.OriginalCPU))
		sb.WriteString(f.field("  ", "Will spoof as", p.Model))
		sb.WriteString(f.field("  ", "CPUID", p.CPUID))
		sb.WriteString(f.field("  ", "Reason", p.Reason))
		if p.Generic {
			sb.WriteString("  " + th.muted("(codename not recognized, generic substitute)") + "\n")
		}
		sb.WriteString("\n")
	}

	if len(r.Graphics) > 0 {
		sb.WriteString(th.label("iGPU Spoofing:") + "\n")
		for _, name := range sortedKeys(r.Graphics) {
			g := r.Graphics[name]
			sb.WriteString(f.field("  ", "GPU", name))
			sb.WriteString(f.field("    ", "Original Device ID", g.OriginalDeviceID))
			sb.WriteString(f.field("    ", "Spoofed Device ID", g.DeviceID))
			sb.WriteString(f.field("    ", "Framebuffer ID", g.PlatformID))
			sb.WriteString(f.field("    ", "Reason", g.Reason))
		}
		sb.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		sb.WriteString(th.label("Recommendations:") + "\n")
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, rec)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(th.muted(separator) + "\n")
	return sb.String()
}

func (f *Formatter) field(indent, label, value string) string {
	return indent + f.th.label(label+":") + " " + f.th.value(value) + "\n"
}

func sortedKeys(m map[string]spoof.GraphicsSubstitution) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatJSON encodes a report as indented JSON with a trailing newline.
// Map keys are sorted, so equal reports encode identically.
func FormatJSON(r spoof.Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(data, '\n'), nil
}
