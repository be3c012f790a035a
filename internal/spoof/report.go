package spoof

import (
	"fmt"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/hwreport"
)

// Assemble builds the full report for a record.
//
// targetOS is the Darwin version of the target macOS release. It is
// accepted for future version-dependent rules and currently not consulted.
func (e *Engine) Assemble(rec *hwreport.Record, targetOS string) Report {
	rec = orEmpty(rec)

	report := Report{
		Detection:       e.Inspect(rec),
		Graphics:        map[string]GraphicsSubstitution{},
		Recommendations: []string{},
	}
	report.IsChromebook = report.Detection.IsChromebook
	if !report.IsChromebook {
		return report
	}

	report.Graphics = e.ResolveGraphics(rec)
	report.Processor = e.ResolveProcessor(rec)
	report.Recommendations = recommendations(report)

	e.logger.Info("chromebook report assembled",
		"motherboard", rec.Motherboard.Name,
		"igpu_substitutions", len(report.Graphics),
		"cpu_substitution", report.Processor.NeedsSubstitution)
	return report
}

// recommendations returns the advisory notes in their fixed order.
func recommendations(r Report) []string {
	recs := []string{RecommendQuirk}
	if len(r.Graphics) > 0 {
		recs = append(recs, RecommendGraphics)
	}
	if r.Processor.NeedsSubstitution {
		recs = append(recs, fmt.Sprintf(RecommendCPUFormat, r.Processor.Model))
	}
	recs = append(recs, RecommendWriteProtect, RecommendACPI)
	return recs
}
