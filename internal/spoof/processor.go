package spoof

import (
	"github.com/ZebulonRouseFrantzich/chromespoof/internal/hwreport"
)

// ResolveProcessor decides whether the CPU needs a substitute identity.
// Only low-end families (Celeron, Pentium by default) do; their codename
// selects the reference processor, falling back to a generic Core i5 when
// the codename is not recognized.
func (e *Engine) ResolveProcessor(rec *hwreport.Record) ProcessorSubstitution {
	rec = orEmpty(rec)
	name := rec.CPU.ProcessorName

	sub := ProcessorSubstitution{OriginalCPU: name}
	if !e.rules.IsLowEnd(name) {
		return sub
	}

	rule, matched := e.rules.MatchProcessor(rec.CPU.Codename)
	if !matched {
		e.logger.Warn("unrecognized CPU codename, using generic substitute",
			"cpu", name, "codename", rec.CPU.Codename, "spoof_as", rule.Model)
	}

	sub.NeedsSubstitution = true
	sub.Reason = LowEndReason
	sub.Model = rule.Model
	sub.CPUID = rule.CPUID
	sub.Generic = !matched
	return sub
}
