// Package spoof classifies a hardware record as a Chromebook and computes
// the identity substitutions needed to boot macOS on it: a reference
// processor with its CPUID payload, and a supported iGPU device-id with its
// AAPL,ig-platform-id framebuffer.
//
// An Engine holds an injected reference dataset and rule set and performs
// pure, synchronous computations over an in-memory hwreport.Record. It never
// mutates its input, has no error path, and is safe for concurrent use.
//
// The pipeline is:
//
//	Detect            vendor match, else dataset device/subsystem match
//	EnumerateMatches  dataset matches, for diagnostics only
//	ResolveGraphics   Intel integrated GPUs -> graphics rules
//	ResolveProcessor  Celeron/Pentium -> processor rules or fallback
//	Assemble          all of the above plus ordered recommendations
package spoof
