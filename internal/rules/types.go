package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Limits for user-supplied rule files.
const (
	MaxRules    = 256
	MaxPrefixes = 64
)

// GraphicsRule maps a family of iGPU device IDs to a substitute identity.
type GraphicsRule struct {
	Generation string   // e.g. "Skylake"
	Prefixes   []string // 4-hex-digit device ID prefixes
	DeviceID   string   // substitute device-id, 8 hex digits
	PlatformID string   // AAPL,ig-platform-id, 8 hex digits
	Reason     string
}

// Matches reports whether the device ID starts with one of the rule's
// prefixes.
func (r GraphicsRule) Matches(id string) bool {
	for _, p := range r.Prefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

// ProcessorRule maps a CPU codename to a reference processor.
type ProcessorRule struct {
	Codenames []string // substrings of the codename field
	Model     string   // e.g. "Core i5-6300U"
	CPUID     string   // encoded CPUID payload, 8 hex digits
}

// Matches reports whether the codename contains one of the rule's names.
func (r ProcessorRule) Matches(codename string) bool {
	for _, c := range r.Codenames {
		if strings.Contains(codename, c) {
			return true
		}
	}
	return false
}

// Set is a complete collection of substitution tables.
type Set struct {
	Graphics       []GraphicsRule
	Processor      []ProcessorRule
	LowEndFamilies []string      // processor name substrings that need substitution
	Fallback       ProcessorRule // used when no processor rule matches
}

// firstMatch returns the first rule accepted by pred.
func firstMatch[T any](rules []T, pred func(T) bool) (T, bool) {
	for _, r := range rules {
		if pred(r) {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// MatchGraphics returns the first graphics rule matching the device ID.
func (s *Set) MatchGraphics(id string) (GraphicsRule, bool) {
	return firstMatch(s.Graphics, func(r GraphicsRule) bool { return r.Matches(id) })
}

// MatchProcessor returns the first processor rule matching the codename.
// When none matches it returns the fallback and false.
func (s *Set) MatchProcessor(codename string) (ProcessorRule, bool) {
	if r, ok := firstMatch(s.Processor, func(r ProcessorRule) bool { return r.Matches(codename) }); ok {
		return r, true
	}
	return s.Fallback, false
}

// IsLowEnd reports whether the processor name belongs to a family that
// needs substitution.
func (s *Set) IsLowEnd(processorName string) bool {
	_, ok := firstMatch(s.LowEndFamilies, func(f string) bool { return strings.Contains(processorName, f) })
	return ok
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	c := &Set{
		Graphics:       make([]GraphicsRule, len(s.Graphics)),
		Processor:      make([]ProcessorRule, len(s.Processor)),
		LowEndFamilies: append([]string(nil), s.LowEndFamilies...),
		Fallback:       s.Fallback,
	}
	for i, r := range s.Graphics {
		r.Prefixes = append([]string(nil), r.Prefixes...)
		c.Graphics[i] = r
	}
	for i, r := range s.Processor {
		r.Codenames = append([]string(nil), r.Codenames...)
		c.Processor[i] = r
	}
	c.Fallback.Codenames = append([]string(nil), s.Fallback.Codenames...)
	return c
}

var (
	prefixPattern = regexp.MustCompile(`^[0-9A-F]{4}$`)
	hex8Pattern   = regexp.MustCompile(`^[0-9A-F]{8}$`)
)

// Validate checks every table for well-formed values.
func (s *Set) Validate() error {
	if len(s.Graphics) > MaxRules {
		return &ValidationError{
			Field:   "graphics",
			Message: fmt.Sprintf("too many rules (%d), maximum is %d", len(s.Graphics), MaxRules),
		}
	}
	for i, r := range s.Graphics {
		field := fmt.Sprintf("graphics[%d]", i+1)
		if strings.TrimSpace(r.Generation) == "" {
			return &ValidationError{Field: field + ".generation", Message: "generation cannot be empty"}
		}
		if len(r.Prefixes) == 0 {
			return &ValidationError{Field: field + ".prefixes", Message: "at least one prefix is required"}
		}
		if len(r.Prefixes) > MaxPrefixes {
			return &ValidationError{
				Field:   field + ".prefixes",
				Message: fmt.Sprintf("too many prefixes (%d), maximum is %d", len(r.Prefixes), MaxPrefixes),
			}
		}
		for j, p := range r.Prefixes {
			if !prefixPattern.MatchString(p) {
				return &ValidationError{
					Field:   fmt.Sprintf("%s.prefixes[%d]", field, j+1),
					Message: fmt.Sprintf("invalid prefix %q (expected 4 uppercase hex digits)", p),
				}
			}
		}
		if !hex8Pattern.MatchString(r.DeviceID) {
			return &ValidationError{Field: field + ".device_id", Message: fmt.Sprintf("invalid device id %q (expected 8 uppercase hex digits)", r.DeviceID)}
		}
		if !hex8Pattern.MatchString(r.PlatformID) {
			return &ValidationError{Field: field + ".platform_id", Message: fmt.Sprintf("invalid platform id %q (expected 8 uppercase hex digits)", r.PlatformID)}
		}
	}

	if len(s.Processor) > MaxRules {
		return &ValidationError{
			Field:   "processor",
			Message: fmt.Sprintf("too many rules (%d), maximum is %d", len(s.Processor), MaxRules),
		}
	}
	for i, r := range s.Processor {
		field := fmt.Sprintf("processor[%d]", i+1)
		if len(r.Codenames) == 0 {
			return &ValidationError{Field: field + ".codenames", Message: "at least one codename is required"}
		}
		for j, c := range r.Codenames {
			if strings.TrimSpace(c) == "" {
				return &ValidationError{Field: fmt.Sprintf("%s.codenames[%d]", field, j+1), Message: "codename cannot be empty"}
			}
		}
		if err := validateIdentity(field, r); err != nil {
			return err
		}
	}

	if err := validateIdentity("fallback", s.Fallback); err != nil {
		return err
	}

	if len(s.LowEndFamilies) == 0 {
		return &ValidationError{Field: "low_end", Message: "at least one processor family is required"}
	}
	for i, f := range s.LowEndFamilies {
		if strings.TrimSpace(f) == "" {
			return &ValidationError{Field: fmt.Sprintf("low_end[%d]", i+1), Message: "family cannot be empty"}
		}
	}
	return nil
}

func validateIdentity(field string, r ProcessorRule) error {
	if strings.TrimSpace(r.Model) == "" {
		return &ValidationError{Field: field + ".model", Message: "model cannot be empty"}
	}
	if !hex8Pattern.MatchString(r.CPUID) {
		return &ValidationError{Field: field + ".cpuid", Message: fmt.Sprintf("invalid cpuid %q (expected 8 uppercase hex digits)", r.CPUID)}
	}
	return nil
}

// ValidationError represents an invalid rule table.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "rules validation failed for " + e.Field + ": " + e.Message
	}
	return "rules validation failed: " + e.Message
}

// ParseError represents a rule file that could not be evaluated.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}
