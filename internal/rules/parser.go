package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/logging"
	lua "github.com/yuin/gopher-lua"
)

const (
	// DefaultParseTimeout applies when the caller's context has no deadline.
	DefaultParseTimeout = 5 * time.Second

	// MaxRuleFileSize bounds rule files read from disk.
	MaxRuleFileSize = 1 << 20
)

// Parser evaluates Lua rule files into a Set.
type Parser struct {
	logger logging.Logger
}

// NewParser creates a rule file parser.
func NewParser() *Parser {
	return &Parser{logger: logging.Nop()}
}

// WithLogger sets the logger used for parse diagnostics.
func (p *Parser) WithLogger(l logging.Logger) *Parser {
	p.logger = logging.OrNop(l)
	return p
}

// ParseFile reads and evaluates a rule file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Set, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat rule file: %w", err)
	}
	if info.Size() > MaxRuleFileSize {
		return nil, &ValidationError{
			Message: fmt.Sprintf("rule file too large (%d bytes), maximum is %d", info.Size(), MaxRuleFileSize),
		}
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}

	set, err := p.ParseString(ctx, string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.logger.Info("loaded rule file", "path", path,
		"graphics_rules", len(set.Graphics), "processor_rules", len(set.Processor))
	return set, nil
}

// ParseString evaluates Lua rule code. Sections the code does not set keep
// their built-in value.
func (p *Parser) ParseString(ctx context.Context, code string) (*Set, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultParseTimeout)
		defer cancel()
	}

	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	injectDefaults(L, Defaults())

	if err := L.DoString(code); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("rule evaluation cancelled: %w", ctx.Err())
		}
		return nil, &ParseError{
			Message: "Lua error",
			Detail:  err.Error(),
		}
	}

	set, err := extractSet(L)
	if err != nil {
		return nil, err
	}
	set.fillReasons()

	if err := set.Validate(); err != nil {
		return nil, err
	}

	p.logger.Debug("rules parsed",
		"graphics_rules", len(set.Graphics),
		"processor_rules", len(set.Processor),
		"low_end", strings.Join(set.LowEndFamilies, ","))
	return set, nil
}

// extractSet reads the global "rules" table, starting from the defaults.
func extractSet(L *lua.LState) (*Set, error) {
	rulesVal := L.GetGlobal(luaGlobalRules)
	table, ok := rulesVal.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: "missing or invalid 'rules' table",
			Detail:  fmt.Sprintf("expected table, got %s", rulesVal.Type()),
		}
	}

	set := Defaults()

	if v := table.RawGetString(luaFieldLowEnd); v != lua.LNil {
		families, err := stringList(v, luaFieldLowEnd)
		if err != nil {
			return nil, err
		}
		set.LowEndFamilies = families
	}

	if v := table.RawGetString(luaFieldGraphics); v != lua.LNil {
		graphics, err := extractGraphics(v)
		if err != nil {
			return nil, err
		}
		set.Graphics = graphics
	}

	if v := table.RawGetString(luaFieldProcessor); v != lua.LNil {
		processor, err := extractProcessor(v)
		if err != nil {
			return nil, err
		}
		set.Processor = processor
	}

	if v := table.RawGetString(luaFieldFallback); v != lua.LNil {
		fb, ok := v.(*lua.LTable)
		if !ok {
			return nil, &ValidationError{Field: luaFieldFallback, Message: "expected table, got " + v.Type().String()}
		}
		model, err := stringField(fb, luaFieldModel, luaFieldFallback)
		if err != nil {
			return nil, err
		}
		cpuid, err := stringField(fb, luaFieldCPUID, luaFieldFallback)
		if err != nil {
			return nil, err
		}
		set.Fallback = ProcessorRule{Model: model, CPUID: strings.ToUpper(cpuid)}
	}

	return set, nil
}

// extractGraphics reads an array of graphics rule tables.
func extractGraphics(v lua.LValue) ([]GraphicsRule, error) {
	entries, err := tableList(v, luaFieldGraphics)
	if err != nil {
		return nil, err
	}

	rules := make([]GraphicsRule, 0, len(entries))
	for i, entry := range entries {
		field := fmt.Sprintf("%s[%d]", luaFieldGraphics, i+1)

		var r GraphicsRule
		if r.Generation, err = stringField(entry, luaFieldGeneration, field); err != nil {
			return nil, err
		}
		if r.Prefixes, err = stringList(entry.RawGetString(luaFieldPrefixes), field+"."+luaFieldPrefixes); err != nil {
			return nil, err
		}
		for j := range r.Prefixes {
			r.Prefixes[j] = strings.ToUpper(r.Prefixes[j])
		}
		if r.DeviceID, err = stringField(entry, luaFieldDeviceID, field); err != nil {
			return nil, err
		}
		if r.PlatformID, err = stringField(entry, luaFieldPlatformID, field); err != nil {
			return nil, err
		}
		if r.Reason, err = stringField(entry, luaFieldReason, field); err != nil {
			return nil, err
		}
		r.DeviceID = strings.ToUpper(r.DeviceID)
		r.PlatformID = strings.ToUpper(r.PlatformID)

		rules = append(rules, r)
	}
	return rules, nil
}

// extractProcessor reads an array of processor rule tables.
func extractProcessor(v lua.LValue) ([]ProcessorRule, error) {
	entries, err := tableList(v, luaFieldProcessor)
	if err != nil {
		return nil, err
	}

	rules := make([]ProcessorRule, 0, len(entries))
	for i, entry := range entries {
		field := fmt.Sprintf("%s[%d]", luaFieldProcessor, i+1)

		var r ProcessorRule
		if r.Codenames, err = stringList(entry.RawGetString(luaFieldCodenames), field+"."+luaFieldCodenames); err != nil {
			return nil, err
		}
		if r.Model, err = stringField(entry, luaFieldModel, field); err != nil {
			return nil, err
		}
		if r.CPUID, err = stringField(entry, luaFieldCPUID, field); err != nil {
			return nil, err
		}
		r.CPUID = strings.ToUpper(r.CPUID)

		rules = append(rules, r)
	}
	return rules, nil
}

// tableList returns the array part of v as tables, in order.
func tableList(v lua.LValue, field string) ([]*lua.LTable, error) {
	table, ok := v.(*lua.LTable)
	if !ok {
		return nil, &ValidationError{Field: field, Message: "expected table, got " + v.Type().String()}
	}

	n := table.Len()
	if n > MaxRules {
		return nil, &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("too many rules (%d), maximum is %d", n, MaxRules),
		}
	}

	out := make([]*lua.LTable, 0, n)
	for i := 1; i <= n; i++ {
		entry, ok := table.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "expected table, got " + table.RawGetInt(i).Type().String(),
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// stringList returns the array part of v as strings, in order. Nil yields
// an empty list.
func stringList(v lua.LValue, field string) ([]string, error) {
	if v == lua.LNil {
		return nil, nil
	}
	table, ok := v.(*lua.LTable)
	if !ok {
		return nil, &ValidationError{Field: field, Message: "expected list of strings, got " + v.Type().String()}
	}

	n := table.Len()
	if n > MaxRules {
		return nil, &ValidationError{Field: field, Message: fmt.Sprintf("too many entries (%d), maximum is %d", n, MaxRules)}
	}

	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		s, ok := table.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "expected string, got " + table.RawGetInt(i).Type().String(),
			}
		}
		out = append(out, string(s))
	}
	return out, nil
}

// stringField reads an optional string field. Nil yields "".
func stringField(t *lua.LTable, key, field string) (string, error) {
	v := t.RawGetString(key)
	switch s := v.(type) {
	case lua.LString:
		return string(s), nil
	default:
		if v == lua.LNil {
			return "", nil
		}
		return "", &ValidationError{Field: field + "." + key, Message: "expected string, got " + v.Type().String()}
	}
}

// injectDefaults exposes the built-in rules as a read-only "defaults"
// global so rule files can extend them.
func injectDefaults(L *lua.LState, set *Set) {
	t := L.NewTable()

	L.SetField(t, luaFieldLowEnd, luaStrings(L, set.LowEndFamilies))

	graphics := L.NewTable()
	for _, r := range set.Graphics {
		entry := L.NewTable()
		L.SetField(entry, luaFieldGeneration, lua.LString(r.Generation))
		L.SetField(entry, luaFieldPrefixes, luaStrings(L, r.Prefixes))
		L.SetField(entry, luaFieldDeviceID, lua.LString(r.DeviceID))
		L.SetField(entry, luaFieldPlatformID, lua.LString(r.PlatformID))
		L.SetField(entry, luaFieldReason, lua.LString(r.Reason))
		graphics.Append(entry)
	}
	L.SetField(t, luaFieldGraphics, graphics)

	processor := L.NewTable()
	for _, r := range set.Processor {
		entry := L.NewTable()
		L.SetField(entry, luaFieldCodenames, luaStrings(L, r.Codenames))
		L.SetField(entry, luaFieldModel, lua.LString(r.Model))
		L.SetField(entry, luaFieldCPUID, lua.LString(r.CPUID))
		processor.Append(entry)
	}
	L.SetField(t, luaFieldProcessor, processor)

	fallback := L.NewTable()
	L.SetField(fallback, luaFieldModel, lua.LString(set.Fallback.Model))
	L.SetField(fallback, luaFieldCPUID, lua.LString(set.Fallback.CPUID))
	L.SetField(t, luaFieldFallback, fallback)

	L.SetGlobal(luaGlobalDefaults, makeReadOnly(L, t, luaGlobalDefaults))
}

func luaStrings(L *lua.LState, values []string) *lua.LTable {
	t := L.NewTable()
	for _, v := range values {
		t.Append(lua.LString(v))
	}
	return t
}
