package rules

import (
	"bytes"
	"strings"
)

// Generator writes a Set as a Lua rule file.
type Generator struct {
	indent string // Indentation string (default: two spaces)
}

// NewGenerator creates a new Lua rule generator.
func NewGenerator() *Generator {
	return &Generator{
		indent: "  ", // Two spaces
	}
}

// Generate returns Lua source that parses back into an equal Set.
func (g *Generator) Generate(set *Set) string {
	var buf bytes.Buffer

	buf.WriteString("-- chromespoof substitution rules\n")
	buf.WriteString("--\n")
	buf.WriteString("-- Each table is evaluated top to bottom; the first matching rule wins.\n")
	buf.WriteString("-- The built-in rules are available read-only as `defaults`.\n\n")

	buf.WriteString(luaGlobalRules + " = {\n")

	g.line(&buf, 1, luaFieldLowEnd+" = "+g.stringList(set.LowEndFamilies)+",")

	g.line(&buf, 1, luaFieldGraphics+" = {")
	for _, r := range set.Graphics {
		g.line(&buf, 2, "{")
		g.line(&buf, 3, luaFieldGeneration+" = "+quoteLuaString(r.Generation)+",")
		g.line(&buf, 3, luaFieldPrefixes+" = "+g.stringList(r.Prefixes)+",")
		g.line(&buf, 3, luaFieldDeviceID+" = "+quoteLuaString(r.DeviceID)+",")
		g.line(&buf, 3, luaFieldPlatformID+" = "+quoteLuaString(r.PlatformID)+",")
		if r.Reason != "" {
			g.line(&buf, 3, luaFieldReason+" = "+quoteLuaString(r.Reason)+",")
		}
		g.line(&buf, 2, "},")
	}
	g.line(&buf, 1, "},")

	g.line(&buf, 1, luaFieldProcessor+" = {")
	for _, r := range set.Processor {
		g.line(&buf, 2, "{ "+
			luaFieldCodenames+" = "+g.stringList(r.Codenames)+", "+
			luaFieldModel+" = "+quoteLuaString(r.Model)+", "+
			luaFieldCPUID+" = "+quoteLuaString(r.CPUID)+" },")
	}
	g.line(&buf, 1, "},")

	g.line(&buf, 1, luaFieldFallback+" = { "+
		luaFieldModel+" = "+quoteLuaString(set.Fallback.Model)+", "+
		luaFieldCPUID+" = "+quoteLuaString(set.Fallback.CPUID)+" },")

	buf.WriteString("}\n")
	return buf.String()
}

func (g *Generator) line(buf *bytes.Buffer, depth int, s string) {
	buf.WriteString(strings.Repeat(g.indent, depth))
	buf.WriteString(s)
	buf.WriteString("\n")
}

func (g *Generator) stringList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteLuaString(v)
	}
	return "{ " + strings.Join(quoted, ", ") + " }"
}

// quoteLuaString quotes s as a double-quoted Lua string literal.
func quoteLuaString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\") // Escape backslashes first
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return "\"" + s + "\""
}
