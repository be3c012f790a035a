// Package rules holds the ordered substitution tables used by the spoof
// engine: iGPU generation rules keyed by device-ID prefix and processor
// rules keyed by codename.
//
// Every table is an ordered slice evaluated first-match-wins. The built-in
// tables are returned by Defaults. Rule files written in Lua can replace
// individual tables; they run in a sandboxed gopher-lua VM with a
// read-only "defaults" table holding the built-in rules:
//
//	rules = {
//	  low_end = { "Celeron", "Pentium" },
//	  graphics = {
//	    {
//	      generation  = "Kaby Lake",
//	      prefixes    = { "5906", "5916", "591E", "5926", "5927" },
//	      device_id   = "16590000",
//	      platform_id = "00001659",
//	    },
//	  },
//	  processor = {
//	    { codenames = { "Kaby Lake" }, model = "Core i5-7300U", cpuid = "E9060300" },
//	  },
//	  fallback = { model = "Core i5 (Generic)", cpuid = "E3060300" },
//	}
//
// Sections left out of a rule file keep their built-in value. Generator
// writes a Set back out in the same schema.
package rules
