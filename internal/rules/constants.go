package rules

// Lua schema field names and globals
const (
	luaGlobalRules    = "rules"
	luaGlobalDefaults = "defaults"

	luaFieldLowEnd     = "low_end"
	luaFieldGraphics   = "graphics"
	luaFieldProcessor  = "processor"
	luaFieldFallback   = "fallback"
	luaFieldGeneration = "generation"
	luaFieldPrefixes   = "prefixes"
	luaFieldDeviceID   = "device_id"
	luaFieldPlatformID = "platform_id"
	luaFieldReason     = "reason"
	luaFieldCodenames  = "codenames"
	luaFieldModel      = "model"
	luaFieldCPUID      = "cpuid"
)
