package rules

// Processor identities.
const (
	GenericModel = "Core i5 (Generic)"
	GenericCPUID = "E3060300"
)

// graphicsReason is the reason recorded for a built-in graphics rule.
func graphicsReason(generation string) string {
	return "Chromebook " + generation + " iGPU spoofing"
}

// Defaults returns the built-in tables. Each call returns a fresh copy.
func Defaults() *Set {
	s := &Set{
		Graphics: []GraphicsRule{
			// HD 4400
			{Generation: "Haswell", Prefixes: []string{"0A06", "0A16", "0A1E", "0A26", "0A2E"}, DeviceID: "12040000", PlatformID: "0600260A"},
			// HD 5500
			{Generation: "Broadwell", Prefixes: []string{"1606", "1616", "161E", "1626", "162B"}, DeviceID: "16160000", PlatformID: "06002616"},
			// HD 520
			{Generation: "Skylake", Prefixes: []string{"1906", "1916", "191E", "1926", "192B"}, DeviceID: "16190000", PlatformID: "00001619"},
			// HD 620
			{Generation: "Kaby Lake", Prefixes: []string{"5906", "5916", "591E", "5926", "5927"}, DeviceID: "16590000", PlatformID: "00001659"},
			// HD 505
			{Generation: "Apollo Lake", Prefixes: []string{"5A84", "5A85"}, DeviceID: "5A850000", PlatformID: "00005A84"},
			// UHD 605
			{Generation: "Gemini Lake", Prefixes: []string{"3184", "3185"}, DeviceID: "85310000", PlatformID: "00003185"},
			// UHD 620
			{Generation: "Comet Lake", Prefixes: []string{"9B41", "9BA5", "9BA8"}, DeviceID: "A53B0000", PlatformID: "0000A53B"},
			// Iris Plus
			{Generation: "Ice Lake", Prefixes: []string{"8A51", "8A52", "8A5A"}, DeviceID: "5A528A00", PlatformID: "00528A8A"},
		},
		Processor: []ProcessorRule{
			{Codenames: []string{"Haswell"}, Model: "Core i5-4300U", CPUID: "C3060300"},
			{Codenames: []string{"Broadwell"}, Model: "Core i5-5300U", CPUID: "D4060300"},
			{Codenames: []string{"Skylake"}, Model: "Core i5-6300U", CPUID: "E3060300"},
			{Codenames: []string{"Kaby Lake"}, Model: "Core i5-7300U", CPUID: "E9060300"},
			{Codenames: []string{"Apollo Lake", "Goldmont"}, Model: "Core i3-7100U", CPUID: "E9060300"},
			{Codenames: []string{"Gemini Lake"}, Model: "Core i3-8100", CPUID: "EA060900"},
			{Codenames: []string{"Comet Lake"}, Model: "Core i5-10210U", CPUID: "EC060A00"},
			{Codenames: []string{"Ice Lake"}, Model: "Core i5-1035G1", CPUID: "E5060700"},
		},
		LowEndFamilies: []string{"Celeron", "Pentium"},
		Fallback:       ProcessorRule{Model: GenericModel, CPUID: GenericCPUID},
	}
	s.fillReasons()
	return s
}

// fillReasons sets the default reason on graphics rules that have none.
func (s *Set) fillReasons() {
	for i := range s.Graphics {
		if s.Graphics[i].Reason == "" {
			s.Graphics[i].Reason = graphicsReason(s.Graphics[i].Generation)
		}
	}
}
