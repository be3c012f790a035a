package spoof

import (
	"testing"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/hwreport"
	"github.com/ZebulonRouseFrantzich/chromespoof/internal/rules"
)

func igpu(name, deviceID string) hwreport.GPU {
	return hwreport.GPU{Name: name, Manufacturer: "Intel", DeviceID: deviceID, DeviceType: "Integrated GPU"}
}

func TestResolveGraphics_EveryPrefix(t *testing.T) {
	e := newTestEngine()

	for _, rule := range rules.Defaults().Graphics {
		for _, prefix := range rule.Prefixes {
			t.Run(rule.Generation+"/"+prefix, func(t *testing.T) {
				rec := &hwreport.Record{GPUs: []hwreport.GPU{igpu("iGPU", "8086-"+prefix)}}

				got := e.ResolveGraphics(rec)
				sub, ok := got["iGPU"]
				if !ok {
					t.Fatalf("ResolveGraphics() has no entry for %s", prefix)
				}
				if sub.DeviceID != rule.DeviceID {
					t.Errorf("DeviceID = %q, want %q", sub.DeviceID, rule.DeviceID)
				}
				if sub.PlatformID != rule.PlatformID {
					t.Errorf("PlatformID = %q, want %q", sub.PlatformID, rule.PlatformID)
				}
				if sub.OriginalDeviceID != "8086-"+prefix {
					t.Errorf("OriginalDeviceID = %q, want %q", sub.OriginalDeviceID, "8086-"+prefix)
				}
				if want := "Chromebook " + rule.Generation + " iGPU spoofing"; sub.Reason != want {
					t.Errorf("Reason = %q, want %q", sub.Reason, want)
				}
			})
		}
	}
}

func TestResolveGraphics_Qualification(t *testing.T) {
	tests := []struct {
		name string
		gpu  hwreport.GPU
		want bool
	}{
		{"intel integrated", igpu("a", "8086-1916"), true},
		{"discrete", hwreport.GPU{Name: "a", Manufacturer: "Intel", DeviceID: "8086-1916", DeviceType: "Discrete GPU"}, false},
		{"amd integrated", hwreport.GPU{Name: "a", Manufacturer: "AMD", DeviceID: "8086-1916", DeviceType: "Integrated GPU"}, false},
		{"lowercase manufacturer", hwreport.GPU{Name: "a", Manufacturer: "intel", DeviceID: "8086-1916", DeviceType: "Integrated GPU"}, false},
		{"lowercase type", hwreport.GPU{Name: "a", Manufacturer: "Intel", DeviceID: "8086-1916", DeviceType: "integrated"}, false},
		{"manufacturer missing", hwreport.GPU{Name: "a", DeviceID: "8086-1916", DeviceType: "Integrated GPU"}, false},
		{"manufacturer substring", hwreport.GPU{Name: "a", Manufacturer: "Intel Corporation", DeviceID: "8086-1916", DeviceType: "Integrated GPU"}, true},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ResolveGraphics(&hwreport.Record{GPUs: []hwreport.GPU{tt.gpu}})
			if _, ok := got["a"]; ok != tt.want {
				t.Errorf("entry present = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestResolveGraphics_DeviceIDForms(t *testing.T) {
	tests := []struct {
		name     string
		deviceID string
		want     string // substitute device id, "" for no entry
	}{
		{"canonical", "8086-5A85", "5A850000"},
		{"longer than canonical", "PCI-8086-5A85", "5A850000"},
		{"bare id used unmodified", "5A85", "5A850000"},
		{"short id without prefix match", "8086", ""},
		{"unknown generation", "8086-0166", ""},
		{"lowercase hex", "8086-5a85", ""},
		{"empty", "", ""},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ResolveGraphics(&hwreport.Record{GPUs: []hwreport.GPU{igpu("g", tt.deviceID)}})
			sub, ok := got["g"]
			if tt.want == "" {
				if ok {
					t.Errorf("ResolveGraphics() = %+v, want no entry", sub)
				}
				return
			}
			if !ok || sub.DeviceID != tt.want {
				t.Errorf("DeviceID = %q (present %v), want %q", sub.DeviceID, ok, tt.want)
			}
		})
	}
}

func TestResolveGraphics_MultipleGPUs(t *testing.T) {
	e := newTestEngine()
	rec := &hwreport.Record{GPUs: []hwreport.GPU{
		igpu("Intel HD Graphics 520", "8086-1916"),
		{Name: "NVIDIA GeForce MX150", Manufacturer: "NVIDIA", DeviceID: "10DE-1D10", DeviceType: "Discrete GPU"},
		igpu("Intel HD Graphics 4400", "8086-0A16"),
	}}

	got := e.ResolveGraphics(rec)
	if len(got) != 2 {
		t.Fatalf("len(ResolveGraphics()) = %d, want 2", len(got))
	}
	if got["Intel HD Graphics 520"].Generation != "Skylake" {
		t.Errorf("HD 520 generation = %q, want Skylake", got["Intel HD Graphics 520"].Generation)
	}
	if got["Intel HD Graphics 4400"].Generation != "Haswell" {
		t.Errorf("HD 4400 generation = %q, want Haswell", got["Intel HD Graphics 4400"].Generation)
	}
}

func TestResolveGraphics_FirstMatchWins(t *testing.T) {
	set := rules.Defaults()
	set.Graphics = append([]rules.GraphicsRule{{
		Generation: "Override",
		Prefixes:   []string{"19"},
		DeviceID:   "AAAAAAAA",
		PlatformID: "BBBBBBBB",
		Reason:     "override",
	}}, set.Graphics...)

	e := New(testDataset, set)
	got := e.ResolveGraphics(&hwreport.Record{GPUs: []hwreport.GPU{igpu("g", "8086-1916")}})

	if got["g"].DeviceID != "AAAAAAAA" {
		t.Errorf("DeviceID = %q, want the earlier rule's AAAAAAAA", got["g"].DeviceID)
	}
}

func TestGenerationID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"8086-3185", "3185"},
		{"10DE-1D10X", "D10X"},
		{"3185", "3185"},
		{"8086-318", "8086-318"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := generationID(tt.in); got != tt.want {
			t.Errorf("generationID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
