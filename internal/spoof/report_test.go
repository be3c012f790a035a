package spoof

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/hwreport"
)

func TestAssemble_Chromebook(t *testing.T) {
	e := newTestEngine()
	r := e.Assemble(octopus(), "21.0.0")

	if !r.IsChromebook || !r.Detection.IsChromebook {
		t.Fatal("IsChromebook = false, want true")
	}

	sub, ok := r.Graphics["Intel UHD Graphics 600"]
	if !ok {
		t.Fatal("missing graphics substitution")
	}
	if sub.DeviceID != "85310000" || sub.PlatformID != "00003185" {
		t.Errorf("graphics = %+v, want Gemini Lake identity", sub)
	}

	if r.Processor.Model != "Core i3-8100" || r.Processor.CPUID != "EA060900" {
		t.Errorf("processor = %+v, want Core i3-8100/EA060900", r.Processor)
	}

	want := []string{
		RecommendQuirk,
		RecommendGraphics,
		"CPU will be spoofed as Core i3-8100",
		RecommendWriteProtect,
		RecommendACPI,
	}
	if !reflect.DeepEqual(r.Recommendations, want) {
		t.Errorf("Recommendations = %q, want %q", r.Recommendations, want)
	}
}

func TestAssemble_RecommendationSubsets(t *testing.T) {
	tests := []struct {
		name string
		rec  *hwreport.Record
		want []string
	}{
		{
			name: "vendor only",
			rec:  &hwreport.Record{Motherboard: hwreport.Motherboard{Name: "GOOGLE Eve"}},
			want: []string{RecommendQuirk, RecommendWriteProtect, RecommendACPI},
		},
		{
			name: "graphics only",
			rec: &hwreport.Record{
				Motherboard: hwreport.Motherboard{Name: "GOOGLE Eve"},
				GPUs:        []hwreport.GPU{igpu("HD 615", "8086-591E")},
				CPU:         hwreport.CPU{ProcessorName: "Core i5-7Y54", Codename: "Kaby Lake"},
			},
			want: []string{RecommendQuirk, RecommendGraphics, RecommendWriteProtect, RecommendACPI},
		},
		{
			name: "processor only",
			rec: &hwreport.Record{
				Motherboard: hwreport.Motherboard{Name: "GOOGLE Reks"},
				CPU:         hwreport.CPU{ProcessorName: "Celeron N3060", Codename: "Braswell"},
			},
			want: []string{RecommendQuirk, "CPU will be spoofed as Core i5 (Generic)", RecommendWriteProtect, RecommendACPI},
		},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Assemble(tt.rec, "").Recommendations
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommendations = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssemble_NotChromebook(t *testing.T) {
	e := newTestEngine()
	rec := &hwreport.Record{
		Motherboard: hwreport.Motherboard{Name: "Dell Inc. 0KTW76"},
		Devices:     []hwreport.Device{{Name: "Host Bridge", DeviceID: "8086-1904", SubsystemID: "1028-075B"}},
		GPUs:        []hwreport.GPU{igpu("Intel HD Graphics 520", "8086-1916")},
		CPU:         hwreport.CPU{ProcessorName: "Intel Celeron 3855U", Codename: "Skylake"},
	}

	r := e.Assemble(rec, "22.0.0")
	if r.IsChromebook {
		t.Fatal("IsChromebook = true, want false")
	}
	if len(r.Graphics) != 0 {
		t.Errorf("Graphics = %v, want empty", r.Graphics)
	}
	if r.Processor != (ProcessorSubstitution{}) {
		t.Errorf("Processor = %+v, want zero value", r.Processor)
	}
	if len(r.Recommendations) != 0 {
		t.Errorf("Recommendations = %q, want empty", r.Recommendations)
	}
	if r.Detection.Motherboard != "Dell Inc. 0KTW76" {
		t.Errorf("Detection.Motherboard = %q", r.Detection.Motherboard)
	}
}

func TestAssemble_TargetOSIgnored(t *testing.T) {
	e := newTestEngine()
	rec := octopus()

	base := e.Assemble(rec, "")
	for _, target := range []string{"21.0.0", "24.1.0", "not-a-version"} {
		if got := e.Assemble(rec, target); !reflect.DeepEqual(got, base) {
			t.Errorf("Assemble(%q) differs from Assemble(\"\")", target)
		}
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	e := newTestEngine()
	rec := octopus()

	first, err := json.Marshal(e.Assemble(rec, "21.0.0"))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := json.Marshal(e.Assemble(rec, "21.0.0"))
		if err != nil {
			t.Fatalf("json.Marshal() error = %v", err)
		}
		if !bytes.Equal(got, first) {
			t.Fatalf("Assemble() call %d encoded differently:\n%s\n%s", i, got, first)
		}
	}
}

func TestAssemble_DoesNotMutateRecord(t *testing.T) {
	e := newTestEngine()
	rec := octopus()
	before := octopus()

	_ = e.Assemble(rec, "")

	if !reflect.DeepEqual(rec, before) {
		t.Error("Assemble() modified its input record")
	}
}

func TestReport_JSONShape(t *testing.T) {
	e := newTestEngine()
	data, err := json.Marshal(e.Assemble(&hwreport.Record{}, ""))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	for _, key := range []string{"is_chromebook", "chromebook_info", "igpu_spoofing", "cpu_spoofing", "recommendations"} {
		if _, ok := got[key]; !ok {
			t.Errorf("encoded report missing %q", key)
		}
	}
	if recs, ok := got["recommendations"].([]interface{}); !ok || len(recs) != 0 {
		t.Errorf("recommendations = %v, want empty array", got["recommendations"])
	}
	if gfx, ok := got["igpu_spoofing"].(map[string]interface{}); !ok || len(gfx) != 0 {
		t.Errorf("igpu_spoofing = %v, want empty object", got["igpu_spoofing"])
	}
}

func TestGraphicsSubstitution_JSONKeys(t *testing.T) {
	e := newTestEngine()
	data, err := json.Marshal(e.Assemble(octopus(), "").Graphics)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var got map[string]map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	entry, ok := got["Intel UHD Graphics 600"]
	if !ok {
		t.Fatalf("encoded graphics missing GPU entry: %s", data)
	}

	want := map[string]string{
		"generation":          "Gemini Lake",
		"original_device_id":  "8086-3185",
		"spoofed_device_id":   "85310000",
		"AAPL,ig-platform-id": "00003185",
		"reason":              "Chromebook Gemini Lake iGPU spoofing",
	}
	if !reflect.DeepEqual(entry, want) {
		t.Errorf("encoded entry = %v, want %v", entry, want)
	}
	if _, ok := entry["AAPL"]; ok {
		t.Errorf("platform id encoded under truncated key: %s", data)
	}

	order := []string{`"generation"`, `"original_device_id"`, `"spoofed_device_id"`, `"AAPL,ig-platform-id"`, `"reason"`}
	last := -1
	for _, key := range order {
		idx := bytes.Index(data, []byte(key))
		if idx <= last {
			t.Errorf("key %s out of order in %s", key, data)
		}
		last = idx
	}

	var back GraphicsSubstitution
	if err := json.Unmarshal([]byte(`{"AAPL,ig-platform-id":"00009B3E","spoofed_device_id":"3E9B0000","extra":"x"}`), &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if back.PlatformID != "00009B3E" || back.DeviceID != "3E9B0000" {
		t.Errorf("decoded = %+v", back)
	}
}
