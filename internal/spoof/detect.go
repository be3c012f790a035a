package spoof

import (
	"strings"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/hwreport"
)

var emptyRecord = &hwreport.Record{}

func orEmpty(rec *hwreport.Record) *hwreport.Record {
	if rec == nil {
		return emptyRecord
	}
	return rec
}

// Detect reports whether the record describes a Chromebook: the
// motherboard name contains ChromebookVendor (any case), or some system
// device's device/subsystem pair is in the reference dataset.
func (e *Engine) Detect(rec *hwreport.Record) bool {
	rec = orEmpty(rec)

	if strings.Contains(strings.ToUpper(rec.Motherboard.Name), ChromebookVendor) {
		e.logger.Debug("chromebook vendor matched", "motherboard", rec.Motherboard.Name)
		return true
	}

	for _, d := range rec.Devices {
		if e.matchDevice(d.DeviceID, d.SubsystemID) {
			e.logger.Debug("chromebook device matched", "device", d.Name,
				"device_id", d.DeviceID, "subsystem_id", d.SubsystemID)
			return true
		}
	}
	return false
}

// EnumerateMatches lists the system devices found in the reference
// dataset, in record order. It does not consider the motherboard vendor.
func (e *Engine) EnumerateMatches(rec *hwreport.Record) []Device {
	rec = orEmpty(rec)

	devices := []Device{}
	for _, d := range rec.Devices {
		if e.matchDevice(d.DeviceID, d.SubsystemID) {
			devices = append(devices, Device{
				Name:        d.Name,
				DeviceID:    d.DeviceID,
				SubsystemID: d.SubsystemID,
			})
		}
	}
	return devices
}

// Inspect combines Detect and EnumerateMatches.
func (e *Engine) Inspect(rec *hwreport.Record) Detection {
	rec = orEmpty(rec)
	return Detection{
		IsChromebook: e.Detect(rec),
		Motherboard:  rec.Motherboard.Name,
		Devices:      e.EnumerateMatches(rec),
	}
}
