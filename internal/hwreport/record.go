package hwreport

// Section and field names used by hardware reports.
const (
	SectionMotherboard = "Motherboard"
	SectionDevices     = "System Devices"
	SectionGPU         = "GPU"
	SectionCPU         = "CPU"

	FieldName          = "Name"
	FieldDeviceID      = "Device ID"
	FieldSubsystemID   = "Subsystem ID"
	FieldManufacturer  = "Manufacturer"
	FieldDeviceType    = "Device Type"
	FieldProcessorName = "Processor Name"
	FieldCodename      = "Codename"
)

// Record is a read-only hardware inventory snapshot.
type Record struct {
	Motherboard Motherboard
	Devices     []Device // "System Devices", in document order
	GPUs        []GPU    // "GPU", in document order
	CPU         CPU
}

// Motherboard describes the mainboard. Name usually carries the vendor,
// e.g. "GOOGLE Octopus".
type Motherboard struct {
	Name string
}

// Device is a PCI/ACPI system device. IDs use the "VVVV-DDDD" form.
type Device struct {
	Name        string
	DeviceID    string
	SubsystemID string
}

// GPU is a graphics adapter entry.
type GPU struct {
	Name         string
	Manufacturer string
	DeviceID     string
	DeviceType   string // e.g. "Integrated GPU", "Discrete GPU"
}

// CPU identifies the processor.
type CPU struct {
	ProcessorName string
	Codename      string
}
