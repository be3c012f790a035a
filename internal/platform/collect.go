package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/hwreport"
	"github.com/ZebulonRouseFrantzich/chromespoof/internal/logging"
)

// RealCollector implements Collector for the local machine.
type RealCollector struct {
	root     string
	codename string
	logger   logging.Logger

	cpuInfo  func(ctx context.Context) ([]cpu.InfoStat, error)
	hostInfo func(ctx context.Context) (*host.InfoStat, error)
}

// Option configures a RealCollector.
type Option func(*RealCollector)

// WithRoot reads sysfs relative to root instead of "/".
func WithRoot(root string) Option {
	return func(c *RealCollector) {
		c.root = root
	}
}

// WithCodename sets the CPU codename instead of inferring it.
func WithCodename(codename string) Option {
	return func(c *RealCollector) {
		c.codename = codename
	}
}

// WithLogger sets the collector's logger.
func WithLogger(l logging.Logger) Option {
	return func(c *RealCollector) {
		c.logger = logging.OrNop(l)
	}
}

// NewCollector creates a collector for the local machine.
func NewCollector(opts ...Option) *RealCollector {
	c := &RealCollector{
		root:     "/",
		logger:   logging.Nop(),
		cpuInfo:  cpu.InfoWithContext,
		hostInfo: host.InfoWithContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect builds a hardware record. Failures of individual sources leave
// the matching fields empty; only context cancellation is an error.
func (c *RealCollector) Collect(ctx context.Context) (*hwreport.Record, error) {
	rec := &hwreport.Record{}

	goos := runtime.GOOS
	if info, err := c.hostInfo(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("hardware collection cancelled: %w", ctx.Err())
		}
		c.logger.Warn("host detection failed", "error", err)
	} else if info.OS != "" {
		goos = info.OS
		c.logger.Debug("host detected", "os", info.OS, "platform", info.Platform,
			"kernel", info.KernelVersion, "virtualization", info.VirtualizationSystem)
	}

	if err := c.collectCPU(ctx, rec); err != nil {
		return nil, err
	}

	if goos != "linux" {
		c.logger.Warn("motherboard and PCI inventory require linux sysfs", "os", goos)
		return rec, nil
	}

	rec.Motherboard.Name = readMotherboard(c.root)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("hardware collection cancelled: %w", err)
	}
	c.collectPCI(rec)

	c.logger.Info("hardware collected",
		"motherboard", rec.Motherboard.Name,
		"devices", len(rec.Devices),
		"gpus", len(rec.GPUs),
		"cpu", rec.CPU.ProcessorName)
	return rec, nil
}

func (c *RealCollector) collectCPU(ctx context.Context, rec *hwreport.Record) error {
	rec.CPU.Codename = c.codename

	infos, err := c.cpuInfo(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("hardware collection cancelled: %w", ctx.Err())
		}
		c.logger.Warn("cpu detection failed", "error", err)
		return nil
	}
	if len(infos) == 0 {
		return nil
	}

	first := infos[0]
	rec.CPU.ProcessorName = strings.TrimSpace(first.ModelName)
	if rec.CPU.Codename == "" {
		rec.CPU.Codename = codename(first.VendorID, first.Family, first.Model)
	}
	return nil
}

func (c *RealCollector) collectPCI(rec *hwreport.Record) {
	for _, d := range scanPCI(c.root) {
		name := fmt.Sprintf("%s (%s)", className(d.Class), d.Slot)
		rec.Devices = append(rec.Devices, hwreport.Device{
			Name:        name,
			DeviceID:    d.DeviceID,
			SubsystemID: d.SubsystemID,
		})

		if !isDisplayController(d.Class) {
			continue
		}
		manufacturer := vendorName(d.Vendor)
		rec.GPUs = append(rec.GPUs, hwreport.GPU{
			Name:         fmt.Sprintf("%s %s (%s)", manufacturer, className(d.Class), d.Slot),
			Manufacturer: manufacturer,
			DeviceID:     d.DeviceID,
			DeviceType:   gpuType(d.Vendor, d.Slot),
		})
	}
}
