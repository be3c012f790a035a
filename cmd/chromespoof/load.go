package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/hwreport"
	"github.com/ZebulonRouseFrantzich/chromespoof/internal/logging"
	"github.com/ZebulonRouseFrantzich/chromespoof/internal/pcidata"
	"github.com/ZebulonRouseFrantzich/chromespoof/internal/platform"
	"github.com/ZebulonRouseFrantzich/chromespoof/internal/rules"
	"github.com/ZebulonRouseFrantzich/chromespoof/internal/spoof"
)

// loadRecord reads the hardware report named by opts.input, or collects
// one from this machine when no input is given.
func loadRecord(ctx context.Context, opts sourceOpts, stdin io.Reader, logger logging.Logger) (*hwreport.Record, error) {
	switch opts.input {
	case "":
		collector := platform.NewCollector(platform.WithCodename(opts.codename), platform.WithLogger(logger))
		rec, err := collector.Collect(ctx)
		if err != nil {
			return nil, fmt.Errorf("collect hardware: %w", err)
		}
		return rec, nil
	case "-":
		rec, err := hwreport.Decode(stdin, hwreport.FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("read hardware report from stdin: %w", err)
		}
		return withCodename(rec, opts.codename), nil
	default:
		rec, err := hwreport.Load(opts.input)
		if err != nil {
			return nil, fmt.Errorf("read hardware report: %w", err)
		}
		logger.Debug("hardware report loaded", "path", opts.input, "devices", len(rec.Devices), "gpus", len(rec.GPUs))
		return withCodename(rec, opts.codename), nil
	}
}

func withCodename(rec *hwreport.Record, codename string) *hwreport.Record {
	if codename != "" {
		rec.CPU.Codename = codename
	}
	return rec
}

// loadRules parses the rules file selected by path, falling back to the
// built-in rules.
func loadRules(ctx context.Context, path string, logger logging.Logger) (*rules.Set, error) {
	path = resolveRulesPath(path)
	if path == "" {
		return rules.Defaults(), nil
	}

	set, err := rules.NewParser().WithLogger(logger).ParseFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	logger.Info("rules loaded", "path", path, "graphics", len(set.Graphics), "processor", len(set.Processor))
	return set, nil
}

// loadDataset returns the reference dataset selected by opts. A signature
// makes verification mandatory.
func loadDataset(opts sourceOpts, logger logging.Logger) (*pcidata.Dataset, error) {
	if opts.datasetPath == "" {
		ds := pcidata.Default()
		logger.Debug("built-in dataset selected", "devices", ds.Len())
		return ds, nil
	}

	if opts.datasetSig == "" {
		ds, err := pcidata.Load(opts.datasetPath)
		if err != nil {
			return nil, fmt.Errorf("load dataset: %w", err)
		}
		logger.Warn("dataset loaded without signature verification", "path", opts.datasetPath, "devices", ds.Len())
		return ds, nil
	}

	ds, result, err := pcidata.NewVerifier(opts.keyring).LoadVerified(opts.datasetPath, opts.datasetSig)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("dataset signature verified", "path", opts.datasetPath,
		"signer", result.Fingerprint, "version", ds.Version(), "devices", ds.Len())
	return ds, nil
}

// newEngine builds an engine from the rules and dataset selected by opts.
// The dataset is returned for diagnostics.
func newEngine(ctx context.Context, opts sourceOpts, logger logging.Logger) (*spoof.Engine, *pcidata.Dataset, error) {
	set, err := loadRules(ctx, opts.rulesPath, logger)
	if err != nil {
		return nil, nil, err
	}
	ds, err := loadDataset(opts, logger)
	if err != nil {
		return nil, nil, err
	}
	return spoof.New(ds, set, spoof.WithLogger(logger)), ds, nil
}

// logNearMisses logs devices whose ID is in the dataset under a different
// subsystem. These are usually Chromebook parts on a board revision the
// dataset does not list yet.
func logNearMisses(rec *hwreport.Record, ds *pcidata.Dataset, logger logging.Logger) int {
	misses := 0
	for _, d := range rec.Devices {
		known := ds.Subsystems(d.DeviceID)
		if len(known) == 0 || ds.Match(d.DeviceID, d.SubsystemID) {
			continue
		}
		misses++
		logger.Debug("device listed with other subsystems", "device", d.Name,
			"device_id", d.DeviceID, "subsystem_id", d.SubsystemID, "known", strings.Join(known, ","))
	}
	return misses
}
