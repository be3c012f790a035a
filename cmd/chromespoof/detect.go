package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

type detectOpts struct {
	sourceOpts
	quiet bool
	help  bool
}

func parseDetectArgs(args []string) (*detectOpts, error) {
	opts := &detectOpts{sourceOpts: defaultSourceOpts()}

	for i := 0; i < len(args); i++ {
		ok, err := opts.parseSourceFlag(args, &i)
		if err != nil {
			return nil, err
		}
		if ok {
			continue
		}

		switch args[i] {
		case "--help", "-h":
			opts.help = true
		case "--quiet", "-q":
			opts.quiet = true
		default:
			return nil, fmt.Errorf("unknown option: %s\nRun 'chromespoof detect --help' for usage", args[i])
		}
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// runDetect handles the `chromespoof detect` subcommand
// Returns an exit code (0 = Chromebook, 1 = not a Chromebook) and an error
func runDetect(args []string, stdout io.Writer) (int, error) {
	opts, err := parseDetectArgs(args)
	if err != nil {
		return 2, err
	}
	if opts.help {
		printDetectHelp(stdout)
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := newLogger(opts.verbose)

	engine, ds, err := newEngine(ctx, opts.sourceOpts, logger)
	if err != nil {
		return 2, err
	}
	rec, err := loadRecord(ctx, opts.sourceOpts, os.Stdin, logger)
	if err != nil {
		return 2, err
	}
	logNearMisses(rec, ds, logger)

	detection := engine.Inspect(rec)
	if !opts.quiet {
		if detection.IsChromebook {
			fmt.Fprintf(stdout, "Chromebook detected (%s)\n", orUnknown(detection.Motherboard))
			for _, d := range detection.Devices {
				fmt.Fprintf(stdout, "  - %s (Device ID: %s, Subsystem ID: %s)\n", d.Name, d.DeviceID, d.SubsystemID)
			}
		} else {
			fmt.Fprintln(stdout, "No Chromebook hardware detected")
		}
	}

	if detection.IsChromebook {
		return 0, nil
	}
	return 1, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func printDetectHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: chromespoof detect [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check for Chromebook hardware.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  Chromebook hardware detected")
	fmt.Fprintln(w, "  1  Not a Chromebook")
	fmt.Fprintln(w, "  2  Error")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	printSourceHelp(w)
	fmt.Fprintln(w, "  -q, --quiet          Print nothing, only set the exit code")
	fmt.Fprintln(w, "  -h, --help           Show this help message")
}
