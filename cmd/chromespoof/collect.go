package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/hwreport"
	"github.com/ZebulonRouseFrantzich/chromespoof/internal/platform"
)

type collectOpts struct {
	format   hwreport.Format
	codename string
	output   string
	root     string
	verbose  bool
	help     bool
}

func parseCollectArgs(args []string) (*collectOpts, error) {
	opts := &collectOpts{
		format:  hwreport.FormatJSON,
		root:    "/",
		verbose: isTruthy(os.Getenv(EnvDebug)),
	}

	formatSet := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, _, _ := strings.Cut(arg, "=")

		var err error
		switch name {
		case "--help", "-h":
			opts.help = true
		case "--verbose", "-v":
			opts.verbose = true
		case "--format", "-f":
			var value string
			if value, err = flagValue(args, &i); err == nil {
				opts.format, err = hwreport.ParseFormat(value)
				formatSet = true
			}
		case "--codename":
			opts.codename, err = flagValue(args, &i)
		case "--output", "-o":
			opts.output, err = flagValue(args, &i)
		case "--root":
			opts.root, err = flagValue(args, &i)
		default:
			return nil, fmt.Errorf("unknown option: %s\nRun 'chromespoof collect --help' for usage", arg)
		}
		if err != nil {
			return nil, err
		}
	}

	if !formatSet && opts.output != "" {
		opts.format = hwreport.FormatFromPath(opts.output)
	}
	return opts, nil
}

// runCollect handles the `chromespoof collect` subcommand
func runCollect(args []string, stdout io.Writer) error {
	opts, err := parseCollectArgs(args)
	if err != nil {
		return err
	}
	if opts.help {
		printCollectHelp(stdout)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collector := platform.NewCollector(
		platform.WithRoot(opts.root),
		platform.WithCodename(opts.codename),
		platform.WithLogger(newLogger(opts.verbose)),
	)
	rec, err := collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect hardware: %w", err)
	}

	if opts.output == "" {
		return hwreport.Encode(stdout, rec, opts.format)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := hwreport.Encode(f, rec, opts.format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	fmt.Fprintf(stdout, "Hardware report written to %s\n", opts.output)
	return nil
}

func printCollectHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: chromespoof collect [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Collect a hardware report from this machine.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -f, --format FORMAT  json or yaml (default: from --output extension, else json)")
	fmt.Fprintln(w, "  --codename NAME      Set the CPU codename instead of inferring it")
	fmt.Fprintln(w, "  -o, --output FILE    Write to FILE instead of stdout")
	fmt.Fprintln(w, "  --root DIR           Read sysfs below DIR (default: /)")
	fmt.Fprintf(w, "  -v, --verbose        Log to stderr (env %s=1)\n", EnvDebug)
	fmt.Fprintln(w, "  -h, --help           Show this help message")
}
