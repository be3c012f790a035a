package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/render"
)

type reportOpts struct {
	sourceOpts
	macOS    string // Darwin version of the target release
	json     bool
	noPrompt bool
	help     bool
}

func parseReportArgs(args []string) (*reportOpts, error) {
	opts := &reportOpts{sourceOpts: defaultSourceOpts()}

	for i := 0; i < len(args); i++ {
		ok, err := opts.parseSourceFlag(args, &i)
		if err != nil {
			return nil, err
		}
		if ok {
			continue
		}

		switch arg := args[i]; {
		case arg == "--help" || arg == "-h":
			opts.help = true
		case arg == "--json":
			opts.json = true
		case arg == "--no-prompt":
			opts.noPrompt = true
		case arg == "--macos" || strings.HasPrefix(arg, "--macos="):
			if opts.macOS, err = flagValue(args, &i); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown option: %s\nRun 'chromespoof report --help' for usage", arg)
		}
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// runReport handles the `chromespoof report` subcommand
func runReport(args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseReportArgs(args)
	if err != nil {
		return err
	}
	if opts.help {
		printReportHelp(stdout)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := newLogger(opts.verbose)

	engine, ds, err := newEngine(ctx, opts.sourceOpts, logger)
	if err != nil {
		return err
	}
	rec, err := loadRecord(ctx, opts.sourceOpts, stdin, logger)
	if err != nil {
		return err
	}
	logNearMisses(rec, ds, logger)

	report := engine.Assemble(rec, opts.macOS)

	if opts.json {
		data, err := render.FormatJSON(report)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	f, _ := stdout.(*os.File)
	fmt.Fprint(stdout, render.NewFormatter(stdout, render.ColorEnabled(f)).Format(report))

	// The pause only makes sense for a person at a terminal reading stdin.
	if report.IsChromebook && !opts.noPrompt && opts.input != "-" && render.IsTerminal(os.Stdin) {
		return render.WaitForEnter(stdin, stdout)
	}
	return nil
}

func printReportHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: chromespoof report [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Detect Chromebook hardware and show the CPU and iGPU identities to spoof.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	printSourceHelp(w)
	fmt.Fprintln(w, "  --macos DARWIN       Target macOS Darwin version (e.g. 21.0.0)")
	fmt.Fprintln(w, "  --json               Print the report as JSON")
	fmt.Fprintln(w, "  --no-prompt          Do not wait for Enter after the report")
	fmt.Fprintln(w, "  -h, --help           Show this help message")
}

func printSourceHelp(w io.Writer) {
	fmt.Fprintln(w, "  -i, --input FILE     Hardware report (JSON or YAML, '-' for stdin);")
	fmt.Fprintln(w, "                       collected from this machine when omitted")
	fmt.Fprintln(w, "  --codename NAME      Override the CPU codename")
	fmt.Fprintf(w, "  --rules FILE         Lua rules file (env %s, default ~/.config/chromespoof/%s)\n", EnvRules, rulesFileName)
	fmt.Fprintf(w, "  --dataset FILE       PCI reference dataset (env %s)\n", EnvDataset)
	fmt.Fprintln(w, "  --dataset-sig FILE   Detached OpenPGP signature for --dataset")
	fmt.Fprintf(w, "  --keyring FILE       Public keyring for --dataset-sig (env %s)\n", EnvKeyring)
	fmt.Fprintf(w, "  -v, --verbose        Log to stderr (env %s=1)\n", EnvDebug)
}
