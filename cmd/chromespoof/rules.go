package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/chromespoof/internal/rules"
)

// runRulesDump handles the `chromespoof rules dump` subcommand
func runRulesDump(args []string, stdout io.Writer) error {
	rulesPath := os.Getenv(EnvRules)
	builtin := false
	verbose := isTruthy(os.Getenv(EnvDebug))

	for i := 0; i < len(args); i++ {
		name, _, _ := strings.Cut(args[i], "=")
		switch name {
		case "--help", "-h":
			printRulesHelp(stdout)
			return nil
		case "--builtin":
			builtin = true
		case "--verbose", "-v":
			verbose = true
		case "--rules":
			value, err := flagValue(args, &i)
			if err != nil {
				return err
			}
			rulesPath = value
		default:
			return fmt.Errorf("unknown option: %s\nRun 'chromespoof rules --help' for usage", args[i])
		}
	}

	set := rules.Defaults()
	if !builtin {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var err error
		if set, err = loadRules(ctx, rulesPath, newLogger(verbose)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(stdout, rules.NewGenerator().Generate(set))
	return err
}

// runRulesCheck handles the `chromespoof rules check` subcommand
func runRulesCheck(args []string, stdout io.Writer) error {
	var paths []string
	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			printRulesHelp(stdout)
			return nil
		default:
			if len(arg) > 0 && arg[0] != '-' {
				paths = append(paths, arg)
			} else {
				return fmt.Errorf("unknown option: %s\nRun 'chromespoof rules --help' for usage", arg)
			}
		}
	}

	if len(paths) == 0 {
		return fmt.Errorf("no rules file specified; run 'chromespoof rules --help' for usage")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	parser := rules.NewParser()
	failed := 0
	for _, path := range paths {
		set, err := parser.ParseFile(ctx, path)
		if err != nil {
			fmt.Fprintf(stdout, "✗ %s\n  %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(stdout, "✓ %s (%d graphics rules, %d processor rules)\n", path, len(set.Graphics), len(set.Processor))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d rules files invalid", failed, len(paths))
	}
	return nil
}

func printRulesHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: chromespoof rules dump [options]")
	fmt.Fprintln(w, "       chromespoof rules check <file>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inspect substitution rules. 'dump' prints the active rules as a Lua")
	fmt.Fprintln(w, "rules file; 'check' validates rules files without using them.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dump options:")
	fmt.Fprintf(w, "  --rules FILE   Rules file to load (env %s)\n", EnvRules)
	fmt.Fprintln(w, "  --builtin      Dump the built-in rules, ignoring any rules file")
	fmt.Fprintln(w, "  -v, --verbose  Log to stderr")
	fmt.Fprintln(w, "  -h, --help     Show this help message")
}
