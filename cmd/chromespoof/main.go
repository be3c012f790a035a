package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version":
			fmt.Printf("chromespoof %s\n", Version)
			fmt.Println("Chromebook detection and hardware identity substitution for macOS")
			return
		case "report":
			if err := runReport(os.Args[2:], os.Stdin, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "detect":
			code, err := runDetect(os.Args[2:], os.Stdout)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(code)
		case "collect":
			if err := runCollect(os.Args[2:], os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "rules":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "Error: rules subcommand requires an action")
				fmt.Fprintln(os.Stderr, "Usage: chromespoof rules dump [options]")
				fmt.Fprintln(os.Stderr, "       chromespoof rules check <file>")
				os.Exit(1)
			}
			switch os.Args[2] {
			case "dump":
				if err := runRulesDump(os.Args[3:], os.Stdout); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
			case "check":
				if err := runRulesCheck(os.Args[3:], os.Stdout); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
			default:
				fmt.Fprintf(os.Stderr, "Error: unknown rules action: %s\n", os.Args[2])
				fmt.Fprintln(os.Stderr, "Usage: chromespoof rules dump [options]")
				fmt.Fprintln(os.Stderr, "       chromespoof rules check <file>")
				os.Exit(1)
			}
			return
		case "--help", "-h", "help":
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(1)
		}
	}

	printUsage()
}

func printUsage() {
	fmt.Println("chromespoof - Chromebook detection and identity substitution")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  chromespoof --version              Show version information")
	fmt.Println("  chromespoof report [options]       Detect a Chromebook and show substitutions")
	fmt.Println("  chromespoof detect [options]       Exit 0 on Chromebook hardware, 1 otherwise")
	fmt.Println("  chromespoof collect [options]      Write a hardware report for this machine")
	fmt.Println("  chromespoof rules dump [options]   Print the active substitution rules as Lua")
	fmt.Println("  chromespoof rules check <file>     Validate a rules file")
	fmt.Println()
	fmt.Println("Run 'chromespoof <command> --help' for command options.")
}
