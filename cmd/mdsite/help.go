package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Serve the site over HTTP")
	fmt.Fprintln(w, "  build      Write the site as static files")
	fmt.Fprintln(w, "  check      Verify pages in a headless browser")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  import     Convert an HTML page into a page source")
	fmt.Fprintln(w, "  doctor     Check system configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdsite help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --content <dir>       Local content directory")
	fmt.Fprintln(w, "      --remote <url>        Remote content base URL")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom templates and styles")
	fmt.Fprintln(w, "      --engine <s>          Render engine: legacy, commonmark")
	fmt.Fprintln(w, "      --highlighter <s>     Code highlighter: rules, chroma, none")
	fmt.Fprintln(w, "      --sanitize            Strip unsafe HTML")
	fmt.Fprintln(w, "      --no-toc              Disable table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w, "      --log-json            Log as JSON")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the site over HTTP until interrupted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :8001)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the index, every page, the gallery and the styles as static files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default public)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite check [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Open every page in a headless browser and follow its first TOC link,")
	fmt.Fprintln(w, "then follow every index quick link. Without --base-url the site is")
	fmt.Fprintln(w, "served on a local port for the duration of the check.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check:")
	fmt.Fprintln(w, "  -u, --base-url <url>      Site to check")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-page timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --stealth             Open pages with stealth evasions")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after applying environment and flags, as YAML.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printImportUsage prints usage for the import command.
func printImportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite import <file|url> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert the main content of an HTML page to Markdown and write it to")
	fmt.Fprintln(w, "<content.dir>/<name>.md.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Import:")
	fmt.Fprintln(w, "  -n, --name <name>         Page name (default: source base name)")
	fmt.Fprintln(w, "      --domain <url>        Base URL for relative links")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing page source")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdServe:
		printServeUsage(env.Stdout)
	case cmdBuild:
		printBuildUsage(env.Stdout)
	case cmdCheck:
		printCheckUsage(env.Stdout)
	case cmdConfig:
		printConfigUsage(env.Stdout)
	case cmdImport:
		printImportUsage(env.Stdout)
	case cmdDoctor:
		fmt.Fprintln(env.Stdout, "Usage: mdsite doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, container and content setup.")
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: mdsite version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: mdsite help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
