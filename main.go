// molding builds swept moldings from scripts.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/chazu/molding/internal/config"
	"github.com/chazu/molding/internal/logger"
	"go.uber.org/zap"
)

func main() {
	config.ParseFlags()
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := NewAppWithConfig(cfg, logger.Log)

	command := args[0]
	rest := args[1:]

	var code int
	switch command {
	case "build", "b":
		code = cmdBuild(app, cfg, rest)
	case "info":
		code = cmdInfo(app, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		code = 1
	}
	logger.Sync()
	os.Exit(code)
}

func printUsage() {
	fmt.Println(`molding - procedural molding generator

Usage:
  molding [flags] <command> [options]

Commands:
  build <script> [outdir]   Write one STL file per molding
  info <script> [-json]     Show sections, vertices and faces per molding
  help                      Show this help

Flags:
  -config <file>   Config file (default ./molding.yaml or the user config dir)
  -debug           Enable debug logging
  -out <dir>       Output directory for build
  -profile <kind>  Default profile: square, circle or complex

Examples:
  molding build examples/picture_frame.molding out
  molding -profile circle info examples/baseboard.molding`)
}

func readScript(path string) (string, bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return "", false
	}
	return string(src), true
}

// report prints errors and warnings and tells whether the run succeeded.
func report(res EvalResult) bool {
	for _, w := range res.Warnings {
		if w.Node != "" {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Node, w.Message)
		} else {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
		}
	}
	for _, e := range res.Errors {
		if e.Line > 0 {
			fmt.Fprintf(os.Stderr, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error: %s\n", e.Message)
		}
	}
	return res.OK()
}

func cmdBuild(app *App, cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: molding build <script> [outdir]")
		return 1
	}
	src, ok := readScript(args[0])
	if !ok {
		return 1
	}
	dir := cfg.Output.Dir
	if len(args) > 1 {
		dir = args[1]
	}

	paths, res, err := app.Build(src, dir)
	if !report(res) {
		return 1
	}
	if err != nil {
		logger.Error("build failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "no geometry produced")
	}
	return 0
}

func cmdInfo(app *App, args []string) int {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: molding info <script> [-json]")
		return 1
	}
	src, ok := readScript(fs.Arg(0))
	if !ok {
		return 1
	}

	infos, res := app.Info(src)
	if !report(res) {
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Printf("%-20s %-7s %5s %8s %6s %8s %6s %9s  %s\n",
		"MOLDING", "SOURCE", "PARTS", "SECTIONS", "CLOSED", "VERTICES", "FACES", "LENGTH", "SIZE")
	for _, in := range infos {
		fmt.Printf("%-20s %-7s %5d %8d %6t %8d %6d %9.4f  %.3f x %.3f x %.3f\n",
			in.Name, in.Source, in.Parts, in.Sections, in.Closed, in.Vertices, in.Faces,
			in.Anchors.Length,
			in.Max[0]-in.Min[0], in.Max[1]-in.Min[1], in.Max[2]-in.Min[2])
	}
	return 0
}
