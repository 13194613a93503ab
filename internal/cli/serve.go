package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"visval/internal/config"
	"visval/internal/reportserver"
)

// serveReports is a test seam for running the report server.
var serveReports = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .visval/config.yml)")
		outputDir := fs.String("output-dir", "", "Override output directory")
		addr := fs.String("addr", "127.0.0.1:5000", "Address to listen on")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}
		if *addr == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}

		resolvedConfig, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve config: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolvedConfig)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		baseDir := config.BaseDirFromConfigPath(resolvedConfig)

		dir := *outputDir
		if dir == "" {
			dir = cfg.Output.Dir
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}

		fmt.Fprintf(stdout, "Serving reports at http://%s\n", *addr)
		if err := serveReports(context.Background(), reportserver.Config{
			Addr:      *addr,
			OutputDir: dir,
		}); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
