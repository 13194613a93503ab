package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"visval/internal/config"
	"visval/internal/report"
	"visval/internal/runner"
)

func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .visval/config.yml)")
		outputDir := fs.String("output-dir", "", "Override output directory")
		runID := fs.String("run", "", "Run id to render (default: latest)")
		if err := fs.Parse(args); err != nil {
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

		selectedRun := *runID
		if selectedRun == "" {
			selectedRun, err = latestRunID(dir)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to find run: %v\n", err)
				return ExitError
			}
		}

		paths, err := runner.NewOutputPaths(dir, cfg.Output.Prefix, selectedRun)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve run paths: %v\n", err)
			return ExitError
		}
		results, err := runner.LoadResults(paths.ResultsPath())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load run %s: %v\n", selectedRun, err)
			return ExitError
		}
		if err := report.Write(paths.ReportPath(), results); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Report written to %s\n", paths.ReportPath())
		return ExitOK
	}
}

// latestRunID picks the newest run directory under the output dir.
// Run ids start with a UTC timestamp, so lexicographic order matches
// chronological order.
func latestRunID(outputDir string) (string, error) {
	runsDir := filepath.Join(outputDir, "runs")
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		return "", fmt.Errorf("read runs directory %s: %w", runsDir, err)
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no runs found in %s", runsDir)
	}
	sort.Strings(ids)
	return ids[len(ids)-1], nil
}
