package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"visval/internal/config"
	"visval/internal/report"
	"visval/internal/runner"
	"visval/internal/store"
	"visval/internal/ui/live"
)

var runAndWrite = runner.RunAndWrite

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .visval/config.yml)")
		inputRoot := fs.String("input-root", "", "Override input root directory")
		outputDir := fs.String("output-dir", "", "Override output directory")
		verbose := fs.Bool("verbose", false, "Print per-file progress instead of the live UI")
		noColor := fs.Bool("no-color", false, "Disable colored output")
		uiMode := fs.String("ui", "auto", "UI mode: auto, live or plain")
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
		if *inputRoot != "" {
			cfg.Input.Root = *inputRoot
		}

		decision, err := resolveUIMode(*uiMode, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		var observer runner.RunObserver
		var controller *live.Controller
		if decision.useLive {
			controller = live.Start(stdout, live.Options{NoColor: *noColor})
			observer = controller
		} else if *verbose {
			observer = runner.NewVerboseObserver(stdout, *noColor)
		}

		results, paths, err := runAndWrite(context.Background(), cfg, runner.RunParams{
			BaseDir:   baseDir,
			OutputDir: *outputDir,
			Dirs:      fs.Args(),
			Observer:  observer,
		})
		if controller != nil {
			controller.Close()
			controller.Wait()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		if err := report.Write(paths.ReportPath(), results); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}

		if cfg.History.Database != "" {
			if err := recordHistory(context.Background(), baseDir, cfg.History.Database, results); err != nil {
				fmt.Fprintf(stderr, "Failed to record run history: %v\n", err)
				return ExitError
			}
		}

		fmt.Fprintf(stdout, "Run %s completed\n", results.RunID)
		fmt.Fprintf(stdout, "Images: %d  Accuracy: %.5f  MCC: %.5f\n",
			results.Summary.Images, results.Summary.Accuracy, results.Summary.MCC)
		fmt.Fprintf(stdout, "Class CSV: %s\n", paths.ClassCSVPath())
		fmt.Fprintf(stdout, "Summary CSV: %s\n", paths.SummaryCSVPath())
		fmt.Fprintf(stdout, "Report: %s\n", paths.ReportPath())
		return ExitOK
	}
}

// recordHistory appends a run to the history database.
func recordHistory(ctx context.Context, baseDir, database string, results runner.Results) error {
	path := database
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return store.RecordRun(ctx, db, results)
}
