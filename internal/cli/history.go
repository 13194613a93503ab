package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"visval/internal/config"
	"visval/internal/store"
)

func runHistory(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .visval/config.yml)")
		limit := fs.Int("limit", 20, "Maximum number of runs to list")
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
		if cfg.History.Database == "" {
			fmt.Fprintln(stderr, "No history database configured (set history.database in the config).")
			return ExitError
		}

		path := cfg.History.Database
		if !filepath.IsAbs(path) {
			path = filepath.Join(config.BaseDirFromConfigPath(resolvedConfig), path)
		}
		db, err := store.Open(path)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open history database: %v\n", err)
			return ExitError
		}
		defer db.Close()

		runs, err := store.ListRuns(context.Background(), db, *limit)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to list runs: %v\n", err)
			return ExitError
		}
		if len(runs) == 0 {
			fmt.Fprintln(stdout, "No runs recorded.")
			return ExitOK
		}

		w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RUN\tSTARTED\tIMAGES\tCLASSES\tACCURACY\tF1\tMCC")
		for _, run := range runs {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.5f\t%.5f\t%.5f\n",
				run.RunID,
				run.StartedAt.UTC().Format("2006-01-02 15:04:05"),
				run.Images,
				run.Classes,
				run.Accuracy,
				run.F1,
				run.MCC,
			)
		}
		if err := w.Flush(); err != nil {
			fmt.Fprintf(stderr, "Failed to render history: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
