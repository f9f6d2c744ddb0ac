// ABOUTME: The trace subcommands: show run summaries, export them as YAML and rebuild the SQLite index.
// ABOUTME: Every subcommand reads a JSONL trace log, defaulting to the one in the data directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/2389-research/yorool/trace"
)

func newTraceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect recorded router traces",
	}
	cmd.AddCommand(newTraceShowCmd(a), newTraceExportCmd(a), newTraceReindexCmd(a))
	return cmd
}

// tracePath returns the file named on the command line or the default log.
func (a *app) tracePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return filepath.Join(traceDir(a.cfg, a.dataDir), jsonlName)
}

func newTraceShowCmd(a *app) *cobra.Command {
	var runID string
	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "List the runs in a trace log, or one run's records from the index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if runID != "" {
				return a.showRun(runID)
			}
			records, err := trace.ReadJSONL(a.tracePath(args))
			if err != nil {
				return err
			}
			summaries := trace.Summarize(records)
			w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tLABEL\tTICKS\tQUERIES\tOUTCOME")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d/%d\t%s\n", s.RunID, s.Label, s.Ticks, s.Resolved, s.Queries, s.Outcome)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%d records, %d runs\n", len(records), len(summaries))
			return nil
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "Print the records of one run from the SQLite index")
	return cmd
}

// showRun prints one run's records as indexed in SQLite. The index must
// already exist; it is written when trace.sqlite is on or by trace reindex.
func (a *app) showRun(raw string) error {
	id, err := ulid.ParseStrict(raw)
	if err != nil {
		return fmt.Errorf("parse run id %q: %w", raw, err)
	}
	path := filepath.Join(traceDir(a.cfg, a.dataDir), sqliteName)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no trace index at %s (run \"yorool trace reindex\"): %w", path, err)
	}
	idx, err := trace.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer func() { _ = idx.Close() }()

	records, err := idx.Records(id)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("run %s is not in the index", id)
	}
	for _, rec := range records {
		fmt.Fprintln(a.stdout, rec.Line())
	}
	fmt.Fprintf(a.stdout, "%d records\n", len(records))
	return nil
}

func newTraceExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export run summaries as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			records, err := trace.ReadJSONL(a.tracePath(args))
			if err != nil {
				return err
			}
			doc, err := trace.ExportYAML(trace.Summarize(records))
			if err != nil {
				return err
			}
			if out == "" {
				_, err = fmt.Fprint(a.stdout, doc)
				return err
			}
			if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(a.stdout, "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newTraceReindexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex [file]",
		Short: "Rebuild the SQLite trace index from a trace log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			records, err := trace.ReadJSONL(a.tracePath(args))
			if err != nil {
				return err
			}
			path := filepath.Join(traceDir(a.cfg, a.dataDir), sqliteName)
			idx, err := trace.OpenSQLite(path)
			if err != nil {
				return err
			}
			defer func() { _ = idx.Close() }()
			if err := idx.Rebuild(records); err != nil {
				return err
			}
			runs, err := idx.Runs()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "indexed %d records in %d runs into %s\n", len(records), len(runs), path)
			return nil
		},
	}
}
