package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"factcheck/adapters/render"
	"factcheck/adapters/sink"
	"factcheck/app"
	"factcheck/domain/run"
	"factcheck/internal/config"
	"factcheck/internal/container"
	"factcheck/internal/profiler"
	"factcheck/ports"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// outputOptions are shared by the profile and sql commands
type outputOptions struct {
	outDir   string
	name     string
	print    bool
	asJSON   bool
	noSave   bool
	record   bool
	parallel int
}

func (o *outputOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.outDir, "out", "", "Output directory (default FCOTD_OUTPUT_DIR)")
	cmd.Flags().StringVar(&o.name, "name", "", "Report name; files are written as <name>_fact_checks.<ext>")
	cmd.Flags().BoolVar(&o.print, "print", false, "Print the report as a markdown table")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "Print the full result as JSON")
	cmd.Flags().BoolVar(&o.noSave, "no-save", false, "Do not write report files")
	cmd.Flags().BoolVar(&o.record, "record", false, "Record the run in the DATABASE_URL run history")
}

// prepare enables run history when --record is set
func (o *outputOptions) prepare(ctx context.Context, c *container.Container) error {
	if !o.record {
		return nil
	}
	_, err := c.EnableRunHistory(ctx)
	return err
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fcotd",
		Short:         "Fact check of the data: per-column profile of tabular datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newProfileCmd(),
		newSQLCmd(),
		newSchemaCmd(),
		newHistoryCmd(),
	)
	return rootCmd
}

func loadContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(cfg)
}

func newProfileCmd() *cobra.Command {
	var opts outputOptions

	cmd := &cobra.Command{
		Use:   "profile [files...]",
		Short: "Profile CSV or XLSX files and write fact-check reports",
		Long: `Profile one or more CSV/XLSX files. Each file is read, every column is
profiled and the report is saved through the sink chain (styled workbook,
plain workbook, then delimited text; see FCOTD_SINKS).

Files are processed concurrently, at most FCOTD_MAX_PARALLEL at a time.

Example: fcotd profile sales.csv inventory.xlsx --out reports --print`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.name != "" && len(args) > 1 {
				return fmt.Errorf("--name can only be used with a single file")
			}
			c, err := loadContainer()
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			if err := opts.prepare(cmd.Context(), c); err != nil {
				return err
			}
			if opts.parallel <= 0 {
				opts.parallel = c.Config.Runner.MaxParallel
			}
			sources := make([]ports.TableSource, len(args))
			for i, path := range args {
				sources[i] = c.FileSource(path)
			}
			return runAll(cmd.Context(), cmd.OutOrStdout(), c.Service, sources, opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().IntVar(&opts.parallel, "parallel", 0, "Maximum concurrent files (default FCOTD_MAX_PARALLEL)")
	return cmd
}

func newSQLCmd() *cobra.Command {
	var opts outputOptions
	var query string

	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Profile the result of a SQL query against DATABASE_URL",
		Long: `Run a query against the PostgreSQL database in DATABASE_URL and profile
the result set. Column types follow the database column types.

Example: fcotd sql --query "SELECT * FROM orders" --name orders`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("--query is required")
			}
			c, err := loadContainer()
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			src, err := c.QuerySource(cmd.Context(), opts.name, query)
			if err != nil {
				return err
			}
			if err := opts.prepare(cmd.Context(), c); err != nil {
				return err
			}
			opts.parallel = 1
			return runAll(cmd.Context(), cmd.OutOrStdout(), c.Service, []ports.TableSource{src}, opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&query, "query", "", "SQL query to profile")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [file]",
		Short: "Show inferred column types and the numeric/non-numeric split",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer()
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			t, err := c.FileSource(args[0]).ReadTable(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d rows, %d columns\n\n", t.Height(), t.Width())
			for i, col := range t.Columns() {
				fmt.Fprintf(out, "%3d  %-30s %-9s nulls=%d\n", i+1, col.Name, col.Type, col.NullCount())
			}
			part := profiler.Partition(t.Descriptors())
			fmt.Fprintf(out, "\nnumeric:     %s\n", strings.Join(part.Numeric, ", "))
			fmt.Fprintf(out, "non-numeric: %s\n", strings.Join(part.NonNumeric, ", "))
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent fact-check runs recorded in DATABASE_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer()
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			repo, err := c.EnableRunHistory(cmd.Context())
			if err != nil {
				return err
			}
			runs, err := repo.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), runs, asJSON)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of runs to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print runs as JSON")
	return cmd
}

func printHistory(out io.Writer, runs []run.Record, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}
	for _, r := range runs {
		saved := "-"
		if r.Saved() {
			saved = r.OutputPath
		}
		fmt.Fprintf(out, "%s  %s  %-20s %6d rows %4d cols  %s  %s\n",
			r.CompletedAt.Time().Format("2006-01-02 15:04:05"), r.ID, r.Source,
			r.Rows, r.Columns, r.Fingerprint.Short(), saved)
	}
	return nil
}

// runAll runs one independent fact check per source. A failing source does
// not stop the others; every failure is reported at the end.
func runAll(ctx context.Context, out io.Writer, svc *app.FactCheckService, sources []ports.TableSource, opts outputOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !opts.noSave && opts.name == "" {
		if err := checkReportNames(sources); err != nil {
			return err
		}
	}
	results := make([]*app.FactCheckResult, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group
	g.SetLimit(max(opts.parallel, 1))
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			results[i], errs[i] = svc.Run(ctx, app.FactCheckRequest{
				Source:  src,
				Name:    opts.name,
				Dir:     opts.outDir,
				Persist: !opts.noSave,
			})
			return errs[i]
		})
	}
	_ = g.Wait()

	failed := 0
	for i, result := range results {
		if err := printResult(out, sources[i].SourceName(), result, errs[i], opts); err != nil {
			return err
		}
		if errs[i] != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(sources))
	}
	return nil
}

// checkReportNames fails when two sources would be saved under the same
// report file name. Names are compared case-insensitively.
func checkReportNames(sources []ports.TableSource) error {
	seen := make(map[string]string, len(sources))
	for _, src := range sources {
		base := sink.Destination{Name: src.SourceName()}.BaseName()
		key := strings.ToLower(base)
		if first, ok := seen[key]; ok {
			return fmt.Errorf("sources %q and %q would both be saved as %s_fact_checks; profile them separately with --name",
				first, base, first)
		}
		seen[key] = base
	}
	return nil
}

func printResult(out io.Writer, name string, result *app.FactCheckResult, runErr error, opts outputOptions) error {
	if result == nil {
		fmt.Fprintf(out, "%s: %v\n", name, runErr)
		return nil
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	if opts.print {
		title := opts.name
		if title == "" {
			title = result.SourceName
		}
		fmt.Fprintln(out, render.Markdown(title, result.Report))
	}

	status := "not saved"
	if result.Outcome != nil {
		status = result.Outcome.Message
	}
	fmt.Fprintf(out, "%s: %d variables, fingerprint %s, %s\n",
		result.SourceName, result.Report.Len(), result.Fingerprint.Short(), status)
	if runErr != nil {
		fmt.Fprintf(out, "%s: %v\n", name, runErr)
	}
	return nil
}
