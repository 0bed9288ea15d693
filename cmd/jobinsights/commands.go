package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/jobinsights/internal/client"
	"github.com/fr4nk3nst1ner/jobinsights/internal/config"
	"github.com/fr4nk3nst1ner/jobinsights/internal/insights"
	"github.com/fr4nk3nst1ner/jobinsights/internal/jobs"
	"github.com/fr4nk3nst1ner/jobinsights/internal/logger"
	"github.com/fr4nk3nst1ner/jobinsights/internal/models"
	"github.com/fr4nk3nst1ner/jobinsights/internal/ui"
)

// options holds the global flags
type options struct {
	configPath string
	source     string
	table      string
	proxy      string
	silence    bool
	debug      bool
	progress   bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "jobinsights",
		Short:         "Query job listings by job type, industry and salary",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("source") {
				cfg.Source = opts.source
			}
			if flags.Changed("table") {
				cfg.Table = opts.table
			}
			if flags.Changed("proxy") {
				cfg.Proxy = opts.proxy
			}
			if flags.Changed("debug") {
				cfg.Debug = opts.debug
			}
			if flags.Changed("progress") {
				cfg.Progress = opts.progress
			}
			opts.cfg = cfg

			logger.SetDebug(cfg.Debug)
			ui.PrintBanner(cmd.ErrOrStderr(), opts.silence)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to the configuration file")
	pf.StringVar(&opts.source, "source", "", "Job listings source (file, sqlite:// or http(s) URL)")
	pf.StringVar(&opts.table, "table", "", "SQLite table holding the job listings")
	pf.StringVar(&opts.proxy, "proxy", "", "Proxy URL for remote sources")
	pf.BoolVar(&opts.silence, "silence", false, "Silence the banner")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	pf.BoolVar(&opts.progress, "progress", false, "Show a progress bar while reading files")

	root.AddCommand(
		newJobTypesCmd(opts),
		newIndustriesCmd(opts),
		newMaxSalaryCmd(opts),
		newMinSalaryCmd(opts),
		newJobsCmd(opts),
		newMatchCmd(),
	)
	return root
}

func (o *options) loader(cmd *cobra.Command) insights.Loader {
	readerOpts := []jobs.Option{
		jobs.WithTable(o.cfg.Table),
		jobs.WithHTTPClient(client.New(o.cfg.Proxy)),
		jobs.WithLogger(logger.Logger.WithWriter(cmd.ErrOrStderr())),
	}
	if o.cfg.Progress {
		readerOpts = append(readerOpts, jobs.WithProgress(cmd.ErrOrStderr()))
	}
	return jobs.NewReader(readerOpts...)
}

// sourceArg returns the positional source when given, the configured one otherwise
func (o *options) sourceArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.cfg.Source
}

func printLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func printSalary(w io.Writer, amount int, human bool) error {
	if human {
		_, err := fmt.Fprintln(w, ui.FormatAmount(amount))
		return err
	}
	_, err := fmt.Fprintln(w, amount)
	return err
}

func newJobTypesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "job-types [source]",
		Short: "List every job type once, in first-seen order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobTypes, err := insights.UniqueJobTypes(cmd.Context(), opts.loader(cmd), opts.sourceArg(args))
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), jobTypes)
		},
	}
}

func newIndustriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "industries [source]",
		Short: "List every non-empty industry once, in first-seen order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			industries, err := insights.UniqueIndustries(cmd.Context(), opts.loader(cmd), opts.sourceArg(args))
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), industries)
		},
	}
}

func newMaxSalaryCmd(opts *options) *cobra.Command {
	var human bool
	cmd := &cobra.Command{
		Use:   "max-salary [source]",
		Short: "Print the highest max_salary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			salary, err := insights.MaxSalary(cmd.Context(), opts.loader(cmd), opts.sourceArg(args))
			if err != nil {
				return err
			}
			return printSalary(cmd.OutOrStdout(), salary, human)
		},
	}
	cmd.Flags().BoolVar(&human, "human", false, "Print the salary with comma separators")
	return cmd
}

func newMinSalaryCmd(opts *options) *cobra.Command {
	var human bool
	cmd := &cobra.Command{
		Use:   "min-salary [source]",
		Short: "Print the lowest min_salary",
		Long: "Print the lowest min_salary.\n\n" +
			"A source without any numeric min_salary prints the highest max_salary instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			salary, err := insights.MinSalary(cmd.Context(), opts.loader(cmd), opts.sourceArg(args))
			if err != nil {
				return err
			}
			return printSalary(cmd.OutOrStdout(), salary, human)
		},
	}
	cmd.Flags().BoolVar(&human, "human", false, "Print the salary with comma separators")
	return cmd
}

func newJobsCmd(opts *options) *cobra.Command {
	var (
		criteria insights.Criteria
		salary   int
		output   string
	)
	cmd := &cobra.Command{
		Use:   "jobs [source]",
		Short: "List job listings, optionally filtered by job type, industry and salary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := opts.sourceArg(args)
			records, err := opts.loader(cmd).Load(cmd.Context(), source)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("salary") {
				criteria.Salary = &salary
			}
			filtered := insights.Apply(records, criteria)
			logger.Debug("filtered jobs",
				"source", source,
				"total", humanize.Comma(int64(len(records))),
				"matched", humanize.Comma(int64(len(filtered))),
			)
			if len(records) > 0 && len(filtered) == 0 {
				logger.Warn("no jobs matched the filters", "source", source, "total", len(records))
			}

			format := opts.cfg.Output
			if cmd.Flags().Changed("output") {
				format = output
			}
			switch format {
			case config.OutputJSON:
				return ui.WriteJSON(cmd.OutOrStdout(), filtered)
			case config.OutputTable:
				return ui.PrintTable(cmd.OutOrStdout(), filtered)
			}
			return fmt.Errorf("invalid output %q", format)
		},
	}
	f := cmd.Flags()
	f.StringVar(&criteria.JobType, "job-type", "", "Only jobs with this exact job type")
	f.StringVar(&criteria.Industry, "industry", "", "Only jobs in this exact industry")
	f.IntVar(&salary, "salary", 0, "Only jobs whose salary range contains this salary")
	f.StringVarP(&output, "output", "o", config.OutputTable, "Output format: table or json")
	return cmd
}

func newMatchCmd() *cobra.Command {
	var minSalary, maxSalary string
	cmd := &cobra.Command{
		Use:   "match SALARY",
		Short: "Check whether a salary lies within a min/max salary range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			salary, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("salary must be an integer: %w", err)
			}

			fields := map[string]string{}
			if cmd.Flags().Changed("min") {
				fields[models.FieldMinSalary] = minSalary
			}
			if cmd.Flags().Changed("max") {
				fields[models.FieldMaxSalary] = maxSalary
			}

			ok, err := insights.MatchesSalaryRange(models.NewRecord(fields), salary)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ok)
			return err
		},
	}
	cmd.Flags().StringVar(&minSalary, "min", "", "Lower bound of the range")
	cmd.Flags().StringVar(&maxSalary, "max", "", "Upper bound of the range")
	return cmd
}
