package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"synaptology/adapters/excel"
	"synaptology/adapters/rawdata"
	"synaptology/app"
	"synaptology/internal"
	"synaptology/internal/analysis"
	"synaptology/internal/association"
	"synaptology/internal/config"
	"synaptology/internal/ingest"
	"synaptology/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// analysisFlags override configuration values for the measurement commands
type analysisFlags struct {
	dataDir      string
	pattern      string
	subjectTable string
	workers      int
	reportPath   string
	jsonOutput   bool
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(os.Getenv("LOG_LEVEL")))

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Configuration is loaded by the commands that use
// it, so convert and reduce run regardless of the SYN_* environment.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "synaptology",
		Short:        "Synaptic latency and weight analysis of PSP recordings",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newLatenciesCmd(),
		newAmplitudesCmd(),
		newConvertCmd(),
		newReduceCmd(),
		newAssociationsCmd(),
	)
	return rootCmd
}

func bindAnalysisFlags(cmd *cobra.Command, f *analysisFlags) {
	cmd.Flags().StringVar(&f.dataDir, "data-dir", "", "Directory searched recursively for measurement files (default $SYN_DATA_DIR or ./data_raw)")
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "Measurement file name pattern (default $SYN_MEASUREMENT_PATTERN or *.dat)")
	cmd.Flags().StringVar(&f.subjectTable, "subjects", "", "Subject table with ID and Skinlatency columns, csv or xlsx (default $SYN_SUBJECT_TABLE)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Number of files loaded in parallel (default $SYN_WORKERS or 4)")
	cmd.Flags().StringVar(&f.reportPath, "report", "", "Write a report to this path (.md or .html)")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Print results as JSON")
}

// apply loads the configuration, overrides it with the flags set on cmd and validates
// the result.
func (f *analysisFlags) apply(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.Data.MeasurementDir = f.dataDir
	}
	if flags.Changed("pattern") {
		cfg.Data.MeasurementPattern = f.pattern
	}
	if flags.Changed("subjects") {
		cfg.Data.SubjectTable = f.subjectTable
	}
	if flags.Changed("workers") {
		cfg.Data.Workers = f.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newMeasurementService(cfg *config.Config) *app.MeasurementService {
	return app.NewMeasurementService(excel.NewDataReader(), rawdata.NewMatrixReader(), cfg)
}

func newLatenciesCmd() *cobra.Command {
	var flags analysisFlags

	cmd := &cobra.Command{
		Use:   "latencies",
		Short: "Summarise corrected PSP latencies by sign and source",
		Long: `Load every measurement file, correct latencies for skin or deep radial
stimulation, and summarise them per group. Records of subjects without a
known skin latency are left out of latency summaries.

Example: synaptology latencies --data-dir ./data_raw --subjects ./subjects.csv --report latencies.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.apply(cmd)
			if err != nil {
				return err
			}
			result, err := app.NewLatencyService(newMeasurementService(cfg)).Analyze(cmd.Context())
			if err != nil {
				return err
			}

			if flags.reportPath != "" {
				if err := report.Write(flags.reportPath, "Synaptic Latencies", result.Report().Markdown()); err != nil {
					return err
				}
			}
			if flags.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"manifest":   result.Set.Manifest,
					"summaries":  result.Summaries,
					"points":     result.Points,
					"afferents":  afferentCounts(result.Afferents),
					"rejections": rejectionStrings(result.Set.Rejections),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s: %d records, %d rejected\n", result.Set.Manifest.RunID, len(result.Set.Records), len(result.Set.Rejections))

			rows := make([][]string, 0, 9)
			for _, g := range result.Groups.Named() {
				s := result.Summaries[g.Name]
				rows = append(rows, []string{
					g.Name,
					strconv.Itoa(len(g.Records)),
					strconv.Itoa(s.Count),
					fmt.Sprintf("%.3f", s.Mean),
					fmt.Sprintf("%.3f", s.Variance),
				})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Group", "Records", "Eligible", "Mean (ms)", "Variance"}, rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight}))

			rows = rows[:0]
			for _, class := range analysis.AfferentClasses {
				rows = append(rows, []string{string(class), strconv.Itoa(len(result.Afferents[class]))})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Afferent class", "Records"}, rows,
				[]columnAlignment{alignLeft, alignRight}))
			printRejections(cmd.OutOrStdout(), result.Set.Rejections)
			return nil
		},
	}

	bindAnalysisFlags(cmd, &flags)
	return cmd
}

func newAmplitudesCmd() *cobra.Command {
	var flags analysisFlags

	cmd := &cobra.Command{
		Use:   "amplitudes",
		Short: "Summarise PSP amplitudes and their stability across samples",
		Long: `Load every measurement file and analyse how excitatory amplitudes evolve
across successive samples. Records drifting faster than SYN_SLOPE_LIMIT or
varying more than SYN_CV_LIMIT are flagged.

Example: synaptology amplitudes --data-dir ./data_raw --report amplitudes.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.apply(cmd)
			if err != nil {
				return err
			}
			criteria := analysis.StabilityCriteria{
				MinSupport: cfg.Stability.MinSupport,
				SlopeLimit: cfg.Stability.SlopeLimit,
				CVLimit:    cfg.Stability.CVLimit,
			}
			result, err := app.NewAmplitudeService(newMeasurementService(cfg), criteria).Analyze(cmd.Context())
			if err != nil {
				return err
			}

			if flags.reportPath != "" {
				if err := report.Write(flags.reportPath, "Synaptic Amplitudes", result.Report().Markdown()); err != nil {
					return err
				}
			}
			if flags.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"manifest":   result.Set.Manifest,
					"summaries":  result.Summaries,
					"stability":  result.Stability,
					"rejections": rejectionStrings(result.Set.Rejections),
				})
			}

			out := cmd.OutOrStdout()
			st := result.Stability
			fmt.Fprintf(out, "Run %s: %d records, %d rejected\n", result.Set.Manifest.RunID, len(result.Set.Records), len(result.Set.Rejections))
			fmt.Fprintf(out, "Stability over %d records from %d subjects (support %.1f ± %.1f)\n",
				len(st.Records), len(st.Subjects), st.SupportMean, st.SupportStd)
			fmt.Fprintf(out, "  slope: mean %.4f std %.4f\n", st.Slopes.Mean, st.Slopes.Std)
			fmt.Fprintf(out, "  cv:    mean %.4f std %.4f\n", st.CVs.Mean, st.CVs.Std)

			var rows [][]string
			for _, s := range st.Records {
				if !s.Drifting && !s.Variable {
					continue
				}
				rows = append(rows, []string{
					filepath.Base(s.Path),
					fmt.Sprintf("%.4f", s.Slope),
					fmt.Sprintf("%.3f", s.CV),
					strconv.FormatBool(s.Drifting),
					strconv.FormatBool(s.Variable),
				})
			}
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable(out, []string{"Record", "Slope", "CV", "Drifting", "Variable"}, rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft}))
			}
			printRejections(cmd.OutOrStdout(), result.Set.Rejections)
			return nil
		},
	}

	bindAnalysisFlags(cmd, &flags)
	return cmd
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output] [weight|noweight]",
		Short: "Convert a row-paired wide synaptic table into a tidy table",
		Long: `Convert a wide table whose rows come in pairs (synapse depths, then weights)
into one tidy row per subject with a column per channel and relative depth.

Example: synaptology convert Synaptology_HQ.csv Synaptology_tidy.xlsx noweight`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app.NewConversionService(excel.NewDataReader(), excel.NewDataWriter())
			res, err := svc.Convert(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d subjects (%d columns) to %s\n", res.Rows, res.Columns, res.Output)
			return nil
		},
	}
}

func newReduceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reduce [tidy-input] [output]",
		Short: "Reduce a tidy table to deep and superficial depth bands",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app.NewConversionService(excel.NewDataReader(), excel.NewDataWriter())
			res, err := svc.Reduce(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", res.Rows, res.Output)
			return nil
		},
	}
}

func newAssociationsCmd() *cobra.Command {
	var (
		referenceSets int
		seed          int64
		workers       int
		alpha         float64
		jsonOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "associations [presence-table] [output-dir] [association|loop]",
		Short: "Test association rules or loop motifs against swap-randomized reference sets",
		Long: `Read a presence table (reduce output, or convert output in noweight mode) and
compare association rule confidences or loop counts with reference sets drawn by
swapping activations between neurons. Reference distributions are written as CSV
tables into the output directory.

Example: synaptology associations Synaptology_reduced.csv results association --reference-sets 1000000`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("reference-sets") {
				cfg.Swap.ReferenceSets = referenceSets
			}
			if flags.Changed("seed") {
				cfg.Swap.Seed = seed
			}
			if flags.Changed("workers") {
				cfg.Data.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			swap := association.SwapConfig{ReferenceSets: cfg.Swap.ReferenceSets, Workers: cfg.Data.Workers, Seed: cfg.Swap.Seed}
			svc := app.NewAssociationService(excel.NewDataReader(), excel.NewDataWriter(), swap)
			result, err := svc.Analyze(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				payload := map[string]interface{}{
					"manifest":       result.Manifest,
					"reference_sets": swap.ReferenceSets,
					"outputs":        result.Outputs,
				}
				if result.Rules != nil {
					payload["rules"] = result.Rules.Results
				}
				if result.Loops != nil {
					payload["loops"] = result.Loops.Significances
				}
				return printJSON(out, payload)
			}

			fmt.Fprintf(out, "Run %s: %d reference sets\n", result.Manifest.RunID, swap.ReferenceSets)
			if result.Rules != nil {
				significant := result.Rules.Significant(alpha)
				fmt.Fprintf(out, "%d neurons, %d rules, %d with p <= %g\n",
					result.Rules.Neurons, len(result.Rules.Results), len(significant), alpha)
				rows := make([][]string, 0, len(significant))
				for _, r := range significant {
					rows = append(rows, []string{
						r.Rule,
						fmt.Sprintf("%.3f", r.Support),
						fmt.Sprintf("%.3f", r.Confidence),
						fmt.Sprintf("%.6f", r.P),
					})
				}
				if len(rows) > 0 {
					fmt.Fprintln(out, renderTable(out, []string{"Rule", "Support", "Confidence", "p"}, rows,
						[]columnAlignment{alignLeft, alignRight, alignRight, alignRight}))
				}
			}
			if result.Loops != nil {
				rows := make([][]string, 0, len(result.Loops.Significances))
				for _, sig := range result.Loops.Significances {
					rows = append(rows, []string{sig.Name, strconv.Itoa(sig.Original), fmt.Sprintf("%.6f", sig.P)})
				}
				fmt.Fprintln(out, renderTable(out, []string{"Statistic", "Count", "p"}, rows,
					[]columnAlignment{alignLeft, alignRight, alignRight}))
			}
			for _, path := range result.Outputs {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&referenceSets, "reference-sets", 0, "Number of swap-randomized reference sets (default $SYN_REFERENCE_SETS or 100000)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed of the first swap chain (default $SYN_SWAP_SEED or 1)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel swap chains (default $SYN_WORKERS or 4)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "Largest p-value of the listed rules")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	return cmd
}

func afferentCounts(groups map[analysis.AfferentClass]analysis.Collection) map[analysis.AfferentClass]int {
	counts := make(map[analysis.AfferentClass]int, len(analysis.AfferentClasses))
	for _, class := range analysis.AfferentClasses {
		counts[class] = len(groups[class])
	}
	return counts
}

func rejectionStrings(rejections []ingest.Rejection) []string {
	out := make([]string, 0, len(rejections))
	for _, r := range rejections {
		out = append(out, r.String())
	}
	return out
}

func printRejections(out io.Writer, rejections []ingest.Rejection) {
	if len(rejections) == 0 {
		return
	}
	fmt.Fprintf(out, "Rejected %d files:\n", len(rejections))
	for _, r := range rejections {
		fmt.Fprintf(out, "  %s\n", r)
	}
}

func printJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
