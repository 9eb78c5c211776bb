package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"buildpulse/adapters/excel"
	"buildpulse/adapters/trend"
	"buildpulse/adapters/weather"
	"buildpulse/internal"
	"buildpulse/internal/config"
	"buildpulse/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "buildpulse-cli",
		Short: "BuildPulse CLI for trend analysis and weather impact scoring",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newDemoCmd(),
		newWeatherCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var trendTypes []string

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Run trend detection on every series in an xlsx or csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := excel.NewSeriesReader(args[0])
			all, err := reader.ReadSeries()
			if err != nil {
				return err
			}

			detector := newDetector()
			reports := make(map[string]interface{}, len(all))
			for _, s := range all {
				report, err := detector.DetectTrends(s, trendTypes)
				if err != nil {
					// One bad sheet should not sink the rest of the file.
					reports[s.Name] = map[string]string{"error": err.Error()}
					continue
				}
				reports[s.Name] = report
			}
			return printJSON(reports)
		},
	}

	cmd.Flags().StringSliceVar(&trendTypes, "trend-types", nil, "Trend types to run (default: all)")

	return cmd
}

func newDemoCmd() *cobra.Command {
	var seed int64
	var points int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run trend detection against a generated seasonal cost series",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := testkit.NewSeriesGenerator(testkit.GeneratorConfig{
				Points:     points,
				NoiseLevel: 0.5,
				Seed:       seed,
			})
			s := gen.Sinusoidal(100, 20, 12)

			report, err := newDetector().DetectTrends(s, nil)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for the generated series")
	cmd.Flags().IntVar(&points, "points", 36, "Number of monthly observations to generate")

	return cmd
}

func newWeatherCmd() *cobra.Command {
	var projectType string
	var storm bool

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Score a sample weather bundle for a project type",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle := testkit.ClearDayBundle()
			if storm {
				bundle = testkit.StormBundle()
			}

			scorer := weather.NewImpactScorer(config.DefaultWeatherConfig())
			return printJSON(scorer.Score(bundle, projectType))
		},
	}

	cmd.Flags().StringVar(&projectType, "project-type", "outdoor", "Project type (outdoor, roofing, underground, indoor)")
	cmd.Flags().BoolVar(&storm, "storm", false, "Score the storm fixture instead of the clear day")

	return cmd
}

func newDetector() *trend.Detector {
	return trend.NewDetector(config.DefaultAnalysisConfig(), internal.NewDefaultLogger("cli"))
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
