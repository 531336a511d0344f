package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/tuitioncast/internal/cli"
	"github.com/theirongolddev/tuitioncast/internal/pipeline"
	"github.com/theirongolddev/tuitioncast/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagEstimateYear string
	flagEstimateKind string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [type|program]",
	Short: "Project the cost of one school type or program in a target year",
	Example: `  tuitioncast estimate private --year 2030
  tuitioncast estimate "Law" --kind graduate --year 2028
  tuitioncast estimate --kind u --year 2032`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&flagEstimateYear, "year", "y", "", "Target academic year (digits only)")
	estimateCmd.Flags().StringVarP(&flagEstimateKind, "kind", "k", "overall", "Dataset: overall (o), graduate (g) or undergraduate (u)")
	_ = estimateCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(_ *cobra.Command, args []string) error {
	kind, err := source.ParseKind(flagEstimateKind)
	if err != nil {
		return err
	}
	year, err := pipeline.ParseYear(flagEstimateYear)
	if err != nil {
		return err
	}
	category := ""
	if len(args) == 1 {
		category = args[0]
	}

	f, done := newForecaster()
	defer done()
	if err := loadTrends(f, kind); err != nil {
		return err
	}

	t, err := f.Trend(kind, category)
	if err != nil {
		return withCategoryHint(f, kind, err)
	}
	est := pipeline.Project(t, year)

	fmt.Println()
	fmt.Println(cli.RenderCost(fmt.Sprintf("Estimated %s cost for %s in %d:", kind, t.Category, year), est))
	fmt.Printf("  %s\n\n", describeTrend(t.Category, t.FirstYear, t.LastYear, t.LastCost, t.AvgDelta))
	if est <= 0 {
		fmt.Println(cli.RenderWarning("Projection is not positive; the trend is extrapolated far from observed data."))
		fmt.Println()
	}
	return nil
}

// withCategoryHint appends the valid labels to an unknown-category error.
func withCategoryHint(f *pipeline.Forecaster, kind source.Kind, err error) error {
	if !errors.Is(err, pipeline.ErrUnknownCategory) {
		return err
	}
	cats, cerr := f.Categories(kind)
	if cerr != nil || len(cats) == 0 {
		return err
	}
	return fmt.Errorf("%w (valid: %s)", err, strings.Join(cats, ", "))
}

func describeTrend(category string, first, last int, lastCost, delta float64) string {
	return fmt.Sprintf("%s: observed %s, last %s, %s",
		category, cli.FormatYearSpan(first, last), cli.FormatUSD(lastCost), cli.FormatDelta(delta))
}
