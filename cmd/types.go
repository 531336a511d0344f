package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/tuitioncast/internal/cli"
	"github.com/theirongolddev/tuitioncast/internal/model"
	"github.com/theirongolddev/tuitioncast/internal/pipeline"
	"github.com/theirongolddev/tuitioncast/internal/source"

	"github.com/spf13/cobra"
)

var flagHorizon int

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List valid school types with their additive trends",
	Args:  cobra.NoArgs,
	RunE:  runTypes,
}

var (
	flagProgramsKind string

	programsCmd = &cobra.Command{
		Use:   "programs",
		Short: "List valid program names for graduate or undergraduate data",
		Args:  cobra.NoArgs,
		RunE:  runPrograms,
	}
)

func init() {
	typesCmd.Flags().IntVar(&flagHorizon, "horizon", 10, "Years of projection shown in the sparkline")
	programsCmd.Flags().StringVarP(&flagProgramsKind, "kind", "k", "graduate", "Dataset: graduate (g) or undergraduate (u)")
	programsCmd.Flags().IntVar(&flagHorizon, "horizon", 10, "Years of projection shown in the sparkline")
	rootCmd.AddCommand(typesCmd, programsCmd)
}

func runTypes(_ *cobra.Command, _ []string) error {
	return printTrends(source.KindOverall, "SCHOOL TYPES", "Type")
}

func runPrograms(_ *cobra.Command, _ []string) error {
	kind, err := source.ParseKind(flagProgramsKind)
	if err != nil {
		return err
	}
	if kind == source.KindOverall {
		return fmt.Errorf("programs needs --kind graduate or undergraduate; use `tuitioncast types` for school types")
	}
	title := "GRADUATE PROGRAMS"
	if kind == source.KindUndergraduate {
		title = "UNDERGRADUATE PACKAGE"
	}
	return printTrends(kind, title, "Program")
}

func printTrends(kind source.Kind, title, label string) error {
	f, done := newForecaster()
	defer done()

	if err := loadTrends(f, kind); err != nil {
		return err
	}
	trends, err := f.Trends(kind)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()
	fmt.Print(cli.RenderTable(trendTable(trends, label, flagHorizon)))
	fmt.Println()
	return nil
}

func trendTable(trends map[string]model.CategoryTrend, label string, horizon int) cli.Table {
	rows := make([][]string, 0, len(trends))
	for _, name := range pipeline.SortedCategories(trends) {
		t := trends[name]
		rows = append(rows, []string{
			name,
			cli.FormatYearSpan(t.FirstYear, t.LastYear),
			strconv.Itoa(t.Years),
			cli.FormatCost(t.LastCost),
			cli.FormatDelta(t.AvgDelta),
			sparkline(t, horizon),
		})
	}
	return cli.Table{
		Headers: []string{label, "Observed", "Years", "Last Cost", "Avg Change", fmt.Sprintf("Next %dy", horizon)},
		Rows:    rows,
	}
}

func sparkline(t model.CategoryTrend, horizon int) string {
	if horizon <= 0 {
		return ""
	}
	pts := pipeline.ProjectRange(t, t.LastYear, t.LastYear+horizon)
	vals := make([]float64, len(pts))
	for i, p := range pts {
		vals[i] = p.Cost
	}
	return cli.RenderSparkline(vals)
}
