package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/tuitioncast/internal/config"
	"github.com/theirongolddev/tuitioncast/internal/model"
	"github.com/theirongolddev/tuitioncast/internal/report"
	"github.com/theirongolddev/tuitioncast/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagExportOut  string
	flagExportKind string
	flagPlotOut    string
	flagPlotKind   string

	// Shared by export and plot; both default to the same window.
	flagReportFrom int
	flagReportTo   int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write an .xlsx workbook of projections for every category",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render a projection chart (png, svg or pdf by extension)",
	Args:  cobra.NoArgs,
	RunE:  runPlot,
}

func init() {
	year := time.Now().Year()

	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "projections.xlsx", "Output workbook path")
	exportCmd.Flags().IntVar(&flagReportFrom, "from", year, "First projected year")
	exportCmd.Flags().IntVar(&flagReportTo, "to", year+10, "Last projected year")
	exportCmd.Flags().StringVarP(&flagExportKind, "kind", "k", "", "Restrict to one dataset (default: every dataset found)")

	plotCmd.Flags().StringVarP(&flagPlotOut, "out", "o", "projections.png", "Output image path")
	plotCmd.Flags().IntVar(&flagReportFrom, "from", year, "First projected year")
	plotCmd.Flags().IntVar(&flagReportTo, "to", year+10, "Last projected year")
	plotCmd.Flags().StringVarP(&flagPlotKind, "kind", "k", "overall", "Dataset: overall (o), graduate (g) or undergraduate (u)")

	rootCmd.AddCommand(exportCmd, plotCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	kinds, err := reportKinds(flagExportKind)
	if err != nil {
		return err
	}
	series, err := collectSeries(kinds)
	if err != nil {
		return err
	}
	if err := report.SaveWorkbook(flagExportOut, series); err != nil {
		return err
	}
	fmt.Printf("\n  Wrote %d series (%d-%d) to %s\n\n", len(series), flagReportFrom, flagReportTo, flagExportOut)
	return nil
}

func runPlot(_ *cobra.Command, _ []string) error {
	kind, err := source.ParseKind(flagPlotKind)
	if err != nil {
		return err
	}
	series, err := collectSeries([]source.Kind{kind})
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Projected %s cost %d-%d", kind, flagReportFrom, flagReportTo)
	if err := report.SaveChart(flagPlotOut, title, series); err != nil {
		return err
	}
	fmt.Printf("\n  Wrote chart of %d series to %s\n\n", len(series), flagPlotOut)
	return nil
}

// reportKinds returns the --kind dataset, or every dataset present on disk.
func reportKinds(flag string) ([]source.Kind, error) {
	if flag != "" {
		k, err := source.ParseKind(flag)
		if err != nil {
			return nil, err
		}
		return []source.Kind{k}, nil
	}
	found := source.ScanDir(dataDir(), config.DatasetFiles(cfg))
	if len(found) == 0 {
		return nil, fmt.Errorf("%w in %s", source.ErrDatasetNotFound, dataDir())
	}
	kinds := make([]source.Kind, len(found))
	for i, d := range found {
		kinds[i] = d.Kind
	}
	return kinds, nil
}

func collectSeries(kinds []source.Kind) ([]model.ProjectionSeries, error) {
	if flagReportTo < flagReportFrom {
		return nil, fmt.Errorf("--to (%d) is before --from (%d)", flagReportTo, flagReportFrom)
	}

	f, done := newForecaster()
	defer done()

	var all []model.ProjectionSeries
	for _, k := range kinds {
		if err := loadTrends(f, k); err != nil {
			return nil, err
		}
		s, err := f.Series(k, flagReportFrom, flagReportTo)
		if err != nil {
			return nil, err
		}
		all = append(all, s...)
	}
	if len(all) == 0 {
		return nil, errors.New("no categories to project")
	}
	return all, nil
}
