package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/tuitioncast/internal/cli"
	"github.com/theirongolddev/tuitioncast/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagTrainName     string
	flagTrainSeed     int64
	flagTrainTestSize float64
	flagTrainOutlierK float64
	flagTrainBaseYear int
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the one-hot regression model on the overall dataset and store it",
	Args:  cobra.NoArgs,
	RunE:  runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&flagTrainName, "name", "", "Model name (default from config)")
	trainCmd.Flags().Int64Var(&flagTrainSeed, "seed", 0, "Train/test split seed (default from config)")
	trainCmd.Flags().Float64Var(&flagTrainTestSize, "test-size", 0, "Held-out fraction in (0, 1) (default from config)")
	trainCmd.Flags().Float64Var(&flagTrainOutlierK, "outlier-k", 0, "IQR multiplier for outlier trimming (default from config)")
	trainCmd.Flags().IntVar(&flagTrainBaseYear, "base-year", 0, "Year subtracted before fitting (default from config)")
	rootCmd.AddCommand(trainCmd)
}

// trainOptions merges config values with any flags set on cmd.
func trainOptions(cmd *cobra.Command) pipeline.TrainOptions {
	rc := cfg.Regression
	opts := pipeline.TrainOptions{
		Name:         rc.ModelName,
		BaseYear:     rc.BaseYear,
		TestFraction: rc.TestSize,
		Seed:         uint64(rc.Seed), //nolint:gosec // seed bits only
		OutlierK:     rc.OutlierK,
		Logger:       logger,
	}
	fl := cmd.Flags()
	if fl.Changed("name") {
		opts.Name = flagTrainName
	}
	if fl.Changed("seed") {
		opts.Seed = uint64(flagTrainSeed) //nolint:gosec // seed bits only
	}
	if fl.Changed("test-size") {
		opts.TestFraction = flagTrainTestSize
	}
	if fl.Changed("outlier-k") {
		opts.OutlierK = flagTrainOutlierK
	}
	if fl.Changed("base-year") {
		opts.BaseYear = flagTrainBaseYear
	}
	return opts
}

func runTrain(cmd *cobra.Command, _ []string) error {
	opts := trainOptions(cmd)
	if opts.TestFraction <= 0 || opts.TestFraction >= 1 {
		return fmt.Errorf("--test-size must be in (0, 1), got %g", opts.TestFraction)
	}

	f, done := newForecaster()
	defer done()

	progressf("  Loading overall dataset...\n")
	overall, err := f.Overall()
	if err != nil {
		return err
	}
	progressf("  Read %s rows (%s skipped)\n",
		cli.FormatNumber(int64(overall.Rows)), cli.FormatNumber(int64(overall.Skipped)))

	res, err := pipeline.Train(overall.Records, opts)
	if err != nil {
		return fmt.Errorf("training %q: %w", opts.Name, err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	if err := st.SaveModel(res.Model); err != nil {
		return fmt.Errorf("saving model %q: %w", res.Model.Name, err)
	}

	m := res.Model
	fmt.Println()
	fmt.Println(cli.RenderTitle("REGRESSION MODEL  " + m.Name))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Pivoted rows", cli.FormatNumber(int64(res.Pivoted))},
			{"Outliers removed", cli.FormatNumber(int64(res.Outliers))},
			{"Train rows", cli.FormatNumber(int64(m.TrainRows))},
			{"Test rows", cli.FormatNumber(int64(m.TestRows))},
			{"Features", strconv.Itoa(len(m.Columns))},
			{"Base year", strconv.Itoa(m.BaseYear)},
			{"---"},
			{"Intercept", cli.FormatUSD(m.Intercept)},
			{"R² (test)", fmt.Sprintf("%.4f", m.R2)},
		},
	}))
	fmt.Println()
	return nil
}
