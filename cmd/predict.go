package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/tuitioncast/internal/cli"
	"github.com/theirongolddev/tuitioncast/internal/pipeline"
	"github.com/theirongolddev/tuitioncast/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagPredictState  string
	flagPredictType   string
	flagPredictLength string
	flagPredictYear   string
	flagPredictName   string
)

var predictCmd = &cobra.Command{
	Use:     "predict",
	Short:   "Predict total cost (tuition plus room and board) from the stored regression model",
	Example: `  tuitioncast predict --state Ohio --type private --length 4-year --year 2030`,
	Args:    cobra.NoArgs,
	RunE:    runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&flagPredictState, "state", "", "State name")
	predictCmd.Flags().StringVar(&flagPredictType, "type", "", "School type (private, public in-state, public out-of-state)")
	predictCmd.Flags().StringVar(&flagPredictLength, "length", "4-year", "Program length label, e.g. 2-year or 4-year")
	predictCmd.Flags().StringVarP(&flagPredictYear, "year", "y", "", "Target academic year (digits only)")
	predictCmd.Flags().StringVar(&flagPredictName, "name", "", "Model name (default from config)")
	for _, name := range []string{"state", "type", "year"} {
		_ = predictCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(predictCmd)
}

func runPredict(_ *cobra.Command, _ []string) error {
	year, err := pipeline.ParseYear(flagPredictYear)
	if err != nil {
		return err
	}
	name := flagPredictName
	if name == "" {
		name = cfg.Regression.ModelName
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	m, err := st.LoadModel(name)
	if errors.Is(err, store.ErrModelNotFound) {
		return fmt.Errorf("%w; run `tuitioncast train` first", err)
	}
	if err != nil {
		return err
	}

	cost, err := pipeline.Predict(m, year, flagPredictState, flagPredictType, flagPredictLength)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnknownCategory) {
			schema, serr := pipeline.SchemaFromColumns(m.Columns, m.BaseYear)
			if serr == nil {
				return fmt.Errorf("%w\n  types:  %s\n  states: %s", err,
					strings.Join(schema.Types(), ", "), strings.Join(schema.States(), ", "))
			}
		}
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderCost(
		fmt.Sprintf("Predicted %s %s cost in %s for %d:", flagPredictLength, flagPredictType, flagPredictState, year), cost))
	fmt.Printf("  model %q, R² %.3f, trained %s\n\n", m.Name, m.R2, m.TrainedAt.Format("2006-01-02"))
	return nil
}
