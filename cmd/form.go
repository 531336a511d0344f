package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/tuitioncast/internal/cli"
	"github.com/theirongolddev/tuitioncast/internal/model"
	"github.com/theirongolddev/tuitioncast/internal/pipeline"
	"github.com/theirongolddev/tuitioncast/internal/source"
	"github.com/theirongolddev/tuitioncast/internal/store"
	"github.com/theirongolddev/tuitioncast/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Interactive form: predict college cost from state, graduation year and school",
	Long: `Ask for a state, a high school graduation year and the kind of college,
then predict the total cost four years after graduation with the stored
regression model. A model is trained and stored first if none exists.`,
	Args: cobra.NoArgs,
	RunE: runForm,
}

func init() {
	rootCmd.AddCommand(formCmd)
}

func runForm(cmd *cobra.Command, _ []string) error {
	// Force TrueColor so the themed form renders consistently.
	lipgloss.SetColorProfile(termenv.TrueColor)

	f, done := newForecaster()
	defer done()

	app := tui.NewApp(formLoader(cmd, f))
	p := tea.NewProgram(app, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("form error: %w", err)
	}

	// Leave the last answer on screen after the alt screen closes.
	if a, ok := final.(tui.App); ok {
		if res, ok := a.Result(); ok {
			fmt.Println(cli.RenderCost(fmt.Sprintf("Predicted cost in %d", res.Year), res.Cost))
		}
	}
	return nil
}

// formLoader reads the overall dataset, builds its trends and loads the
// configured model, training one when the store has none.
func formLoader(cmd *cobra.Command, f *pipeline.Forecaster) tui.Loader {
	return func(stage func(string)) (*tui.Dataset, error) {
		overall, err := f.Overall()
		if err != nil {
			return nil, err
		}
		stage(fmt.Sprintf("Read %d rows", overall.Rows))

		trends, err := f.Trends(source.KindOverall)
		if err != nil {
			return nil, err
		}
		stage("Built school type trends")

		m, trained, err := loadOrTrain(cmd, overall)
		if err != nil {
			return nil, err
		}
		stage("Model ready")

		d := tui.NewDataset(overall, m, trends)
		d.Trained = trained
		return d, nil
	}
}

func loadOrTrain(cmd *cobra.Command, overall *source.OverallResult) (model.RegressionModel, bool, error) {
	st, err := openStore()
	if err != nil {
		return model.RegressionModel{}, false, err
	}
	defer func() { _ = st.Close() }()

	opts := trainOptions(cmd)
	m, err := st.LoadModel(opts.Name)
	if err == nil {
		return m, false, nil
	}
	if !errors.Is(err, store.ErrModelNotFound) {
		return model.RegressionModel{}, false, err
	}

	logger.Info("no stored model, training", zap.String("name", opts.Name))
	res, err := pipeline.Train(overall.Records, opts)
	if err != nil {
		return model.RegressionModel{}, false, fmt.Errorf("training %q: %w", opts.Name, err)
	}
	if err := st.SaveModel(res.Model); err != nil {
		// The fitted model still answers this session.
		logger.Warn("saving model", zap.String("name", opts.Name), zap.Error(err))
	}
	return res.Model, true, nil
}
