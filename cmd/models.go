package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/tuitioncast/internal/cli"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List stored regression models",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	models, err := st.ListModels()
	if err != nil {
		return err
	}
	if len(models) == 0 {
		fmt.Println("\n  No trained models. Run `tuitioncast train` first.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("REGRESSION MODELS"))
	fmt.Println()

	rows := make([][]string, 0, len(models))
	for _, m := range models {
		rows = append(rows, []string{
			m.Name,
			m.TrainedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(len(m.Columns)),
			cli.FormatNumber(int64(m.TrainRows)),
			cli.FormatNumber(int64(m.TestRows)),
			fmt.Sprintf("%.4f", m.R2),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Model", "Trained", "Features", "Train", "Test", "R²"},
		Rows:    rows,
	}))
	return nil
}
