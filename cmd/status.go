package cmd

import (
	"fmt"

	"github.com/theirongolddev/tuitioncast/internal/cli"
	"github.com/theirongolddev/tuitioncast/internal/config"
	"github.com/theirongolddev/tuitioncast/internal/source"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which datasets are present and what is cached",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	files := config.DatasetFiles(cfg)
	found := make(map[source.Kind]string)
	for _, d := range source.ScanDir(dataDir(), files) {
		found[d.Kind] = d.Path
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("TUITIONCAST"))
	fmt.Println()

	rows := make([][]string, 0, 3)
	for _, kind := range []source.Kind{source.KindOverall, source.KindGraduate, source.KindUndergraduate} {
		state := "missing"
		path := source.ResolvePath(dataDir(), files[kind])
		if p, ok := found[kind]; ok {
			state = "ok"
			path = p
		}
		rows = append(rows, []string{string(kind), state, path})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Datasets in " + dataDir(),
		Headers: []string{"Kind", "State", "Path"},
		Rows:    rows,
	}))

	st, err := openStore()
	if err != nil {
		fmt.Println(cli.RenderWarning(err.Error()))
		return nil
	}
	defer func() { _ = st.Close() }()

	tracked, err := st.DatasetCount()
	if err != nil {
		return err
	}
	models, err := st.ListModels()
	if err != nil {
		return err
	}
	fmt.Printf("\n  Cached datasets: %d   Trained models: %d\n", tracked, len(models))

	if len(found) == 0 {
		fmt.Println()
		fmt.Println(cli.RenderWarning("No datasets found. Pass --data-dir or run `tuitioncast setup`."))
	}
	fmt.Println()
	return nil
}
