package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/tuitioncast/internal/config"
	"github.com/theirongolddev/tuitioncast/internal/source"
	"github.com/theirongolddev/tuitioncast/internal/tui/theme"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)
	ask := func() string {
		fmt.Print("     > ")
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	fmt.Println()
	fmt.Println("  Welcome to tuitioncast!")
	fmt.Println()

	// 1. Data directory
	fmt.Println("  1. Dataset directory")
	fmt.Printf("     Current: %s\n", cfg.General.DataDir)
	if dir := ask(); dir != "" {
		cfg.General.DataDir = dir
	}
	found := source.ScanDir(cfg.General.DataDir, config.DatasetFiles(cfg))
	if len(found) == 0 {
		fmt.Println("     No datasets found there yet.")
	}
	for _, d := range found {
		fmt.Printf("     Found %s dataset: %s\n", d.Kind, d.Path)
	}
	fmt.Println()

	// 2. Regression split
	fmt.Println("  2. Held-out test fraction for `train`")
	fmt.Printf("     Current: %.2f\n", cfg.Regression.TestSize)
	if v := ask(); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f >= 1 {
			fmt.Println("     Not a fraction in (0, 1); keeping the current value.")
		} else {
			cfg.Regression.TestSize = f
		}
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	names := theme.Names()
	for i, n := range names {
		marker := ""
		if n == cfg.Appearance.Theme {
			marker = " [current]"
		}
		fmt.Printf("     (%d) %s%s\n", i+1, n, marker)
	}
	if v := ask(); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 1 && i <= len(names) {
			cfg.Appearance.Theme = names[i-1]
		}
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `tuitioncast setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
