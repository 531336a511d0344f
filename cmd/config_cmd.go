// Package cmd implements the tuitioncast CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/tuitioncast/internal/config"
	"github.com/theirongolddev/tuitioncast/internal/pipeline"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  Cache:       %s\n", pipeline.CachePath())
	fmt.Println()

	g := cfg.General
	fmt.Println("  [General]")
	fmt.Printf("    Data directory:     %s\n", dataDir())
	if d := dataDir(); d != g.DataDir {
		fmt.Printf("    (config value:      %s)\n", g.DataDir)
	}
	fmt.Printf("    Overall file:       %s\n", g.OverallFile)
	fmt.Printf("    Graduate file:      %s\n", g.GraduateFile)
	fmt.Printf("    Undergraduate file: %s\n", g.UndergraduateFile)
	fmt.Printf("    Trend cache:        %s\n", onOff(!g.NoCache))
	fmt.Println()

	r := cfg.Regression
	fmt.Println("  [Regression]")
	fmt.Printf("    Model name: %s\n", r.ModelName)
	fmt.Printf("    Base year:  %d\n", r.BaseYear)
	fmt.Printf("    Test size:  %.2f\n", r.TestSize)
	fmt.Printf("    Seed:       %d\n", r.Seed)
	fmt.Printf("    Outlier k:  %.2f\n", r.OutlierK)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `tuitioncast setup` to reconfigure.")
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
