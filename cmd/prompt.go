package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/theirongolddev/tuitioncast/internal/cli"
	"github.com/theirongolddev/tuitioncast/internal/pipeline"
	"github.com/theirongolddev/tuitioncast/internal/source"

	"github.com/spf13/cobra"
)

var flagPromptKind string

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Interactive estimate loop (Ctrl-C or Ctrl-D to quit)",
	Args:  cobra.NoArgs,
	RunE:  runPrompt,
}

func init() {
	promptCmd.Flags().StringVarP(&flagPromptKind, "kind", "k", "", "Dataset: overall (o), graduate (g) or undergraduate (u); asked when empty")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	var kind source.Kind
	if flagPromptKind != "" {
		k, err := source.ParseKind(flagPromptKind)
		if err != nil {
			return err
		}
		kind = k
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	f, done := newForecaster()
	defer done()

	return promptLoop(ctx, os.Stdin, os.Stdout, f, kind)
}

// promptLoop reads a year then a category per round and prints the
// estimate. Failures are printed and the loop continues; end of input or
// cancellation ends it with a farewell.
func promptLoop(ctx context.Context, in io.Reader, out io.Writer, f *pipeline.Forecaster, kind source.Kind) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	ask := func(prompt string) (string, bool) {
		fmt.Fprint(out, prompt)
		select {
		case <-ctx.Done():
			return "", false
		case l, ok := <-lines:
			return strings.TrimSpace(l), ok
		}
	}
	bye := func() error {
		fmt.Fprintln(out, "\nGood-bye!")
		return nil
	}

	fmt.Fprintln(out, "Tuition predictor - additive growth model")

	for kind == "" {
		answer, ok := ask("Predict Overall (O), Graduate (G) or Undergraduate (U) tuition? ")
		if !ok {
			return bye()
		}
		k, err := source.ParseKind(answer)
		if err != nil || answer == "" {
			fmt.Fprintln(out, "x  Please type 'O', 'G' or 'U'.")
			fmt.Fprintln(out)
			continue
		}
		kind = k
	}

	if kind != source.KindUndergraduate {
		cats, err := f.Categories(kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Valid %s: %s\n", categoryNoun(kind), strings.Join(cats, ", "))
	}

	for {
		yearText, ok := ask("\nTarget academic year (e.g. 2030): ")
		if !ok {
			return bye()
		}
		year, err := pipeline.ParseYear(yearText)
		if err != nil {
			fmt.Fprintln(out, "x  Year must be digits only.")
			continue
		}

		category := ""
		switch kind {
		case source.KindOverall:
			if category, ok = ask("School type: "); !ok {
				return bye()
			}
		case source.KindGraduate:
			if category, ok = ask("Graduate program name (exactly as listed): "); !ok {
				return bye()
			}
		}

		t, err := f.Trend(kind, category)
		if err != nil {
			fmt.Fprintf(out, "x  %v\n", err)
			continue
		}
		fmt.Fprintf(out, "-> Estimated %s cost for %s in %d:  %s\n",
			kind, t.Category, year, cli.FormatUSD(pipeline.Project(t, year)))
	}
}

func categoryNoun(kind source.Kind) string {
	if kind == source.KindOverall {
		return "types"
	}
	return "programs"
}
