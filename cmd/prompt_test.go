package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/tuitioncast/internal/pipeline"
	"github.com/theirongolddev/tuitioncast/internal/source"
)

func testForecaster(t *testing.T) *pipeline.Forecaster {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}
	return pipeline.NewForecaster(map[source.Kind]string{
		source.KindOverall: write("overall.csv", "Year,State,Type,Length,Expense,Value\n"+
			"2019,Ohio,Private,4-year,Fees/Tuition,30000\n"+
			"2020,Ohio,Private,4-year,Fees/Tuition,31000\n"),
		source.KindGraduate: write("grad.csv", "academic.year,school,cost\n2019,Law,40000\n2020,Law,42000\n"),
	})
}

func TestPromptLoopOverall(t *testing.T) {
	in := strings.NewReader("20x0\n2022\nprivate\n2022\nCommunity\n")
	var out bytes.Buffer

	if err := promptLoop(context.Background(), in, &out, testForecaster(t), source.KindOverall); err != nil {
		t.Fatalf("promptLoop: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Valid types: Private",
		"Year must be digits only.",
		"Estimated overall cost for Private in 2022:  $33,000.00",
		"unknown category",
		"Good-bye!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPromptLoopAsksKind(t *testing.T) {
	in := strings.NewReader("x\ng\n2021\nLaw\n")
	var out bytes.Buffer

	if err := promptLoop(context.Background(), in, &out, testForecaster(t), ""); err != nil {
		t.Fatalf("promptLoop: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Please type 'O', 'G' or 'U'.") {
		t.Errorf("bad kind not rejected:\n%s", got)
	}
	if !strings.Contains(got, "Estimated graduate cost for Law in 2021:  $44,000.00") {
		t.Errorf("graduate estimate missing:\n%s", got)
	}
}

func TestPromptLoopCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer pw.Close()
	defer pr.Close()

	var out bytes.Buffer
	if err := promptLoop(ctx, pr, &out, testForecaster(t), source.KindGraduate); err != nil {
		t.Fatalf("promptLoop: %v", err)
	}
	if !strings.HasSuffix(out.String(), "Good-bye!\n") {
		t.Errorf("cancelled loop output = %q", out.String())
	}
}
