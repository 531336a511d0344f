package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/tuitioncast/internal/source"
	"github.com/theirongolddev/tuitioncast/internal/store"
)

var benchStates = []string{"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Ohio", "Texas"}

// writeBenchDataset writes a synthetic overall dataset shaped like the real one.
func writeBenchDataset(b *testing.B) string {
	b.Helper()
	var sb strings.Builder
	sb.WriteString("Year,State,Type,Length,Expense,Value\n")
	types := []string{"Private", "Public In-State", "Public Out-of-State"}
	for year := 2000; year <= 2021; year++ {
		for si, st := range benchStates {
			for ti, typ := range types {
				for _, length := range []string{"4-year", "2-year"} {
					base := 5000 + 400*(year-2000) + 3000*ti + 50*si
					fmt.Fprintf(&sb, "%d,%s,%s,%s,Fees/Tuition,%d\n", year, st, typ, length, base)
					fmt.Fprintf(&sb, "%d,%s,%s,%s,Room/Board,%d\n", year, st, typ, length, base/2)
				}
			}
		}
	}
	path := filepath.Join(b.TempDir(), "overall.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		b.Fatal(err)
	}
	return path
}

func BenchmarkLoadOverall(b *testing.B) {
	path := writeBenchDataset(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := source.LoadOverall(path); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildTrends(b *testing.B) {
	res, err := source.LoadOverall(writeBenchDataset(b))
	if err != nil {
		b.Fatal(err)
	}
	points := res.YearCosts()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildTrends(points)
	}
}

func BenchmarkTrain(b *testing.B) {
	res, err := source.LoadOverall(writeBenchDataset(b))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Train(res.Records, DefaultTrainOptions()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTrendsWithCache(b *testing.B) {
	path := writeBenchDataset(b)

	cache, err := store.Open(filepath.Join(b.TempDir(), "tuition.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f := NewForecaster(map[source.Kind]string{source.KindOverall: path}, WithCache(cache))
		if _, err := f.Trends(source.KindOverall); err != nil {
			b.Fatal(err)
		}
	}
}
