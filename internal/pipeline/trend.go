// Package pipeline builds additive trend models and regression features from
// loaded datasets and answers cost queries.
package pipeline

import (
	"sort"

	"github.com/theirongolddev/tuitioncast/internal/model"

	"gonum.org/v1/gonum/stat"
)

// BuildTrends groups observations by category and year, averages cost per
// year, and summarises each category by its last year, last mean cost and
// the mean year-over-year change.
func BuildTrends(points []model.YearCost) map[string]model.CategoryTrend {
	type acc struct {
		sum float64
		n   int
	}
	byCat := make(map[string]map[int]*acc)
	for _, p := range points {
		years, ok := byCat[p.Category]
		if !ok {
			years = make(map[int]*acc)
			byCat[p.Category] = years
		}
		a, ok := years[p.Year]
		if !ok {
			a = &acc{}
			years[p.Year] = a
		}
		a.sum += p.Cost
		a.n++
	}

	trends := make(map[string]model.CategoryTrend, len(byCat))
	for cat, years := range byCat {
		keys := make([]int, 0, len(years))
		for y := range years {
			keys = append(keys, y)
		}
		sort.Ints(keys)

		costs := make([]float64, len(keys))
		for i, y := range keys {
			costs[i] = years[y].sum / float64(years[y].n)
		}

		trends[cat] = model.CategoryTrend{
			Category:  cat,
			FirstYear: keys[0],
			LastYear:  keys[len(keys)-1],
			LastCost:  costs[len(costs)-1],
			AvgDelta:  meanDelta(costs),
			Years:     len(keys),
		}
	}
	return trends
}

// meanDelta averages consecutive differences. One value yields 0.
func meanDelta(costs []float64) float64 {
	if len(costs) < 2 {
		return 0
	}
	deltas := make([]float64, len(costs)-1)
	for i := 1; i < len(costs); i++ {
		deltas[i-1] = costs[i] - costs[i-1]
	}
	return stat.Mean(deltas, nil)
}

// Project extrapolates a trend linearly to year. Results are not bounded:
// distant years can produce negative or implausible costs.
func Project(t model.CategoryTrend, year int) float64 {
	if year == t.LastYear {
		return t.LastCost
	}
	return t.LastCost + t.AvgDelta*float64(year-t.LastYear)
}

// ProjectRange returns one projected point per year in [from, to].
func ProjectRange(t model.CategoryTrend, from, to int) []model.ProjectionPoint {
	if to < from {
		from, to = to, from
	}
	points := make([]model.ProjectionPoint, 0, to-from+1)
	for y := from; y <= to; y++ {
		points = append(points, model.ProjectionPoint{Year: y, Cost: Project(t, y)})
	}
	return points
}

// SortedCategories returns the trend keys in lexical order.
func SortedCategories(trends map[string]model.CategoryTrend) []string {
	cats := make([]string, 0, len(trends))
	for c := range trends {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}
