package pipeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/theirongolddev/tuitioncast/internal/model"
	"github.com/theirongolddev/tuitioncast/internal/source"
	"github.com/theirongolddev/tuitioncast/internal/store"

	"go.uber.org/zap"
)

// Query failures.
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidYear     = errors.New("year must be digits only")
	ErrProgramRequired = errors.New("program is required for graduate estimation")
	ErrNoDataset       = errors.New("no dataset configured")
)

// ParseYear parses a query year. Only an unsigned run of digits is accepted.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidYear
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidYear, s)
		}
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidYear, s)
	}
	return y, nil
}

// trendSet is the memoised result of building one dataset's trends.
type trendSet struct {
	byCategory map[string]model.CategoryTrend
	fromCache  bool
}

// Forecaster answers additive-model queries. Each dataset is read and its
// trends built at most once per Forecaster; Reload drops the memo.
type Forecaster struct {
	paths map[source.Kind]string
	cache *store.Cache
	log   *zap.Logger

	mu      sync.Mutex
	trends  map[source.Kind]*trendSet
	overall *source.OverallResult
}

// Option configures a Forecaster.
type Option func(*Forecaster)

// WithCache persists built trends in c and reuses them while the source file is unchanged.
func WithCache(c *store.Cache) Option {
	return func(f *Forecaster) { f.cache = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(f *Forecaster) {
		if l != nil {
			f.log = l
		}
	}
}

// NewForecaster creates a Forecaster over the given dataset paths.
func NewForecaster(paths map[source.Kind]string, opts ...Option) *Forecaster {
	f := &Forecaster{
		paths:  make(map[source.Kind]string, len(paths)),
		log:    zap.NewNop(),
		trends: make(map[source.Kind]*trendSet),
	}
	for k, p := range paths {
		f.paths[k] = p
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Path returns the configured dataset path for kind.
func (f *Forecaster) Path(kind source.Kind) (string, error) {
	p, ok := f.paths[kind]
	if !ok || p == "" {
		return "", fmt.Errorf("%w for %s", ErrNoDataset, kind)
	}
	return p, nil
}

// Reload forgets every memoised table and trend set.
func (f *Forecaster) Reload() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trends = make(map[source.Kind]*trendSet)
	f.overall = nil
}

// Overall returns the parsed overall dataset, loading it on first use.
func (f *Forecaster) Overall() (*source.OverallResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overallLocked()
}

func (f *Forecaster) overallLocked() (*source.OverallResult, error) {
	if f.overall != nil {
		return f.overall, nil
	}
	path, err := f.Path(source.KindOverall)
	if err != nil {
		return nil, err
	}
	res, err := source.LoadOverall(path)
	if err != nil {
		return nil, err
	}
	f.log.Debug("loaded overall dataset",
		zap.String("path", path),
		zap.Int("rows", res.Rows),
		zap.Int("skipped", res.Skipped))
	f.overall = res
	return res, nil
}

// Trends returns the per-category trends of kind, building them on first use.
func (f *Forecaster) Trends(kind source.Kind) (map[string]model.CategoryTrend, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ts, ok := f.trends[kind]; ok {
		return ts.byCategory, nil
	}

	ts, err := f.buildLocked(kind)
	if err != nil {
		return nil, err
	}
	f.trends[kind] = ts
	return ts.byCategory, nil
}

// FromCache reports whether the trends of kind were served from the SQLite cache.
func (f *Forecaster) FromCache(kind source.Kind) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	ts, ok := f.trends[kind]
	return ok && ts.fromCache
}

func (f *Forecaster) buildLocked(kind source.Kind) (*trendSet, error) {
	path, err := f.Path(kind)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		ts, err := loadCachedTrends(f.cache, kind, path, f.log)
		if err == nil && ts != nil {
			return ts, nil
		}
		if err != nil {
			// A broken cache must never block a query; reparse instead.
			f.log.Warn("trend cache unavailable", zap.String("path", path), zap.Error(err))
		}
	}

	points, err := f.yearCostsLocked(kind, path)
	if err != nil {
		return nil, err
	}
	trends := BuildTrends(points)
	f.log.Debug("built trends",
		zap.String("kind", string(kind)),
		zap.Int("categories", len(trends)))

	if f.cache != nil {
		if err := saveCachedTrends(f.cache, kind, path, trends); err != nil {
			f.log.Warn("saving trends to cache", zap.String("path", path), zap.Error(err))
		}
	}
	return &trendSet{byCategory: trends}, nil
}

func (f *Forecaster) yearCostsLocked(kind source.Kind, path string) ([]model.YearCost, error) {
	if kind == source.KindOverall {
		res, err := f.overallLocked()
		if err != nil {
			return nil, err
		}
		return res.YearCosts(), nil
	}
	res, err := source.LoadPrograms(path, kind)
	if err != nil {
		return nil, err
	}
	f.log.Debug("loaded program dataset",
		zap.String("path", path),
		zap.String("kind", string(kind)),
		zap.Int("rows", res.Rows),
		zap.Int("skipped", res.Skipped))
	return res.YearCosts(), nil
}

// Categories returns the valid category labels for kind, sorted.
// For the overall dataset these are school types; for graduate data,
// program names; undergraduate data has only "Total".
func (f *Forecaster) Categories(kind source.Kind) ([]string, error) {
	trends, err := f.Trends(kind)
	if err != nil {
		return nil, err
	}
	return SortedCategories(trends), nil
}

// Trend resolves a user-supplied category to its trend.
func (f *Forecaster) Trend(kind source.Kind, category string) (model.CategoryTrend, error) {
	var key string
	switch kind {
	case source.KindOverall:
		key = source.NormalizeType(category)
	case source.KindGraduate:
		key = strings.TrimSpace(category)
		if key == "" {
			return model.CategoryTrend{}, ErrProgramRequired
		}
	case source.KindUndergraduate:
		key = source.TotalProgram
	default:
		return model.CategoryTrend{}, fmt.Errorf("%w: %q", source.ErrUnknownKind, kind)
	}

	trends, err := f.Trends(kind)
	if err != nil {
		return model.CategoryTrend{}, err
	}
	t, ok := trends[key]
	if !ok {
		return model.CategoryTrend{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return t, nil
}

// Estimate projects the cost of category in year: last_cost + avg_delta * (year - last_year).
func (f *Forecaster) Estimate(kind source.Kind, category string, year int) (float64, error) {
	t, err := f.Trend(kind, category)
	if err != nil {
		return 0, err
	}
	return Project(t, year), nil
}

// Projection returns yearly projected costs for category over [from, to].
func (f *Forecaster) Projection(kind source.Kind, category string, from, to int) ([]model.ProjectionPoint, error) {
	t, err := f.Trend(kind, category)
	if err != nil {
		return nil, err
	}
	return ProjectRange(t, from, to), nil
}

// Series projects every category of kind over [from, to], in category order.
func (f *Forecaster) Series(kind source.Kind, from, to int) ([]model.ProjectionSeries, error) {
	trends, err := f.Trends(kind)
	if err != nil {
		return nil, err
	}
	cats := SortedCategories(trends)
	out := make([]model.ProjectionSeries, 0, len(cats))
	for _, c := range cats {
		t := trends[c]
		out = append(out, model.ProjectionSeries{
			Kind:     string(kind),
			Category: c,
			Trend:    t,
			Points:   ProjectRange(t, from, to),
		})
	}
	return out, nil
}
