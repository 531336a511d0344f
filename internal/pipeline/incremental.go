package pipeline

import (
	"os"
	"path/filepath"

	"github.com/theirongolddev/tuitioncast/internal/model"
	"github.com/theirongolddev/tuitioncast/internal/source"
	"github.com/theirongolddev/tuitioncast/internal/store"

	"go.uber.org/zap"
)

// loadCachedTrends returns the cached trends for path when the file's
// mtime and size still match what was tracked. A nil set means a miss.
func loadCachedTrends(cache *store.Cache, kind source.Kind, path string, log *zap.Logger) (*trendSet, error) {
	fp, err := source.Stat(path)
	if err != nil {
		return nil, err
	}

	tracked, ok, err := cache.TrackedDataset(fp.Path)
	if err != nil {
		return nil, err
	}
	if !ok || tracked.Kind != string(kind) ||
		tracked.MtimeNs != fp.MtimeNs || tracked.SizeBytes != fp.SizeBytes {
		log.Debug("trend cache miss", zap.String("path", fp.Path))
		return nil, nil
	}

	cached, err := cache.LoadTrends(fp.Path)
	if err != nil {
		return nil, err
	}
	if len(cached) == 0 {
		return nil, nil
	}

	byCat := make(map[string]model.CategoryTrend, len(cached))
	for _, t := range cached {
		byCat[t.Category] = t
	}
	log.Debug("trend cache hit", zap.String("path", fp.Path), zap.Int("categories", len(byCat)))
	return &trendSet{byCategory: byCat, fromCache: true}, nil
}

// saveCachedTrends records trends against the current fingerprint of path.
func saveCachedTrends(cache *store.Cache, kind source.Kind, path string, trends map[string]model.CategoryTrend) error {
	fp, err := source.Stat(path)
	if err != nil {
		return err
	}
	list := make([]model.CategoryTrend, 0, len(trends))
	for _, c := range SortedCategories(trends) {
		list = append(list, trends[c])
	}
	return cache.SaveTrends(fp.Path, string(kind), fp.MtimeNs, fp.SizeBytes, list)
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "tuitioncast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "tuitioncast")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "tuition.db")
}
