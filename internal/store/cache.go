// Package store provides a SQLite-backed cache for built trends and fitted models.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/tuitioncast/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrModelNotFound is returned by LoadModel when no model has the given name.
var ErrModelNotFound = errors.New("regression model not found")

// Cache provides SQLite-backed trend and model storage.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// DatasetInfo holds the tracked kind, mtime and size for a dataset file.
type DatasetInfo struct {
	Kind      string
	MtimeNs   int64
	SizeBytes int64
}

// TrackedDataset returns the tracking row for path, if any.
func (c *Cache) TrackedDataset(path string) (DatasetInfo, bool, error) {
	var info DatasetInfo
	err := c.db.QueryRow(
		"SELECT kind, mtime_ns, size_bytes FROM dataset_tracker WHERE path = ?", path,
	).Scan(&info.Kind, &info.MtimeNs, &info.SizeBytes)
	if errors.Is(err, sql.ErrNoRows) {
		return DatasetInfo{}, false, nil
	}
	if err != nil {
		return DatasetInfo{}, false, err
	}
	return info, true, nil
}

// LoadTrends reads every cached trend built from path.
func (c *Cache) LoadTrends(path string) ([]model.CategoryTrend, error) {
	rows, err := c.db.Query(`SELECT category, first_year, last_year, last_cost, avg_delta, years
		FROM category_trends WHERE path = ? ORDER BY category`, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var trends []model.CategoryTrend
	for rows.Next() {
		var t model.CategoryTrend
		if err := rows.Scan(&t.Category, &t.FirstYear, &t.LastYear, &t.LastCost, &t.AvgDelta, &t.Years); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

// SaveTrends replaces the cached trends for path and records its fingerprint.
func (c *Cache) SaveTrends(path, kind string, mtimeNs, sizeBytes int64, trends []model.CategoryTrend) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO dataset_tracker (path, kind, mtime_ns, size_bytes, built_at)
		VALUES (?, ?, ?, ?, ?)`, path, kind, mtimeNs, sizeBytes, now)
	if err != nil {
		return err
	}

	// Old categories must not survive a rebuild.
	if _, err = tx.Exec("DELETE FROM category_trends WHERE path = ?", path); err != nil {
		return err
	}

	for _, t := range trends {
		_, err = tx.Exec(`INSERT INTO category_trends
			(path, category, first_year, last_year, last_cost, avg_delta, years)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			path, t.Category, t.FirstYear, t.LastYear, t.LastCost, t.AvgDelta, t.Years,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteDataset removes a dataset and its cached trends.
func (c *Cache) DeleteDataset(path string) error {
	_, err := c.db.Exec("DELETE FROM dataset_tracker WHERE path = ?", path)
	return err
}

// DatasetCount returns the number of tracked datasets.
func (c *Cache) DatasetCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM dataset_tracker").Scan(&count)
	return count, err
}

// SaveModel stores a fitted regression model under its name, replacing any previous one.
func (c *Cache) SaveModel(m model.RegressionModel) error {
	cols, err := json.Marshal(m.Columns)
	if err != nil {
		return fmt.Errorf("encoding columns: %w", err)
	}
	coef, err := json.Marshal(m.Coef)
	if err != nil {
		return fmt.Errorf("encoding coefficients: %w", err)
	}

	trainedAt := m.TrainedAt
	if trainedAt.IsZero() {
		trainedAt = time.Now()
	}

	_, err = c.db.Exec(`INSERT OR REPLACE INTO regression_models
		(name, columns_json, base_year, intercept, coef_json, r2, train_rows, test_rows, trained_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Name, string(cols), m.BaseYear, m.Intercept, string(coef), m.R2,
		m.TrainRows, m.TestRows, trainedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// LoadModel reads the named regression model.
func (c *Cache) LoadModel(name string) (model.RegressionModel, error) {
	row := c.db.QueryRow(`SELECT name, columns_json, base_year, intercept, coef_json,
		r2, train_rows, test_rows, trained_at
		FROM regression_models WHERE name = ?`, name)
	m, err := scanModel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RegressionModel{}, fmt.Errorf("%w: %q", ErrModelNotFound, name)
	}
	return m, err
}

// ListModels returns all stored models, most recently trained first.
func (c *Cache) ListModels() ([]model.RegressionModel, error) {
	rows, err := c.db.Query(`SELECT name, columns_json, base_year, intercept, coef_json,
		r2, train_rows, test_rows, trained_at
		FROM regression_models ORDER BY trained_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var models []model.RegressionModel
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanModel(r rowScanner) (model.RegressionModel, error) {
	var (
		m                   model.RegressionModel
		colsJSON, coefJSON  string
		r2                  sql.NullFloat64
		trainRows, testRows sql.NullInt64
		trainedAt           string
	)
	if err := r.Scan(&m.Name, &colsJSON, &m.BaseYear, &m.Intercept, &coefJSON,
		&r2, &trainRows, &testRows, &trainedAt); err != nil {
		return model.RegressionModel{}, err
	}
	if err := json.Unmarshal([]byte(colsJSON), &m.Columns); err != nil {
		return model.RegressionModel{}, fmt.Errorf("decoding columns of %q: %w", m.Name, err)
	}
	if err := json.Unmarshal([]byte(coefJSON), &m.Coef); err != nil {
		return model.RegressionModel{}, fmt.Errorf("decoding coefficients of %q: %w", m.Name, err)
	}
	m.R2 = r2.Float64
	m.TrainRows = int(trainRows.Int64)
	m.TestRows = int(testRows.Int64)
	m.TrainedAt, _ = time.Parse(time.RFC3339, trainedAt)
	return m, nil
}
