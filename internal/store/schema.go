package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS dataset_tracker (
    path                 TEXT PRIMARY KEY,
    kind                 TEXT NOT NULL,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    built_at             TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS category_trends (
    path                 TEXT NOT NULL REFERENCES dataset_tracker(path) ON DELETE CASCADE,
    category             TEXT NOT NULL,
    first_year           INTEGER NOT NULL,
    last_year            INTEGER NOT NULL,
    last_cost            REAL NOT NULL,
    avg_delta            REAL NOT NULL,
    years                INTEGER NOT NULL,
    PRIMARY KEY (path, category)
);

CREATE TABLE IF NOT EXISTS regression_models (
    name                 TEXT PRIMARY KEY,
    columns_json         TEXT NOT NULL,
    base_year            INTEGER NOT NULL,
    intercept            REAL NOT NULL,
    coef_json            TEXT NOT NULL,
    r2                   REAL,
    train_rows           INTEGER,
    test_rows            INTEGER,
    trained_at           TEXT NOT NULL
);
`
