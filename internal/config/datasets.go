package config

import (
	"os"

	"github.com/theirongolddev/tuitioncast/internal/source"
)

// DataDirEnv overrides general.data_dir when set.
const DataDirEnv = "TUITIONCAST_DATA_DIR"

// ResolveDataDir returns the data directory from the flag, env var or
// config, in that order.
func ResolveDataDir(cfg Config, flag string) string {
	if flag != "" {
		return flag
	}
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	return cfg.General.DataDir
}

// DatasetFiles returns the configured file name of each dataset kind.
func DatasetFiles(cfg Config) map[source.Kind]string {
	return map[source.Kind]string{
		source.KindOverall:       cfg.General.OverallFile,
		source.KindGraduate:      cfg.General.GraduateFile,
		source.KindUndergraduate: cfg.General.UndergraduateFile,
	}
}

// DatasetPaths resolves every configured dataset against dataDir.
// Absolute file names are kept as they are.
func DatasetPaths(cfg Config, dataDir string) map[source.Kind]string {
	files := DatasetFiles(cfg)
	paths := make(map[source.Kind]string, len(files))
	for kind, name := range files {
		if name == "" {
			continue
		}
		paths[kind] = source.ResolvePath(dataDir, name)
	}
	return paths
}
