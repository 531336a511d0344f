package source

import (
	"fmt"
	"os"
	"path/filepath"
)

// Fingerprint identifies one version of a dataset file on disk.
type Fingerprint struct {
	Path      string
	MtimeNs   int64
	SizeBytes int64
}

// Stat fingerprints the file at path.
func Stat(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Fingerprint{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return Fingerprint{}, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return Fingerprint{
		Path:      abs,
		MtimeNs:   info.ModTime().UnixNano(),
		SizeBytes: info.Size(),
	}, nil
}

// DiscoveredDataset is a dataset file found in the data directory.
type DiscoveredDataset struct {
	Kind Kind
	Path string
}

// ScanDir checks which of the configured dataset files exist under dataDir.
// Missing files are not an error; the returned slice lists only present ones.
func ScanDir(dataDir string, files map[Kind]string) []DiscoveredDataset {
	var found []DiscoveredDataset
	for _, kind := range []Kind{KindOverall, KindGraduate, KindUndergraduate} {
		name, ok := files[kind]
		if !ok || name == "" {
			continue
		}
		path := ResolvePath(dataDir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		found = append(found, DiscoveredDataset{Kind: kind, Path: path})
	}
	return found
}

// ResolvePath joins name onto dataDir unless name is already absolute.
func ResolvePath(dataDir, name string) string {
	if filepath.IsAbs(name) || dataDir == "" {
		return name
	}
	return filepath.Join(dataDir, name)
}
