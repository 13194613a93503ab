package classifier

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions lists the file extensions treated as test images.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// IsImage reports whether a filename has a recognized image extension,
// case-insensitively.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, ok := imageExtensions[ext]
	return ok
}

// ListImages returns the eligible image filenames in a directory, sorted,
// plus the number of files skipped for having another extension.
// Subdirectories are neither listed nor counted.
func ListImages(dir string) ([]string, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("read directory %s: %w", dir, err)
	}
	var names []string
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !IsImage(entry.Name()) {
			skipped++
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, skipped, nil
}
