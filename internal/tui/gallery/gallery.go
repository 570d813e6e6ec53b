// ABOUTME: Discovers image files on disk for the scan screen
// ABOUTME: Stands in for the phone's photo gallery: lists images in one directory

package gallery

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Extensions the backend accepts
var Extensions = []string{".jpg", ".jpeg", ".png", ".webp", ".heic", ".gif"}

// Image is a discovered image file
type Image struct {
	Name string // base name
	Path string // full path
	Size int64
}

// IsImage reports whether path has an accepted image extension
func IsImage(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// Discover lists image files in dir, sorted by name. A missing dir yields none.
func Discover(dir string) ([]Image, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []Image{}, nil
	}
	if err != nil {
		return nil, err
	}

	images := []Image{}
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		images = append(images, Image{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Size: info.Size(),
		})
	}
	return images, nil
}

// DefaultDir picks the directory to browse: NEUROSTUDY_IMAGES_DIR, then
// ~/Pictures, then the working directory.
func DefaultDir() string {
	if dir := os.Getenv("NEUROSTUDY_IMAGES_DIR"); dir != "" {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		pictures := filepath.Join(home, "Pictures")
		if _, err := os.Stat(pictures); err == nil {
			return pictures
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}
