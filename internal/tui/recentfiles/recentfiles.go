// ABOUTME: Remembers recently scanned images for the scan screen
// ABOUTME: Stored as recent_images.json in the config directory

package recentfiles

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/Zubimendi/neurostudy/cli/internal/tui/gallery"
)

// MaxRecentFiles is the maximum number of recent images to keep
const MaxRecentFiles = 5

// FileName is the list's file inside the config directory
const FileName = "recent_images.json"

// RecentFiles manages the list of recently scanned images
type RecentFiles struct {
	configDir string
	files     []string
}

type recentData struct {
	Files []string `json:"files"`
}

// New creates a RecentFiles manager rooted at configDir
func New(configDir string) *RecentFiles {
	return &RecentFiles{configDir: configDir}
}

func (rf *RecentFiles) path() string {
	return filepath.Join(rf.configDir, FileName)
}

// Load reads the list, dropping entries that are gone or no longer images
func (rf *RecentFiles) Load() ([]string, error) {
	data, err := os.ReadFile(rf.path())
	if os.IsNotExist(err) {
		rf.files = []string{}
		return rf.files, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		rf.files = []string{}
		return rf.files, nil
	}

	rf.files = slices.DeleteFunc(recent.Files, func(p string) bool {
		if !gallery.IsImage(p) {
			return true
		}
		info, err := os.Stat(p)
		return err != nil || info.IsDir()
	})
	return rf.files, nil
}

// Save writes the list, newest first, trimmed to MaxRecentFiles
func (rf *RecentFiles) Save(files []string) error {
	if err := os.MkdirAll(rf.configDir, 0700); err != nil {
		return err
	}

	if len(files) > MaxRecentFiles {
		files = files[:MaxRecentFiles]
	}
	rf.files = files

	data, err := json.MarshalIndent(recentData{Files: files}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(rf.path(), data, 0600)
}

// Add moves path to the front of the list
func (rf *RecentFiles) Add(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if rf.files == nil {
		if _, err := rf.Load(); err != nil {
			rf.files = []string{}
		}
	}

	files := make([]string, 0, len(rf.files)+1)
	files = append(files, path)
	for _, f := range rf.files {
		if f != path {
			files = append(files, f)
		}
	}
	return rf.Save(files)
}

// List returns the current list, loading it on first use
func (rf *RecentFiles) List() []string {
	if rf.files == nil {
		rf.Load()
	}
	return rf.files
}
