package project

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string                   `json:"version"`
	CreatedAt string                   `json:"created_at"`
	Config    model.AppConfig          `json:"config"`
	Projects  map[string]model.Project `json:"projects,omitempty"` // Keyed by original path
}

// ExportAllData writes the config and every readable recent project into a
// single JSON file. Recent projects that cannot be loaded are skipped and
// returned so the caller can report them.
func ExportAllData(exportPath string, config model.AppConfig) ([]string, error) {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Projects:  map[string]model.Project{},
	}

	var skipped []string
	for _, path := range config.RecentProjects {
		p, err := Load(path)
		if err != nil {
			skipped = append(skipped, path)
			continue
		}
		backup.Projects[path] = p
	}

	if err := writeJSON(exportPath, backup); err != nil {
		return skipped, fmt.Errorf("failed to write backup file: %w", err)
	}
	return skipped, nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config and restoring
// any projects.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	if backup.Projects == nil {
		backup.Projects = map[string]model.Project{}
	}
	return backup, nil
}

// RestoreProjects writes every project in the backup back to its original
// path, skipping files that already exist unless overwrite is set.
// Returns the paths that were written, in sorted order.
func RestoreProjects(backup BackupData, overwrite bool) ([]string, error) {
	paths := make([]string, 0, len(backup.Projects))
	for path := range backup.Projects {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var written []string
	for _, path := range paths {
		p := backup.Projects[path]
		if !overwrite {
			if _, err := os.Stat(path); err == nil {
				continue
			}
		}
		if err := Save(path, p); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
