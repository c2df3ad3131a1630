package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/AtlasPack/internal/importer"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
)

// maxReportedErrors limits how many import errors are echoed back.
const maxReportedErrors = 5

// isProjectFile reports whether path names a saved project.
func isProjectFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == project.FileExt || ext == ".json"
}

// loadInput reads a project file, or imports items from any supported
// source into a fresh project. Import warnings are returned for logging.
func loadInput(path string) (model.Project, []string, error) {
	if isProjectFile(path) {
		p, err := project.Load(path)
		return p, nil, err
	}

	read, ok := importer.ForPath(path)
	if !ok {
		return model.Project{}, nil, fmt.Errorf("unsupported input format %q (want %s, %s or .json)",
			filepath.Ext(path), strings.Join(importer.Extensions(), ", "), project.FileExt)
	}

	res := read(path)
	if len(res.Errors) > 0 {
		return model.Project{}, res.Warnings, importError(path, res.Errors)
	}
	if len(res.Items) == 0 {
		return model.Project{}, res.Warnings, fmt.Errorf("%s: no items found", path)
	}

	p := model.NewProject()
	p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p.Items = res.Items
	return p, res.Warnings, nil
}

// importError folds the first few import errors into one error.
func importError(path string, msgs []string) error {
	errs := make([]error, 0, maxReportedErrors+1)
	for i, m := range msgs {
		if i == maxReportedErrors {
			errs = append(errs, fmt.Errorf("... and %d more", len(msgs)-maxReportedErrors))
			break
		}
		errs = append(errs, errors.New(m))
	}
	return fmt.Errorf("import %s failed:\n%w", path, errors.Join(errs...))
}
