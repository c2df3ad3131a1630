package importer

import (
	"path/filepath"
	"sort"
	"strings"
)

// readers maps lower-case file extensions to their item readers.
var readers = map[string]func(string) ImportResult{
	".csv":  ImportCSV,
	".tsv":  ImportCSV,
	".txt":  ImportCSV,
	".xlsx": ImportExcel,
	".dxf":  ImportDXF,
	".toml": ImportTOML,
}

// ForPath returns the reader for path's extension, ignoring case.
func ForPath(path string) (func(string) ImportResult, bool) {
	read, ok := readers[strings.ToLower(filepath.Ext(path))]
	return read, ok
}

// Extensions lists the supported file extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(readers))
	for ext := range readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
