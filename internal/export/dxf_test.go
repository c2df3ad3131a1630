package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/AtlasPack/internal/model"
)

func TestExportDXF_WritesLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packing.dxf")
	items, result := buildTestPacking(t)

	require.NoError(t, ExportDXF(path, items, result))
	assertNonEmptyFile(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	for _, layer := range []string{LayerBounds, LayerItems, LayerFree, LayerLabels} {
		assert.Contains(t, content, layer)
	}
	assert.Contains(t, content, "LINE")
	assert.Contains(t, content, "Wide A")
}

func TestExportDXF_EmptyResult(t *testing.T) {
	err := ExportDXF(filepath.Join(t.TempDir(), "x.dxf"), nil, model.Result{})
	assert.ErrorIs(t, err, ErrEmptyPacking)
}
