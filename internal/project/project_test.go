package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
)

func testProject(t *testing.T) model.Project {
	t.Helper()
	p := model.NewProject()
	p.Name = "tiles"
	p.Items = []model.Item{
		model.NewItemID("grass", 32, 32),
		model.NewItemID("water", 32, 16),
		{ID: model.NoID(), Label: "anonymous", W: 8, H: 8},
	}
	require.NoError(t, Pack(&p))
	return p
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles"+FileExt)
	p := testProject(t)

	require.NoError(t, Save(path, p))
	loaded, err := Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(p, loaded, cmp.AllowUnexported(model.ID{})); diff != "" {
		t.Errorf("project changed after round trip (-want +got):\n%s", diff)
	}
	assert.True(t, loaded.Items[2].ID.IsNone(), "absent IDs survive as null")
	require.NoError(t, engine.Verify(*loaded.Result, len(loaded.Items)))
}

func TestLoadDefaultsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "min.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"min"}`), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "min", p.Name)
	assert.NotNil(t, p.Items)
	assert.Equal(t, model.DefaultSettings(), p.Settings)
	assert.Nil(t, p.Result)
}

func TestLoadRejectsInvalidItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items":[{"id":"x","w":-1,"h":2}]}`), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, engine.ErrInvalidItem)
}

func TestLoadRejectsStaleResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stale.json")
	p := testProject(t)
	p.Items[0].W = 64 // edited after packing

	require.NoError(t, Save(path, p))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrStaleResult)

	p = testProject(t)
	p.Items = p.Items[:2]
	require.NoError(t, Save(path, p))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrStaleResult)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestPackUsesProjectSettings(t *testing.T) {
	p := model.NewProject()
	p.Items = []model.Item{model.NewItemID("a", 3, 3), model.NewItemID("b", 3, 3),
		model.NewItemID("c", 3, 3), model.NewItemID("d", 3, 3)}
	require.NoError(t, Pack(&p))
	require.NotNil(t, p.Result)
	assert.Equal(t, model.Packing{W: 6, H: 6, Fill: 1}, p.Result.Packing)

	p.Items = append(p.Items, model.NewItemID("bad", -1, 1))
	assert.ErrorIs(t, Pack(&p), engine.ErrInvalidItem)
}
