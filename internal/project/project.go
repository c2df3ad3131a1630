package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
)

// FileExt is the extension used for saved projects.
const FileExt = ".atlaspack"

// ErrStaleResult is returned when a saved result does not match its items.
var ErrStaleResult = errors.New("saved result does not match project items")

// Save writes a project to path as JSON.
func Save(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Load reads a project from path. Items are validated and a saved result
// must cover exactly the saved items.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("load project: %w", err)
	}

	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("parse project %s: %w", path, err)
	}
	if p.Items == nil {
		p.Items = []model.Item{}
	}
	if err := engine.ValidateItems(p.Items); err != nil {
		return model.Project{}, fmt.Errorf("project %s: %w", path, err)
	}
	if p.Result != nil {
		if err := checkResult(p.Items, *p.Result); err != nil {
			return model.Project{}, fmt.Errorf("project %s: %w", path, err)
		}
	}
	return p, nil
}

func checkResult(items []model.Item, r model.Result) error {
	if len(r.Placements) != len(items) {
		return fmt.Errorf("%w: %d placements for %d items", ErrStaleResult, len(r.Placements), len(items))
	}
	for _, pl := range r.Placements {
		if pl.Index < 0 || pl.Index >= len(items) {
			return fmt.Errorf("%w: placement index %d out of range", ErrStaleResult, pl.Index)
		}
		it := items[pl.Index]
		if pl.W != it.W || pl.H != it.H {
			return fmt.Errorf("%w: item %d is %gx%g but was placed as %gx%g",
				ErrStaleResult, pl.Index, it.W, it.H, pl.W, pl.H)
		}
	}
	return nil
}

// Pack runs the packer over the project's items with the project's settings
// and stores the result on the project.
func Pack(p *model.Project) error {
	result, err := engine.New(p.Settings).Pack(p.Items)
	if err != nil {
		return err
	}
	p.Result = &result
	return nil
}
