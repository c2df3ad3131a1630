package importer

import (
	"fmt"
	"math"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// Manifest is a TOML item list:
//
//	name = "ui-icons"
//
//	[[item]]
//	id = "close"
//	w = 16
//	h = 16
//	quantity = 2
type Manifest struct {
	Name  string         `toml:"name"`
	Items []ManifestItem `toml:"item"`
}

// ManifestItem is one [[item]] table. Quantity defaults to 1.
type ManifestItem struct {
	ID       string  `toml:"id"`
	Label    string  `toml:"label"`
	W        float64 `toml:"w"`
	H        float64 `toml:"h"`
	Quantity int     `toml:"quantity"`
}

// ImportTOML imports items from a TOML manifest. Unknown keys produce warnings.
func ImportTOML(path string) ImportResult {
	result := ImportResult{}

	var m Manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read TOML manifest: %v", err))
		return result
	}

	for _, key := range md.Undecoded() {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored unknown key '%s'", key.String()))
	}

	if len(m.Items) == 0 {
		result.Errors = append(result.Errors, "Manifest contains no [[item]] entries")
		return result
	}

	for i, mi := range m.Items {
		entry := fmt.Sprintf("Item %d", i+1)
		if mi.W < 0 || mi.H < 0 || math.IsNaN(mi.W) || math.IsNaN(mi.H) ||
			mi.W > maxDimension || mi.H > maxDimension {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Width and height must be finite non-negative numbers", entry))
			continue
		}
		qty := mi.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Quantity must be positive", entry))
			continue
		}
		if qty > maxQuantity {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Quantity must not exceed %d", entry, maxQuantity))
			continue
		}

		label := mi.Label
		if label == "" {
			label = mi.ID
		}
		for n := 0; n < qty; n++ {
			var item model.Item
			switch {
			case mi.ID == "":
				item = model.NewItem(label, mi.W, mi.H)
			case qty == 1:
				item = model.NewItemID(mi.ID, mi.W, mi.H)
			default:
				item = model.NewItemID(fmt.Sprintf("%s#%d", mi.ID, n+1), mi.W, mi.H)
			}
			item.Label = label
			result.Items = append(result.Items, item)
		}
	}

	return result
}
