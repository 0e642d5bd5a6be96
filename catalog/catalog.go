// Package catalog serves the built-in niche library. A curated core set is
// embedded at build time and expanded with angle variants to a catalog of
// one hundred entries.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/saaabbasi2121-ai/Vidra-AI/models"
)

//go:embed niches.yaml
var nichesYAML []byte

// CatalogSize is the number of niches the catalog always exposes.
const CatalogSize = 100

// variants are the angles each curated niche is expanded with, in order.
var variants = []struct {
	idSuffix   string
	nameSuffix string
	tone       string
}{
	{"deep-dives", "Deep Dives", "Longform, thorough"},
	{"for-beginners", "for Beginners", "Simple, welcoming"},
	{"daily", "Daily", "Quick, habitual"},
	{"explained", "Explained", "Clear, structured"},
}

var (
	loadOnce sync.Once
	loaded   []models.NicheCategory
	loadErr  error
)

// Niches returns the full catalog: every curated niche followed by its
// variants, in a stable order. The slice is shared; callers must not
// modify it.
func Niches() ([]models.NicheCategory, error) {
	loadOnce.Do(func() {
		loaded, loadErr = build()
	})
	return loaded, loadErr
}

// ByID finds one niche in the catalog.
func ByID(id string) (models.NicheCategory, bool) {
	niches, err := Niches()
	if err != nil {
		return models.NicheCategory{}, false
	}
	for _, n := range niches {
		if n.ID == id {
			return n, true
		}
	}
	return models.NicheCategory{}, false
}

func build() ([]models.NicheCategory, error) {
	var core []models.NicheCategory
	if err := yaml.Unmarshal(nichesYAML, &core); err != nil {
		return nil, fmt.Errorf("failed to parse niche catalog: %w", err)
	}
	if len(core) == 0 {
		return nil, fmt.Errorf("niche catalog is empty")
	}

	catalog := make([]models.NicheCategory, 0, CatalogSize)
	catalog = append(catalog, core...)

	for _, base := range core {
		for _, v := range variants {
			if len(catalog) >= CatalogSize {
				break
			}
			n := base
			n.ID = base.ID + "-" + v.idSuffix
			n.Name = base.Name + " " + v.nameSuffix
			n.Tone = v.tone
			n.Description = variantDescription(base, v.nameSuffix)
			catalog = append(catalog, n)
		}
	}

	if len(catalog) != CatalogSize {
		return nil, fmt.Errorf("niche catalog has %d entries, expected %d", len(catalog), CatalogSize)
	}
	return catalog, nil
}

func variantDescription(base models.NicheCategory, angle string) string {
	desc := strings.TrimSuffix(base.Description, ".")
	switch angle {
	case "Deep Dives":
		return desc + ", one topic unpacked per video."
	case "for Beginners":
		return desc + ", assuming no prior knowledge."
	case "Daily":
		return desc + ", one bite-sized entry every day."
	default:
		return desc + ", broken down step by step."
	}
}
