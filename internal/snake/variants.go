package snake

import (
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/registry"
)

// Variant IDs.
const (
	VariantClassic = registry.DefaultVariant
	VariantCustom  = "custom"
)

func init() {
	registry.Register(VariantClassic, func() registry.Variant {
		return registry.Variant{
			ID:          VariantClassic,
			Title:       "Classic",
			Description: "Three-cell start, random body color every game",
			Rules:       core.DefaultRules(),
		}
	})

	registry.Register(VariantCustom, func() registry.Variant {
		rules := core.DefaultRules()
		rules.StartLength = 1
		rules.SkinMode = core.SkinChosen
		return registry.Variant{
			ID:          VariantCustom,
			Title:       "Custom",
			Description: "One-cell start, pick your own color and head icon",
			Rules:       rules,
		}
	})
}
