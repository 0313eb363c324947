package uncrafting

import (
	"log"
	"strings"

	"decraft.ai/internal/sim/catalogs"
	"decraft.ai/internal/sim/recipes"
	"decraft.ai/internal/sim/tuning"
	"decraft.ai/internal/sim/uncrafting/handlers"
	"decraft.ai/internal/sim/uncrafting/plugins/generic"
	"decraft.ai/internal/sim/uncrafting/plugins/masked"
)

// Engine is everything built from one set of catalogs and tuning.
type Engine struct {
	Items    *recipes.Items
	Ores     *recipes.Ores
	Registry *recipes.Registry
	Resolver *handlers.Resolver
	Manager  *Manager
}

// NewEngine builds the registry from cat and installs the plugin families
// listed in t. Families that fail their probe are logged and left disabled.
func NewEngine(cat *catalogs.Catalogs, t tuning.Tuning, logger *log.Logger) (*Engine, error) {
	e := &Engine{Items: recipes.NewItems(cat.Items)}
	e.Ores = recipes.NewOres(e.Items, cat.OreDict)

	reg, err := recipes.FromCatalogs(e.Items, e.Ores, cat.Recipes)
	if err != nil {
		return nil, err
	}
	e.Registry = reg

	var p handlers.Plugins
	if t.PluginEnabled(masked.Family) {
		p.Masked = masked.New(e.Items, e.Ores)
	}
	if t.PluginEnabled(generic.Family) {
		p.Generic = generic.New(e.Items)
	}
	e.Resolver = handlers.NewResolver(p)
	if logger != nil {
		for name, err := range e.Resolver.Disabled() {
			family, _, _ := strings.Cut(name, "_")
			if t.PluginEnabled(family) {
				logger.Printf("plugin handler %s disabled: %v", name, err)
			}
		}
	}

	e.Manager = New(ConfigFromTuning(t), reg, e.Resolver, e.Items, logger)
	return e, nil
}
