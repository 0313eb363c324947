package handlers

import (
	"decraft.ai/internal/sim/recipes"
)

// Plugins carries the optional third-party sources. A nil source leaves its
// family disabled.
type Plugins struct {
	Masked  MaskSource
	Generic Source
}

// Resolver maps a recipe to the handler able to decode it.
type Resolver struct {
	shaped       Handler
	shapeless    Handler
	shapedOre    Handler
	shapelessOre Handler

	// Tried in order after the native representations.
	foreign []PluginHandler
}

func NewResolver(p Plugins) *Resolver {
	return &Resolver{
		shaped:       shapedHandler{},
		shapeless:    shapelessHandler{},
		shapedOre:    shapedOreHandler{},
		shapelessOre: shapelessOreHandler{},
		foreign: []PluginHandler{
			NewMasked(p.Masked, recipes.ShapeShaped),
			NewMasked(p.Masked, recipes.ShapeShapeless),
			NewGeneric(p.Generic, recipes.ShapeShaped),
			NewGeneric(p.Generic, recipes.ShapeShapeless),
		},
	}
}

// Resolve returns the handler for r. Map extending recipes are shaped
// recipes whose output cannot be reversed, so they never resolve.
func (res *Resolver) Resolve(r recipes.Recipe) (Handler, bool) {
	switch rec := r.(type) {
	case nil:
		return nil, false
	case *recipes.MapExtending:
		return nil, false
	case *recipes.Shaped:
		return res.shaped, true
	case *recipes.ShapedOre:
		return res.shapedOre, true
	case *recipes.ShapelessOre:
		return res.shapelessOre, true
	case *recipes.Shapeless:
		return res.shapeless, true
	case *recipes.Foreign:
		for _, h := range res.foreign {
			if h.Claims(rec) {
				return h, true
			}
		}
	}
	return nil, false
}

// Disabled reports the plugin handlers that failed their probe, with the reason.
func (res *Resolver) Disabled() map[string]error {
	out := map[string]error{}
	for _, h := range res.foreign {
		if err := h.ProbeErr(); err != nil {
			out[h.Name()] = err
		}
	}
	return out
}
