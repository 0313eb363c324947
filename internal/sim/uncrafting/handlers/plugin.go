package handlers

import (
	"errors"
	"fmt"

	"decraft.ai/internal/sim/itemstack"
	"decraft.ai/internal/sim/recipes"
)

// Source is implemented by a plugin that understands the payload of one
// third-party recipe family. Inputs may return the ingredients read before an
// error together with that error.
type Source interface {
	Family() string
	// Probe is called once when the handler is built. A non-nil error means
	// the family is not installed and its recipes stay opaque.
	Probe() error
	Inputs(f *recipes.Foreign) ([]recipes.Ingredient, error)
}

// MaskLayout describes a shaped recipe packed as a bit mask: bit 8-i of Mask
// is set when cell i of the grid holds the next input.
type MaskLayout struct {
	Inputs []recipes.Ingredient
	Mask   int
	Width  int
	Height int
}

type MaskSource interface {
	Source
	Layout(f *recipes.Foreign) (MaskLayout, error)
}

// PluginHandler decodes Foreign recipes of a single family and shape.
type PluginHandler interface {
	Handler
	Available() bool
	ProbeErr() error
	Claims(f *recipes.Foreign) bool
}

var errUnavailable = errors.New("plugin family not installed")

type pluginBase struct {
	family    string
	shape     string
	available bool
	probeErr  error
}

func newPluginBase(src Source, family, shape string) pluginBase {
	b := pluginBase{family: family, shape: shape}
	if src == nil {
		b.probeErr = errUnavailable
		return b
	}
	b.family = src.Family()
	if err := src.Probe(); err != nil {
		b.probeErr = err
		return b
	}
	b.available = true
	return b
}

func (b pluginBase) Name() string    { return b.family + "_" + b.shape }
func (b pluginBase) Available() bool { return b.available }

// ProbeErr reports why the handler is disabled.
func (b pluginBase) ProbeErr() error { return b.probeErr }

func (b pluginBase) Claims(f *recipes.Foreign) bool {
	return b.available && f != nil && f.Family == b.family && f.Shape == b.shape
}

func (b pluginBase) foreign(r recipes.Recipe) (*recipes.Foreign, error) {
	if !b.available {
		return nil, fmt.Errorf("%s: %w", b.Name(), errUnavailable)
	}
	f, ok := r.(*recipes.Foreign)
	if !ok || !b.Claims(f) {
		return nil, fmt.Errorf("%s: unsupported recipe %T", b.Name(), r)
	}
	return f, nil
}

// genericHandler reads the flat input list of the generic family. The shaped
// variant keeps whatever was read before a fault; the shapeless one does not.
type genericHandler struct {
	pluginBase
	src Source
}

func NewGeneric(src Source, shape string) PluginHandler {
	return &genericHandler{pluginBase: newPluginBase(src, "generic", shape), src: src}
}

func (h *genericHandler) Decode(r recipes.Recipe) Decoded {
	return guard(h.Name(), func() Decoded {
		f, err := h.foreign(r)
		if err != nil {
			return failed(err)
		}
		inputs, err := h.src.Inputs(f)
		if err != nil {
			if h.shape != recipes.ShapeShaped || len(inputs) == 0 {
				return failed(fmt.Errorf("%s: %w", h.Name(), err))
			}
			return Decoded{Grid: sequential(firstAlternatives(inputs)), Status: StatusPartial, Err: err}
		}
		return complete(sequential(firstAlternatives(inputs)))
	})
}

type maskedHandler struct {
	pluginBase
	src MaskSource
}

func NewMasked(src MaskSource, shape string) PluginHandler {
	return &maskedHandler{pluginBase: newPluginBase(src, "masked", shape), src: src}
}

func (h *maskedHandler) Decode(r recipes.Recipe) Decoded {
	return guard(h.Name(), func() Decoded {
		f, err := h.foreign(r)
		if err != nil {
			return failed(err)
		}
		if h.shape == recipes.ShapeShapeless {
			inputs, err := h.src.Inputs(f)
			if err != nil {
				return failed(fmt.Errorf("%s: %w", h.Name(), err))
			}
			return complete(sequential(firstAlternatives(inputs)))
		}
		layout, err := h.src.Layout(f)
		if err != nil {
			return failed(fmt.Errorf("%s: %w", h.Name(), err))
		}
		g, err := maskGrid(firstAlternatives(layout.Inputs), layout.Mask, layout.Width, layout.Height)
		if err != nil {
			return failed(fmt.Errorf("%s: %w", h.Name(), err))
		}
		return complete(g)
	})
}

// maskGrid places inputs on the cells inside width x height whose mask bit is
// set, most significant relevant bit first.
func maskGrid(inputs []*itemstack.Stack, mask, width, height int) (Grid, error) {
	var g Grid
	next := 0
	for i := 0; i < GridSize; i++ {
		if i%3 >= width || i/3 >= height {
			continue
		}
		if (mask>>(8-i))&1 == 0 {
			continue
		}
		if next >= len(inputs) {
			return Grid{}, fmt.Errorf("mask %09b needs more than %d inputs", mask&0x1ff, len(inputs))
		}
		g[i] = inputs[next]
		next++
	}
	return g, nil
}
