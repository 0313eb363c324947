package handlers

import (
	"fmt"

	"decraft.ai/internal/sim/recipes"
)

type shapedHandler struct{}

func (shapedHandler) Name() string { return "shaped" }

func (h shapedHandler) Decode(r recipes.Recipe) Decoded {
	return guard(h.Name(), func() Decoded {
		s, ok := r.(*recipes.Shaped)
		if !ok {
			return wrongType(h.Name(), r)
		}
		return shapedResult(reshape(s.Items, s.Width, s.Height))
	})
}

type shapelessHandler struct{}

func (shapelessHandler) Name() string { return "shapeless" }

func (h shapelessHandler) Decode(r recipes.Recipe) Decoded {
	return guard(h.Name(), func() Decoded {
		s, ok := r.(*recipes.Shapeless)
		if !ok {
			return wrongType(h.Name(), r)
		}
		return complete(sequential(s.Items))
	})
}

type shapedOreHandler struct{}

func (shapedOreHandler) Name() string { return "shaped_ore" }

func (h shapedOreHandler) Decode(r recipes.Recipe) Decoded {
	return guard(h.Name(), func() Decoded {
		s, ok := r.(*recipes.ShapedOre)
		if !ok {
			return wrongType(h.Name(), r)
		}
		return shapedResult(reshape(firstAlternatives(s.Inputs), s.Width, s.Height))
	})
}

type shapelessOreHandler struct{}

func (shapelessOreHandler) Name() string { return "shapeless_ore" }

func (h shapelessOreHandler) Decode(r recipes.Recipe) Decoded {
	return guard(h.Name(), func() Decoded {
		s, ok := r.(*recipes.ShapelessOre)
		if !ok {
			return wrongType(h.Name(), r)
		}
		return complete(sequential(firstAlternatives(s.Inputs)))
	})
}

func shapedResult(g Grid, ok bool) Decoded {
	if ok {
		return complete(g)
	}
	return Decoded{Grid: g, Status: StatusPartial, Err: fmt.Errorf("pattern does not match its declared size")}
}
