// Package handlers turns recipes of every supported representation into the
// 3x3 ingredient grid shown by the uncrafting table.
package handlers

import (
	"fmt"

	"decraft.ai/internal/sim/itemstack"
	"decraft.ai/internal/sim/recipes"
)

const GridSize = 9

// Grid is a row-major 3x3 crafting layout. Nil cells are empty.
type Grid [GridSize]*itemstack.Stack

func (g Grid) Filled() int {
	n := 0
	for _, s := range g {
		if s != nil {
			n++
		}
	}
	return n
}

type Status int

const (
	StatusComplete Status = iota
	// StatusPartial: the grid holds what could be read before the recipe stopped making sense.
	StatusPartial
	// StatusFailed: no grid could be produced.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "COMPLETE"
	case StatusPartial:
		return "PARTIAL"
	case StatusFailed:
		return "FAILED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

type Decoded struct {
	Grid   Grid
	Status Status
	Err    error
}

func (d Decoded) OK() bool { return d.Status != StatusFailed }

func complete(g Grid) Decoded { return Decoded{Grid: g, Status: StatusComplete} }

func failed(err error) Decoded { return Decoded{Status: StatusFailed, Err: err} }

// Handler decodes one recipe representation. Handlers are stateless and only
// defined for the recipes the resolver hands them; anything else comes back
// as StatusFailed.
type Handler interface {
	Name() string
	Decode(r recipes.Recipe) Decoded
}

// guard keeps a misbehaving decode from escaping the handler.
func guard(name string, fn func() Decoded) (d Decoded) {
	defer func() {
		if p := recover(); p != nil {
			d = failed(fmt.Errorf("%s: panic: %v", name, p))
		}
	}()
	return fn()
}

func wrongType(name string, r recipes.Recipe) Decoded {
	return failed(fmt.Errorf("%s: unsupported recipe %T", name, r))
}

// reshape lays a width x height pattern out on the 3x3 grid.
func reshape(items []*itemstack.Stack, width, height int) (Grid, bool) {
	var g Grid
	ok := true
	if width > 3 {
		width, ok = 3, false
	}
	if height > 3 {
		height, ok = 3, false
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			i := row*width + col
			if i >= len(items) {
				ok = false
				continue
			}
			g[row*3+col] = items[i]
		}
	}
	return g, ok
}

// sequential fills the grid in order, dropping anything past the ninth cell.
func sequential(items []*itemstack.Stack) Grid {
	var g Grid
	copy(g[:], items)
	return g
}

// firstAlternatives picks the canonical stack of each ingredient. Wildcard
// variants come back as variant 0 so a placeholder tool reads as a new one.
func firstAlternatives(inputs []recipes.Ingredient) []*itemstack.Stack {
	out := make([]*itemstack.Stack, len(inputs))
	for i, in := range inputs {
		out[i] = itemstack.NormalizeWildcard(in.First())
	}
	return out
}
