// Package recipes holds the crafting recipe representations the uncrafting
// table knows how to read, and the registry they are enumerated from.
package recipes

import (
	"encoding/json"

	"decraft.ai/internal/sim/itemstack"
)

type Recipe interface {
	ID() string
	Output() *itemstack.Stack
}

// Ingredient lists acceptable alternatives for one cell. The first one is
// what the table hands back. An empty ingredient is an empty cell.
type Ingredient []*itemstack.Stack

func Exactly(s *itemstack.Stack) Ingredient {
	if s == nil {
		return nil
	}
	return Ingredient{s}
}

func (in Ingredient) First() *itemstack.Stack {
	if len(in) == 0 {
		return nil
	}
	return in[0]
}

type base struct {
	RecipeID string
	Out      *itemstack.Stack
}

func (b *base) ID() string               { return b.RecipeID }
func (b *base) Output() *itemstack.Stack { return b.Out }

// Shaped is a fixed pattern of Width x Height cells, row-major.
type Shaped struct {
	base
	Items  []*itemstack.Stack
	Width  int
	Height int
}

type Shapeless struct {
	base
	Items []*itemstack.Stack
}

type ShapedOre struct {
	base
	Inputs []Ingredient
	Width  int
	Height int
}

type ShapelessOre struct {
	base
	Inputs []Ingredient
}

// MapExtending is a shaped recipe whose output depends on the map placed in the
// centre cell. It cannot be reversed.
type MapExtending struct {
	Shaped
}

const (
	ShapeShaped    = "shaped"
	ShapeShapeless = "shapeless"
)

// Foreign is a recipe contributed by a third-party family. Only a plugin for
// that family knows how to read Data.
type Foreign struct {
	base
	Family string
	Shape  string
	Data   json.RawMessage
}

func NewShaped(id string, out *itemstack.Stack, width, height int, items []*itemstack.Stack) *Shaped {
	return &Shaped{base: base{RecipeID: id, Out: out}, Items: items, Width: width, Height: height}
}

func NewShapeless(id string, out *itemstack.Stack, items []*itemstack.Stack) *Shapeless {
	return &Shapeless{base: base{RecipeID: id, Out: out}, Items: items}
}

func NewShapedOre(id string, out *itemstack.Stack, width, height int, inputs []Ingredient) *ShapedOre {
	return &ShapedOre{base: base{RecipeID: id, Out: out}, Inputs: inputs, Width: width, Height: height}
}

func NewShapelessOre(id string, out *itemstack.Stack, inputs []Ingredient) *ShapelessOre {
	return &ShapelessOre{base: base{RecipeID: id, Out: out}, Inputs: inputs}
}

func NewMapExtending(id string, out *itemstack.Stack, items []*itemstack.Stack) *MapExtending {
	return &MapExtending{Shaped: *NewShaped(id, out, 3, 3, items)}
}

func NewForeign(id string, out *itemstack.Stack, family, shape string, data json.RawMessage) *Foreign {
	return &Foreign{base: base{RecipeID: id, Out: out}, Family: family, Shape: shape, Data: data}
}
