package recipes

import (
	"fmt"

	"decraft.ai/internal/sim/catalogs"
	"decraft.ai/internal/sim/itemstack"
)

// Items adapts the item catalog to itemstack.Lookup. Item definitions are
// materialized once so stacks of the same item share a pointer.
type Items struct {
	byID map[string]*itemstack.Item
}

func NewItems(cat catalogs.ItemCatalog) *Items {
	it := &Items{byID: make(map[string]*itemstack.Item, len(cat.Defs))}
	for id, d := range cat.Defs {
		it.byID[id] = &itemstack.Item{
			ID:            d.ID,
			Kind:          d.Kind,
			MaxDamage:     d.MaxDamage,
			HasSubtypes:   d.HasSubtypes,
			ContainerItem: d.ContainerItem,
		}
	}
	return it
}

func (it *Items) Item(id string) (*itemstack.Item, bool) {
	i, ok := it.byID[id]
	return i, ok
}

// Ores resolves ore dictionary names to their alternatives.
type Ores struct {
	items  itemstack.Lookup
	byName map[string][]catalogs.ItemRef
}

func NewOres(items itemstack.Lookup, cat catalogs.OreDictCatalog) *Ores {
	return &Ores{items: items, byName: cat.ByName}
}

// Ingredient returns the alternatives registered under name. Each call returns
// fresh stacks.
func (o *Ores) Ingredient(name string) (Ingredient, error) {
	refs, ok := o.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown ore %q", name)
	}
	out := make(Ingredient, 0, len(refs))
	for _, ref := range refs {
		s, err := stackOf(o.items, ref.Item, 1, ref.Damage)
		if err != nil {
			return nil, fmt.Errorf("ore %q: %w", name, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func stackOf(items itemstack.Lookup, id string, count, damage int) (*itemstack.Stack, error) {
	it, ok := items.Item(id)
	if !ok {
		return nil, fmt.Errorf("unknown item %q", id)
	}
	if count <= 0 {
		count = 1
	}
	return itemstack.New(it, count, damage), nil
}

// FromCatalogs builds the recipe registry in catalog order.
func FromCatalogs(items itemstack.Lookup, ores *Ores, cat catalogs.RecipeCatalog) (*Registry, error) {
	reg := NewRegistry()
	for _, def := range cat.Ordered {
		rec, err := build(items, ores, def)
		if err != nil {
			return nil, fmt.Errorf("recipe %q: %w", def.RecipeID, err)
		}
		reg.Register(rec)
	}
	return reg, nil
}

func build(items itemstack.Lookup, ores *Ores, def catalogs.RecipeDef) (Recipe, error) {
	out, err := stackOf(items, def.Output.Item, def.Output.Count, def.Output.Damage)
	if err != nil {
		return nil, err
	}

	switch def.Type {
	case catalogs.RecipeShaped, catalogs.RecipeShapeless, catalogs.RecipeMapExtending:
		stacks := make([]*itemstack.Stack, len(def.Inputs))
		for i, in := range def.Inputs {
			if in == nil {
				continue
			}
			if in.Ore != "" {
				return nil, fmt.Errorf("input %d: ore ingredient in %s recipe", i, def.Type)
			}
			if stacks[i], err = stackOf(items, in.Item, 1, in.Damage); err != nil {
				return nil, fmt.Errorf("input %d: %w", i, err)
			}
		}
		switch def.Type {
		case catalogs.RecipeShaped:
			return NewShaped(def.RecipeID, out, def.Width, def.Height, stacks), nil
		case catalogs.RecipeMapExtending:
			return NewMapExtending(def.RecipeID, out, stacks), nil
		default:
			return NewShapeless(def.RecipeID, out, stacks), nil
		}

	case catalogs.RecipeOreShaped, catalogs.RecipeOreShapeless:
		inputs := make([]Ingredient, len(def.Inputs))
		for i, in := range def.Inputs {
			if in == nil {
				continue
			}
			if in.Ore != "" {
				if ores == nil {
					return nil, fmt.Errorf("input %d: no ore dictionary", i)
				}
				if inputs[i], err = ores.Ingredient(in.Ore); err != nil {
					return nil, fmt.Errorf("input %d: %w", i, err)
				}
				continue
			}
			s, err := stackOf(items, in.Item, 1, in.Damage)
			if err != nil {
				return nil, fmt.Errorf("input %d: %w", i, err)
			}
			inputs[i] = Exactly(s)
		}
		if def.Type == catalogs.RecipeOreShaped {
			return NewShapedOre(def.RecipeID, out, def.Width, def.Height, inputs), nil
		}
		return NewShapelessOre(def.RecipeID, out, inputs), nil

	case catalogs.RecipeForeign:
		shape := def.Shape
		if shape == "" {
			shape = ShapeShaped
		}
		return NewForeign(def.RecipeID, out, def.Family, shape, def.Data), nil
	}
	return nil, fmt.Errorf("unsupported recipe type %q", def.Type)
}
