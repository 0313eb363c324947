// Package generic reads recipes of the generic third-party family: a flat
// "input" list whose entries are a stack, a list of alternatives, or null.
package generic

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"decraft.ai/internal/sim/itemstack"
	"decraft.ai/internal/sim/recipes"
	"decraft.ai/internal/sim/uncrafting/plugins"
)

const Family = "generic"

type Source struct {
	items itemstack.Lookup
}

func New(items itemstack.Lookup) *Source {
	return &Source{items: items}
}

func (s *Source) Family() string { return Family }

func (s *Source) Probe() error {
	if s == nil || s.items == nil {
		return errors.New("generic: no item registry")
	}
	return nil
}

func (s *Source) Inputs(f *recipes.Foreign) ([]recipes.Ingredient, error) {
	root, err := plugins.Parse(f.Data)
	if err != nil {
		return nil, fmt.Errorf("generic %s: %w", f.ID(), err)
	}
	return plugins.Inputs(root, "input", s.entry)
}

func (s *Source) entry(v gjson.Result) (recipes.Ingredient, error) {
	switch {
	case v.Type == gjson.Null:
		return nil, nil
	case v.IsArray():
		return plugins.Alternatives(s.items, v)
	case v.IsObject():
		st, err := plugins.Stack(s.items, v)
		if err != nil {
			return nil, err
		}
		return recipes.Exactly(st), nil
	}
	return nil, fmt.Errorf("unexpected %s entry", v.Type)
}
