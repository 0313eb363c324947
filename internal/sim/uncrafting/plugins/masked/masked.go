// Package masked reads recipes of the positional-mask family. Shaped payloads
// carry "input", "masks", "inputWidth" and "inputHeight"; only the first mask
// is used. Entries are {"item": ...}, {"ore": ...} or a list of alternatives.
package masked

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"decraft.ai/internal/sim/itemstack"
	"decraft.ai/internal/sim/recipes"
	"decraft.ai/internal/sim/uncrafting/handlers"
	"decraft.ai/internal/sim/uncrafting/plugins"
)

const Family = "masked"

type Source struct {
	items itemstack.Lookup
	ores  plugins.OreLookup
}

func New(items itemstack.Lookup, ores plugins.OreLookup) *Source {
	return &Source{items: items, ores: ores}
}

func (s *Source) Family() string { return Family }

func (s *Source) Probe() error {
	if s == nil || s.items == nil {
		return errors.New("masked: no item registry")
	}
	if s.ores == nil {
		return errors.New("masked: no ore dictionary")
	}
	return nil
}

func (s *Source) Inputs(f *recipes.Foreign) ([]recipes.Ingredient, error) {
	root, err := plugins.Parse(f.Data)
	if err != nil {
		return nil, fmt.Errorf("masked %s: %w", f.ID(), err)
	}
	return plugins.Inputs(root, "input", s.entry)
}

func (s *Source) Layout(f *recipes.Foreign) (handlers.MaskLayout, error) {
	var l handlers.MaskLayout
	root, err := plugins.Parse(f.Data)
	if err != nil {
		return l, fmt.Errorf("masked %s: %w", f.ID(), err)
	}
	masks := root.Get("masks").Array()
	if len(masks) == 0 {
		return l, errors.New("masks: missing")
	}
	w, h := root.Get("inputWidth"), root.Get("inputHeight")
	if w.Type != gjson.Number || h.Type != gjson.Number {
		return l, errors.New("inputWidth/inputHeight: missing")
	}
	l.Mask = int(masks[0].Int())
	l.Width = int(w.Int())
	l.Height = int(h.Int())
	if l.Width < 1 || l.Width > 3 || l.Height < 1 || l.Height > 3 {
		return l, fmt.Errorf("invalid size %dx%d", l.Width, l.Height)
	}
	if l.Inputs, err = plugins.Inputs(root, "input", s.entry); err != nil {
		return l, err
	}
	return l, nil
}

func (s *Source) entry(v gjson.Result) (recipes.Ingredient, error) {
	switch {
	case v.Type == gjson.Null:
		return nil, nil
	case v.IsArray():
		return plugins.Alternatives(s.items, v)
	case v.IsObject():
		if ore := v.Get("ore"); ore.Exists() {
			in, err := s.ores.Ingredient(ore.String())
			if err != nil {
				return nil, err
			}
			if len(in) == 0 {
				return nil, fmt.Errorf("ore %q has no items", ore.String())
			}
			return in, nil
		}
		st, err := plugins.Stack(s.items, v)
		if err != nil {
			return nil, err
		}
		return recipes.Exactly(st), nil
	}
	return nil, fmt.Errorf("unexpected %s entry", v.Type)
}
