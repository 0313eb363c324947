// Package plugins holds the payload readers shared by the third-party recipe
// families. Payloads are read by path so a family changing its layout only
// breaks the recipes that use the changed fields.
package plugins

import (
	"fmt"

	"github.com/tidwall/gjson"

	"decraft.ai/internal/sim/itemstack"
	"decraft.ai/internal/sim/recipes"
)

// OreLookup resolves ore dictionary names.
type OreLookup interface {
	Ingredient(name string) (recipes.Ingredient, error)
}

// Parse validates raw and returns its root.
func Parse(raw []byte) (gjson.Result, error) {
	if len(raw) == 0 {
		return gjson.Result{}, fmt.Errorf("empty payload")
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("payload is not valid json")
	}
	return gjson.ParseBytes(raw), nil
}

// Stack reads {"item": id, "damage": n, "count": n}.
func Stack(items itemstack.Lookup, v gjson.Result) (*itemstack.Stack, error) {
	id := v.Get("item")
	if id.Type != gjson.String || id.Str == "" {
		return nil, fmt.Errorf("missing item")
	}
	it, ok := items.Item(id.Str)
	if !ok {
		return nil, fmt.Errorf("unknown item %q", id.Str)
	}
	count := int(v.Get("count").Int())
	if count <= 0 {
		count = 1
	}
	return itemstack.New(it, count, int(v.Get("damage").Int())), nil
}

// Alternatives reads a non-empty array of stacks.
func Alternatives(items itemstack.Lookup, v gjson.Result) (recipes.Ingredient, error) {
	arr := v.Array()
	if len(arr) == 0 {
		return nil, fmt.Errorf("empty alternatives")
	}
	out := make(recipes.Ingredient, 0, len(arr))
	for i, a := range arr {
		s, err := Stack(items, a)
		if err != nil {
			return nil, fmt.Errorf("alternative %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Inputs walks the array at path, decoding each entry with fn. It stops at
// the first bad entry and returns what it read so far.
func Inputs(root gjson.Result, path string, fn func(gjson.Result) (recipes.Ingredient, error)) ([]recipes.Ingredient, error) {
	arr := root.Get(path)
	if !arr.IsArray() {
		return nil, fmt.Errorf("%s: missing", path)
	}
	var out []recipes.Ingredient
	for i, v := range arr.Array() {
		in, err := fn(v)
		if err != nil {
			return out, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
		out = append(out, in)
	}
	return out, nil
}
