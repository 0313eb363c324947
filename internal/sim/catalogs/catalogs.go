package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Catalogs struct {
	Items   ItemCatalog
	Recipes RecipeCatalog
	OreDict OreDictCatalog
}

type ItemCatalog struct {
	Palette       []string
	Index         map[string]uint16
	Defs          map[string]ItemDef
	PaletteDigest string
	DefsDigest    string
}

type ItemDef struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"` // "BLOCK","TOOL","ARMOR","MATERIAL","FOOD","CONTAINER"
	MaxDamage     int    `json:"max_damage,omitempty"`
	HasSubtypes   bool   `json:"has_subtypes,omitempty"`
	ContainerItem string `json:"container_item,omitempty"`
}

// RecipeCatalog keeps file order: the first matching recipe wins during lookups.
type RecipeCatalog struct {
	Ordered []RecipeDef
	ByID    map[string]RecipeDef
	Digest  string
}

const (
	RecipeShaped       = "shaped"
	RecipeShapeless    = "shapeless"
	RecipeOreShaped    = "ore_shaped"
	RecipeOreShapeless = "ore_shapeless"
	RecipeMapExtending = "map_extending"
	RecipeForeign      = "foreign"
)

type RecipeDef struct {
	RecipeID string           `json:"recipe_id"`
	Type     string           `json:"type"`
	Output   ItemRef          `json:"output"`
	Width    int              `json:"width,omitempty"`
	Height   int              `json:"height,omitempty"`
	Inputs   []*IngredientDef `json:"inputs,omitempty"`

	// Foreign recipes only: the payload is owned by the plugin family.
	Family string          `json:"family,omitempty"`
	Shape  string          `json:"shape,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type ItemRef struct {
	Item   string `json:"item"`
	Count  int    `json:"count,omitempty"`
	Damage int    `json:"damage,omitempty"`
}

// IngredientDef is either a single item or an ore dictionary group. A null
// entry in a recipe's inputs is an empty cell.
type IngredientDef struct {
	Item   string `json:"item,omitempty"`
	Damage int    `json:"damage,omitempty"`
	Ore    string `json:"ore,omitempty"`
}

type OreDictCatalog struct {
	ByName map[string][]ItemRef
	Digest string
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadItems(filepath.Join(configDir, "items.json"), &c.Items); err != nil {
		return nil, err
	}
	if err := loadOreDict(filepath.Join(configDir, "ore_dict.json"), &c.OreDict); err != nil {
		return nil, err
	}
	if err := loadRecipes(filepath.Join(configDir, "recipes.json"), &c.Recipes); err != nil {
		return nil, err
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadItems(path string, out *ItemCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := validate("items.schema.json", raw); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	out.DefsDigest = sha256Hex(raw)

	var defs []ItemDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	out.Defs = map[string]ItemDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("items.json: empty id")
		}
		if _, dup := out.Defs[d.ID]; dup {
			return fmt.Errorf("items.json: duplicate id %q", d.ID)
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.Palette = ids
	out.Index = make(map[string]uint16, len(ids))
	for i, id := range ids {
		out.Index[id] = uint16(i)
	}
	palJSON, _ := json.Marshal(ids)
	out.PaletteDigest = sha256Hex(palJSON)
	return nil
}

func loadOreDict(path string, out *OreDictCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		// The ore dictionary is optional; recipes referencing it fail the check below.
		if os.IsNotExist(err) {
			out.ByName = map[string][]ItemRef{}
			out.Digest = sha256Hex(nil)
			return nil
		}
		return err
	}
	if err := validate("ore_dict.schema.json", raw); err != nil {
		return fmt.Errorf("ore_dict.json: %w", err)
	}
	out.Digest = sha256Hex(raw)
	out.ByName = map[string][]ItemRef{}
	if err := json.Unmarshal(raw, &out.ByName); err != nil {
		return fmt.Errorf("ore_dict.json: %w", err)
	}
	return nil
}

func loadRecipes(path string, out *RecipeCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := validate("recipes.schema.json", raw); err != nil {
		return fmt.Errorf("recipes.json: %w", err)
	}
	out.Digest = sha256Hex(raw)

	var defs []RecipeDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("recipes.json: %w", err)
	}
	out.Ordered = defs
	out.ByID = map[string]RecipeDef{}
	for _, r := range defs {
		if r.RecipeID == "" {
			return fmt.Errorf("recipes.json: empty recipe_id")
		}
		if _, dup := out.ByID[r.RecipeID]; dup {
			return fmt.Errorf("recipes.json: duplicate recipe_id %q", r.RecipeID)
		}
		out.ByID[r.RecipeID] = r
	}
	return nil
}

// check verifies cross references between the catalogs. Foreign payloads are
// not inspected here; their items are resolved by the owning plugin.
func (c *Catalogs) check() error {
	hasItem := func(id string) bool {
		_, ok := c.Items.Defs[id]
		return ok
	}
	for ore, refs := range c.OreDict.ByName {
		for _, r := range refs {
			if !hasItem(r.Item) {
				return fmt.Errorf("ore_dict.json: %q references unknown item %q", ore, r.Item)
			}
		}
	}
	for _, def := range c.Items.Defs {
		if def.ContainerItem != "" && !hasItem(def.ContainerItem) {
			return fmt.Errorf("items.json: %q has unknown container_item %q", def.ID, def.ContainerItem)
		}
	}
	for _, r := range c.Recipes.Ordered {
		if !hasItem(r.Output.Item) {
			return fmt.Errorf("recipe %q: unknown output item %q", r.RecipeID, r.Output.Item)
		}
		switch r.Type {
		case RecipeShaped, RecipeMapExtending, RecipeOreShaped:
			if r.Width < 1 || r.Width > 3 || r.Height < 1 || r.Height > 3 {
				return fmt.Errorf("recipe %q: invalid size %dx%d", r.RecipeID, r.Width, r.Height)
			}
			if len(r.Inputs) != r.Width*r.Height {
				return fmt.Errorf("recipe %q: expected %d inputs, got %d", r.RecipeID, r.Width*r.Height, len(r.Inputs))
			}
		case RecipeForeign:
			if strings.TrimSpace(r.Family) == "" {
				return fmt.Errorf("recipe %q: foreign recipe without family", r.RecipeID)
			}
			continue
		}
		for i, in := range r.Inputs {
			if in == nil {
				continue
			}
			if in.Ore != "" {
				if r.Type != RecipeOreShaped && r.Type != RecipeOreShapeless {
					return fmt.Errorf("recipe %q: input %d: ore ingredient in %s recipe", r.RecipeID, i, r.Type)
				}
				if _, ok := c.OreDict.ByName[in.Ore]; !ok {
					return fmt.Errorf("recipe %q: input %d: unknown ore %q", r.RecipeID, i, in.Ore)
				}
				continue
			}
			if !hasItem(in.Item) {
				return fmt.Errorf("recipe %q: input %d: unknown item %q", r.RecipeID, i, in.Item)
			}
		}
	}
	return nil
}
