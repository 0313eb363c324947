package catalogs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ShippedConfigs(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "..", "configs"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Recipes.Ordered) == 0 {
		t.Fatalf("expected recipes")
	}
	if c.Recipes.Ordered[0].RecipeID != "planks" {
		t.Fatalf("expected file order to be preserved, got %q first", c.Recipes.Ordered[0].RecipeID)
	}
	if _, ok := c.Items.Defs["MILK_BUCKET"]; !ok {
		t.Fatalf("expected MILK_BUCKET item")
	}
	if c.Items.DefsDigest == "" || c.Items.PaletteDigest == "" || c.Recipes.Digest == "" || c.OreDict.Digest == "" {
		t.Fatalf("expected digests to be set")
	}
	for i := 1; i < len(c.Items.Palette); i++ {
		if c.Items.Palette[i-1] >= c.Items.Palette[i] {
			t.Fatalf("palette not sorted at %d: %v", i, c.Items.Palette)
		}
	}
}

func writeConfigs(t *testing.T, items, recipes, ores string) string {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) {
		if body == "" {
			return
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("items.json", items)
	write("recipes.json", recipes)
	write("ore_dict.json", ores)
	return dir
}

func TestLoad_SchemaRejectsUnknownRecipeType(t *testing.T) {
	dir := writeConfigs(t,
		`[{"id":"STICK","kind":"MATERIAL"}]`,
		`[{"recipe_id":"x","type":"smelting","output":{"item":"STICK"}}]`,
		"")
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "recipes.json") {
		t.Fatalf("expected recipes.json schema error, got %v", err)
	}
}

func TestLoad_SchemaRejectsItemAndOreTogether(t *testing.T) {
	dir := writeConfigs(t,
		`[{"id":"STICK","kind":"MATERIAL"}]`,
		`[{"recipe_id":"x","type":"ore_shapeless","output":{"item":"STICK"},"inputs":[{"item":"STICK","ore":"stickWood"}]}]`,
		`{"stickWood":[{"item":"STICK"}]}`)
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected schema error")
	}
}

func TestLoad_UnknownOre(t *testing.T) {
	dir := writeConfigs(t,
		`[{"id":"STICK","kind":"MATERIAL"},{"id":"LADDER","kind":"BLOCK"}]`,
		`[{"recipe_id":"ladder","type":"ore_shapeless","output":{"item":"LADDER","count":3},"inputs":[{"ore":"stickWood"}]}]`,
		"")
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "unknown ore") {
		t.Fatalf("expected unknown ore error, got %v", err)
	}
}

func TestLoad_ShapedInputCountMustMatchSize(t *testing.T) {
	dir := writeConfigs(t,
		`[{"id":"STICK","kind":"MATERIAL"},{"id":"LADDER","kind":"BLOCK"}]`,
		`[{"recipe_id":"ladder","type":"shaped","output":{"item":"LADDER"},"width":2,"height":2,"inputs":[{"item":"STICK"}]}]`,
		"")
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected size mismatch error")
	}
}

func TestLoad_DuplicateRecipeID(t *testing.T) {
	dir := writeConfigs(t,
		`[{"id":"STICK","kind":"MATERIAL"}]`,
		`[{"recipe_id":"a","type":"shapeless","output":{"item":"STICK"},"inputs":[{"item":"STICK"}]},
		  {"recipe_id":"a","type":"shapeless","output":{"item":"STICK"},"inputs":[{"item":"STICK"}]}]`,
		"")
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected duplicate recipe_id error")
	}
}

func TestLoad_ForeignPayloadIsNotInspected(t *testing.T) {
	dir := writeConfigs(t,
		`[{"id":"CASING","kind":"BLOCK"}]`,
		`[{"recipe_id":"c","type":"foreign","family":"masked","shape":"shaped","output":{"item":"CASING"},"data":{"input":[{"item":"NOT_IN_CATALOG"}]}}]`,
		"")
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Recipes.ByID["c"].Family; got != "masked" {
		t.Fatalf("unexpected family %q", got)
	}
}
