package tuning

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Uncrafting methods.
const (
	MethodFlat   = 0
	MethodWorn   = 1
	methodsCount = 2
)

type Tuning struct {
	Uncrafting Uncrafting `yaml:"uncrafting" json:"uncrafting"`

	// Plugins lists the third-party recipe families installed alongside the game.
	Plugins []string `yaml:"plugins" json:"plugins"`
}

type Uncrafting struct {
	Method        int      `yaml:"method" json:"method"`
	StandardLevel int      `yaml:"standard_level" json:"standard_level"`
	MaxUsedLevel  int      `yaml:"max_used_level" json:"max_used_level"`
	ExcludedItems []string `yaml:"excluded_items" json:"excluded_items"`
}

func Defaults() Tuning {
	return Tuning{
		Uncrafting: Uncrafting{
			Method:        MethodFlat,
			StandardLevel: 5,
			MaxUsedLevel:  10,
		},
	}
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// Validate rejects values that cannot be right. An unknown method is allowed
// through: the uncrafting manager reports it as an invalid cost.
func (t *Tuning) Validate() error {
	u := &t.Uncrafting
	if u.StandardLevel < 0 {
		return fmt.Errorf("uncrafting.standard_level must be >= 0, got %d", u.StandardLevel)
	}
	if u.MaxUsedLevel < 0 {
		return fmt.Errorf("uncrafting.max_used_level must be >= 0, got %d", u.MaxUsedLevel)
	}
	for i, id := range u.ExcludedItems {
		u.ExcludedItems[i] = strings.TrimSpace(id)
		if u.ExcludedItems[i] == "" {
			return fmt.Errorf("uncrafting.excluded_items[%d] is empty", i)
		}
	}
	seen := map[string]bool{}
	for _, p := range t.Plugins {
		if seen[p] {
			return fmt.Errorf("plugins: duplicate %q", p)
		}
		seen[p] = true
	}
	return nil
}

func (t Tuning) KnownMethod() bool {
	return t.Uncrafting.Method >= 0 && t.Uncrafting.Method < methodsCount
}

func (t Tuning) PluginEnabled(family string) bool {
	for _, p := range t.Plugins {
		if p == family {
			return true
		}
	}
	return false
}
