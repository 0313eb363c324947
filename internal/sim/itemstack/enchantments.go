package itemstack

import (
	"fmt"
	"strconv"
	"strings"
)

type Enchantment struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// Enchantments keeps insertion order; ids are unique.
type Enchantments []Enchantment

func (e Enchantments) Clone() Enchantments {
	if e == nil {
		return nil
	}
	out := make(Enchantments, len(e))
	copy(out, e)
	return out
}

func (e Enchantments) Level(id string) (int, bool) {
	for _, en := range e {
		if en.ID == id {
			return en.Level, true
		}
	}
	return 0, false
}

// Set updates the level of id in place or appends it.
func (e Enchantments) Set(id string, level int) Enchantments {
	for i := range e {
		if e[i].ID == id {
			e[i].Level = level
			return e
		}
	}
	return append(e, Enchantment{ID: id, Level: level})
}

func (e Enchantments) String() string {
	parts := make([]string, 0, len(e))
	for _, en := range e {
		parts = append(parts, en.ID+"="+strconv.Itoa(en.Level))
	}
	return strings.Join(parts, ",")
}

// ParseEnchantments parses "id=level,id=level". Duplicate ids keep the last level.
func ParseEnchantments(s string) (Enchantments, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out Enchantments
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, lvl, ok := strings.Cut(part, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("enchantment %q: expected id=level", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(lvl))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("enchantment %q: invalid level", part)
		}
		out = out.Set(id, n)
	}
	return out, nil
}
