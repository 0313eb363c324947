package itemstack

// WildcardDamage is the variant tag recipes use for "any variant" of an item.
const WildcardDamage = 32767

const (
	Book          = "BOOK"
	EnchantedBook = "ENCHANTED_BOOK"
)

type Item struct {
	ID            string
	Kind          string
	MaxDamage     int
	HasSubtypes   bool
	ContainerItem string
}

// Damageable reports whether Damage is a wear counter rather than a variant tag.
func (it *Item) Damageable() bool {
	return it != nil && it.MaxDamage > 0 && !it.HasSubtypes
}

func (it *Item) HasContainerItem() bool {
	return it != nil && it.ContainerItem != ""
}

// Lookup resolves item ids against a read-only item registry.
type Lookup interface {
	Item(id string) (*Item, bool)
}

type Stack struct {
	Item         *Item
	Damage       int
	Count        int
	Enchantments Enchantments
}

func New(it *Item, count, damage int) *Stack {
	return &Stack{Item: it, Count: count, Damage: damage}
}

func (s *Stack) ID() string {
	if s == nil || s.Item == nil {
		return ""
	}
	return s.Item.ID
}

func (s *Stack) Damageable() bool {
	return s != nil && s.Item.Damageable()
}

func (s *Stack) Damaged() bool {
	return s.Damageable() && s.Damage > 0
}

func (s *Stack) Enchanted() bool {
	return s != nil && len(s.Enchantments) > 0
}

func (s *Stack) Copy() *Stack {
	if s == nil {
		return nil
	}
	c := *s
	c.Enchantments = s.Enchantments.Clone()
	return &c
}

// SameItem compares item type and variant tag.
func SameItem(a, b *Stack) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Item == b.Item && a.Damage == b.Damage
}

// EqualIgnoreDurability compares two stacks by item type, and also by variant
// tag unless the first stack's item tracks wear.
func EqualIgnoreDurability(a, b *Stack) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !a.Damageable() {
		return SameItem(a, b)
	}
	return a.Item == b.Item
}

// NormalizeWildcard returns s, or a copy with the wildcard variant replaced by 0.
func NormalizeWildcard(s *Stack) *Stack {
	if s == nil || s.Damage != WildcardDamage {
		return s
	}
	c := s.Copy()
	c.Damage = 0
	return c
}
