package uncrafting

import (
	"decraft.ai/internal/sim/itemstack"
)

// EnchantmentTransfer moves the enchantments of s onto books taken from
// container. With enough books each enchantment gets its own book; otherwise
// one book carries them all. Without a plain book stack nothing is produced.
func (m *Manager) EnchantmentTransfer(s, container *itemstack.Stack) []*itemstack.Stack {
	if !s.Enchanted() || container == nil || container.ID() != itemstack.Book {
		return nil
	}
	ench := s.Enchantments
	if len(ench) > 1 && len(ench) <= container.Count {
		books := make([]*itemstack.Stack, 0, len(ench))
		for _, e := range ench {
			books = append(books, m.enchantedBook(itemstack.Enchantments{e}))
		}
		return books
	}
	return []*itemstack.Stack{m.enchantedBook(ench.Clone())}
}

func (m *Manager) enchantedBook(e itemstack.Enchantments) *itemstack.Stack {
	b := itemstack.New(m.book, 1, 0)
	b.Enchantments = e
	return b
}
