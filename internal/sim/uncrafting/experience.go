package uncrafting

import (
	"decraft.ai/internal/sim/itemstack"
	"decraft.ai/internal/sim/tuning"
)

// InvalidCost is returned for an unknown uncrafting method. Nothing can be
// uncrafted at that cost.
const InvalidCost = -1

// ExperienceCost returns the levels charged for uncrafting s. With the worn
// method a damaged tool costs a share of MaxUsedLevel proportional to its
// wear, in place of the standard level.
func (m *Manager) ExperienceCost(s *itemstack.Stack) int {
	switch m.cfg.Method {
	case tuning.MethodFlat:
		return m.cfg.StandardLevel
	case tuning.MethodWorn:
		if !s.Damaged() {
			return m.cfg.StandardLevel
		}
		percent := int(float64(s.Damage) / float64(s.Item.MaxDamage) * 100)
		return m.cfg.MaxUsedLevel * percent / 100
	}
	return InvalidCost
}
