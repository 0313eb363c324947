// Package uncrafting decides whether an item can be taken apart on the
// uncrafting table, and into what.
package uncrafting

import (
	"io"
	"log"
	"strconv"

	"decraft.ai/internal/sim/itemstack"
	"decraft.ai/internal/sim/recipes"
	"decraft.ai/internal/sim/tuning"
	"decraft.ai/internal/sim/uncrafting/handlers"
)

type Player interface {
	ExperienceLevel() int
	Creative() bool
}

type Config struct {
	Method        int
	StandardLevel int
	MaxUsedLevel  int
	// ExcludedItems holds "ITEM_ID" or "ITEM_ID,variant" keys.
	ExcludedItems []string
}

func ConfigFromTuning(t tuning.Tuning) Config {
	return Config{
		Method:        t.Uncrafting.Method,
		StandardLevel: t.Uncrafting.StandardLevel,
		MaxUsedLevel:  t.Uncrafting.MaxUsedLevel,
		ExcludedItems: append([]string(nil), t.Uncrafting.ExcludedItems...),
	}
}

type Manager struct {
	cfg      Config
	excluded map[string]bool
	registry *recipes.Registry
	resolver *handlers.Resolver
	book     *itemstack.Item
	log      *log.Logger
}

func New(cfg Config, reg *recipes.Registry, res *handlers.Resolver, items itemstack.Lookup, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if res == nil {
		res = handlers.NewResolver(handlers.Plugins{})
	}
	m := &Manager{
		cfg:      cfg,
		excluded: make(map[string]bool, len(cfg.ExcludedItems)),
		registry: reg,
		resolver: res,
		log:      logger,
	}
	for _, id := range cfg.ExcludedItems {
		m.excluded[id] = true
	}
	if items != nil {
		m.book, _ = items.Item(itemstack.EnchantedBook)
	}
	if m.book == nil {
		m.book = &itemstack.Item{ID: itemstack.EnchantedBook, Kind: "MATERIAL"}
	}
	return m
}

func excludedKey(s *itemstack.Stack) string {
	key := s.ID()
	if s.Damage > 0 {
		key += "," + strconv.Itoa(s.Damage)
	}
	return key
}

func (m *Manager) Excluded(s *itemstack.Stack) bool {
	return s != nil && m.excluded[excludedKey(s)]
}

// firstMatch scans the registry in order and returns the first recipe that
// accept takes and a handler can decode. Matching recipes nobody can decode
// are logged and skipped.
func (m *Manager) firstMatch(accept func(out *itemstack.Stack) bool) (recipes.Recipe, handlers.Handler, bool) {
	for _, r := range m.registry.Recipes() {
		out := r.Output()
		if out == nil || !accept(out) {
			continue
		}
		h, ok := m.resolver.Resolve(r)
		if !ok {
			m.logUnknown(r)
			continue
		}
		return r, h, true
	}
	return nil, nil, false
}

func (m *Manager) logUnknown(r recipes.Recipe) {
	if f, ok := r.(*recipes.Foreign); ok {
		m.log.Printf("unknown recipe type: %T family=%s shape=%s (%s)", r, f.Family, f.Shape, r.ID())
		return
	}
	m.log.Printf("unknown recipe type: %T (%s)", r, r.ID())
}

// MinimumStackSizes returns the output count of the first recipe producing s.
// Only one recipe is ever used, so the result has at most one element.
func (m *Manager) MinimumStackSizes(s *itemstack.Stack) []int {
	if s == nil || m.Excluded(s) {
		return nil
	}
	r, _, ok := m.firstMatch(func(out *itemstack.Stack) bool {
		return itemstack.EqualIgnoreDurability(s, out)
	})
	if !ok {
		return nil
	}
	return []int{r.Output().Count}
}

// MatchingGrids decodes the first recipe producing s whose output fits in the
// stack. A recipe whose decode fails yields no grid.
func (m *Manager) MatchingGrids(s *itemstack.Stack) []handlers.Grid {
	if s == nil || m.Excluded(s) {
		return nil
	}
	r, h, ok := m.firstMatch(func(out *itemstack.Stack) bool {
		return itemstack.EqualIgnoreDurability(s, out) && out.Count <= s.Count
	})
	if !ok {
		return nil
	}
	d := h.Decode(r)
	switch d.Status {
	case handlers.StatusFailed:
		m.log.Printf("recipe %s: %s decode failed: %v", r.ID(), h.Name(), d.Err)
		return nil
	case handlers.StatusPartial:
		m.log.Printf("recipe %s: %s decoded partially: %v", r.ID(), h.Name(), d.Err)
	}
	return []handlers.Grid{d.Grid}
}

// Evaluate classifies an uncraft attempt. Checks run in priority order and
// only the first grid is inspected for container items.
func (m *Manager) Evaluate(p Player, s *itemstack.Stack) Result {
	if s == nil {
		return Result{ExperienceCost: InvalidCost, Outcome: NotUncraftable}
	}
	res := Result{
		MinStackSizes:  m.MinimumStackSizes(s),
		CraftingGrids:  m.MatchingGrids(s),
		ExperienceCost: m.ExperienceCost(s),
	}

	switch {
	case len(res.MinStackSizes) > 0 && s.Count < minOf(res.MinStackSizes):
		res.Outcome = NotEnoughItems
	case len(res.CraftingGrids) == 0, res.ExperienceCost < 0:
		res.Outcome = NotUncraftable
	case !creative(p) && level(p) < res.ExperienceCost:
		res.Outcome = NotEnoughXP
	case hasContainerItems(res.CraftingGrids[res.SelectedGrid]):
		res.Outcome = NeedContainerItems
	default:
		res.Outcome = Valid
	}
	return res
}

func creative(p Player) bool { return p != nil && p.Creative() }

func level(p Player) int {
	if p == nil {
		return 0
	}
	return p.ExperienceLevel()
}

func minOf(v []int) int {
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func hasContainerItems(g handlers.Grid) bool {
	for _, s := range g {
		if s != nil && s.Item.HasContainerItem() {
			return true
		}
	}
	return false
}
