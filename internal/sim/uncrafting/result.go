package uncrafting

import (
	"fmt"

	"decraft.ai/internal/sim/uncrafting/handlers"
)

type Outcome int

const (
	Valid Outcome = iota
	NotEnoughItems
	NotUncraftable
	NotEnoughXP
	NeedContainerItems
)

var outcomeNames = [...]string{
	Valid:              "VALID",
	NotEnoughItems:     "NOT_ENOUGH_ITEMS",
	NotUncraftable:     "NOT_UNCRAFTABLE",
	NotEnoughXP:        "NOT_ENOUGH_XP",
	NeedContainerItems: "NEED_CONTAINER_ITEMS",
}

func (o Outcome) String() string {
	if o >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Result is computed per request and owned by the caller.
type Result struct {
	MinStackSizes  []int
	CraftingGrids  []handlers.Grid
	ExperienceCost int
	SelectedGrid   int
	Outcome        Outcome
}

// Grid returns the selected crafting grid, if any.
func (r Result) Grid() (handlers.Grid, bool) {
	if r.SelectedGrid < 0 || r.SelectedGrid >= len(r.CraftingGrids) {
		return handlers.Grid{}, false
	}
	return r.CraftingGrids[r.SelectedGrid], true
}
