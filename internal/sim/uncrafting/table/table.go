// Package table is the uncrafting table block: activating it opens the
// uncrafting screen and rewards players who build the full workshop.
package table

import (
	"io"
	"log"
	"strings"
)

type Vec3i struct{ X, Y, Z int }

func (v Vec3i) Add(o Vec3i) Vec3i { return Vec3i{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

var (
	down       = Vec3i{Y: -1}
	horizontal = [...]Vec3i{{Z: -1}, {Z: 1}, {X: 1}, {X: -1}} // north, south, east, west
)

const (
	BlockFurnace       = "FURNACE"
	BlockLitFurnace    = "LIT_FURNACE"
	BlockChest         = "CHEST"
	BlockCraftingTable = "CRAFTING_TABLE"

	// AchievementWorkshop is awarded for a table standing on a fence next to
	// a furnace, a chest and a crafting table.
	AchievementWorkshop = "porte_manteau"
)

// Blocks reads the world around the table. Unknown or empty positions
// report "AIR" or "".
type Blocks interface {
	BlockName(pos Vec3i) string
}

// Screens opens the uncrafting screen for a player.
type Screens interface {
	OpenUncrafting(playerID string, pos Vec3i)
}

type Achievements interface {
	Award(playerID, achievement string)
}

type Table struct {
	blocks  Blocks
	screens Screens
	awards  Achievements
	log     *log.Logger
}

// New returns a table bound to blocks. screens and awards may be nil.
func New(blocks Blocks, screens Screens, awards Achievements, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Table{blocks: blocks, screens: screens, awards: awards, log: logger}
}

// Activate handles a player using the table at pos. It always succeeds and
// reports whether the workshop achievement was awarded.
func (t *Table) Activate(playerID string, pos Vec3i) bool {
	if t.screens != nil {
		t.screens.OpenUncrafting(playerID, pos)
	}
	if !Workshop(t.blocks, pos) {
		return false
	}
	if t.awards != nil {
		t.awards.Award(playerID, AchievementWorkshop)
	}
	t.log.Printf("player %s completed the workshop at %d,%d,%d", playerID, pos.X, pos.Y, pos.Z)
	return true
}

// Workshop reports whether the table at pos stands on a fence and has a
// furnace (lit or not), a chest and a crafting table among its four
// horizontal neighbours.
func Workshop(b Blocks, pos Vec3i) bool {
	if b == nil || !isFence(b.BlockName(pos.Add(down))) {
		return false
	}
	var furnace, chest, bench bool
	for _, d := range horizontal {
		switch b.BlockName(pos.Add(d)) {
		case BlockFurnace, BlockLitFurnace:
			furnace = true
		case BlockChest:
			chest = true
		case BlockCraftingTable:
			bench = true
		}
	}
	return furnace && chest && bench
}

// Any fence variant counts; gates do not.
func isFence(name string) bool {
	return name == "FENCE" || strings.HasSuffix(name, "_FENCE")
}
