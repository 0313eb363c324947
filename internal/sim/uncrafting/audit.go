package uncrafting

import (
	"time"

	"github.com/google/uuid"

	"decraft.ai/internal/sim/itemstack"
)

const (
	ActionEvaluate = "EVALUATE"
	ActionExtract  = "EXTRACT"
)

// AuditEntry records one uncraft attempt. Grid holds item ids of the selected
// grid, with "" for empty cells.
type AuditEntry struct {
	ID             string   `json:"id"`
	At             string   `json:"at"`
	Actor          string   `json:"actor"`
	Level          int      `json:"level"`
	Creative       bool     `json:"creative,omitempty"`
	Action         string   `json:"action"`
	Item           string   `json:"item"`
	Damage         int      `json:"damage"`
	Count          int      `json:"count"`
	Outcome        string   `json:"outcome"`
	ExperienceCost int      `json:"xp_cost"`
	Grid           []string `json:"grid,omitempty"`
	Books          []string `json:"books,omitempty"`
	Reason         string   `json:"reason,omitempty"`
}

func NewAuditEntry(actor string, p Player, action string, s *itemstack.Stack, res Result) AuditEntry {
	e := AuditEntry{
		ID:             uuid.New().String(),
		At:             time.Now().UTC().Format(time.RFC3339Nano),
		Actor:          actor,
		Level:          level(p),
		Creative:       creative(p),
		Action:         action,
		Outcome:        res.Outcome.String(),
		ExperienceCost: res.ExperienceCost,
	}
	if s != nil {
		e.Item, e.Damage, e.Count = s.ID(), s.Damage, s.Count
	}
	if g, ok := res.Grid(); ok {
		e.Grid = make([]string, len(g))
		for i, c := range g {
			if c != nil {
				e.Grid[i] = c.ID()
			}
		}
	}
	return e
}

// WithBooks records the enchanted books produced by an extraction.
func (e AuditEntry) WithBooks(books []*itemstack.Stack) AuditEntry {
	e.Books = make([]string, 0, len(books))
	for _, b := range books {
		e.Books = append(e.Books, b.Enchantments.String())
	}
	return e
}
