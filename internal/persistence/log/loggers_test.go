package log

import (
	"os"
	"testing"
	"time"

	"decraft.ai/internal/sim/itemstack"
	"decraft.ai/internal/sim/uncrafting"
)

func entry(actor string, outcome uncrafting.Outcome) uncrafting.AuditEntry {
	it := &itemstack.Item{ID: "IRON_SWORD", Kind: "TOOL", MaxDamage: 250}
	return uncrafting.NewAuditEntry(actor, nil, uncrafting.ActionEvaluate, itemstack.New(it, 1, 10),
		uncrafting.Result{ExperienceCost: 1, Outcome: outcome})
}

func TestAuditLogger_RoundTripAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	l := NewAuditLogger(dir)

	if err := l.WriteAudit(entry("p1", uncrafting.Valid)); err != nil {
		t.Fatalf("WriteAudit: %v", err)
	}
	if err := l.WriteAudit(entry("p2", uncrafting.NotEnoughXP)); err != nil {
		t.Fatalf("WriteAudit: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A second process appends a new frame to the same file.
	l = NewAuditLogger(dir)
	if err := l.WriteAudit(entry("p3", uncrafting.NotUncraftable)); err != nil {
		t.Fatalf("WriteAudit: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadAudits(l.Path(time.Now()))
	if err != nil {
		t.Fatalf("ReadAudits: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Actor != "p1" || got[1].Outcome != "NOT_ENOUGH_XP" || got[2].Actor != "p3" {
		t.Fatalf("unexpected entries: %+v", got)
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Fatalf("expected unique entry ids, got %q and %q", got[0].ID, got[1].ID)
	}
	if got[0].Item != "IRON_SWORD" || got[0].Damage != 10 {
		t.Fatalf("unexpected item fields: %+v", got[0])
	}
}

func TestJSONLZstdWriter_RotatesDaily(t *testing.T) {
	dir := t.TempDir()
	w := NewJSONLZstdWriter(dir, "uncraft")
	day1 := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	day2 := day1.Add(2 * time.Minute)

	w.now = func() time.Time { return day1 }
	if err := w.Write(map[string]int{"n": 1}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.now = func() time.Time { return day2 }
	if err := w.Write(map[string]int{"n": 2}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, day := range []time.Time{day1, day2} {
		fi, err := os.Stat(w.Path(day))
		if err != nil {
			t.Fatalf("expected file for %s: %v", day.Format(dayLayout), err)
		}
		if fi.Size() == 0 {
			t.Fatalf("file for %s is empty", day.Format(dayLayout))
		}
	}
}

func TestReadAudits_MissingFile(t *testing.T) {
	if _, err := ReadAudits(t.TempDir() + "/nope.jsonl.zst"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
