package indexdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"decraft.ai/internal/sim/catalogs"
	"decraft.ai/internal/sim/tuning"
	"decraft.ai/internal/sim/uncrafting"
)

func TestSQLiteIndex_QueueDropStats(t *testing.T) {
	s := &SQLiteIndex{ch: make(chan uncrafting.AuditEntry, 1)}
	s.ch <- uncrafting.AuditEntry{ID: "a"}

	_ = s.WriteAudit(uncrafting.AuditEntry{ID: "b"})
	_ = s.WriteAudit(uncrafting.AuditEntry{ID: "c"})

	st := s.Stats()
	if st.DropAuditTotal != 2 {
		t.Fatalf("DropAuditTotal=%d want=2", st.DropAuditTotal)
	}
	if st.QueueDepth != 1 || st.QueueCapacity != 1 {
		t.Fatalf("queue stats mismatch: depth=%d cap=%d", st.QueueDepth, st.QueueCapacity)
	}
}

func TestSQLiteIndex_NilAndClosedAreNoops(t *testing.T) {
	var s *SQLiteIndex
	if err := s.WriteAudit(uncrafting.AuditEntry{}); err != nil {
		t.Fatalf("nil WriteAudit: %v", err)
	}
	if st := s.Stats(); st.QueueCapacity != 0 {
		t.Fatalf("unexpected stats on nil index: %+v", st)
	}

	idx, err := OpenSQLite(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := idx.WriteAudit(uncrafting.AuditEntry{ID: "late"}); err != nil {
		t.Fatalf("WriteAudit after close: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestSQLiteIndex_WriteAudit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.db")

	idx, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	entries := []uncrafting.AuditEntry{
		{ID: "1", At: "2026-03-01T10:00:00Z", Actor: "p1", Action: uncrafting.ActionEvaluate, Item: "IRON_SWORD", Count: 1, Outcome: "VALID", ExperienceCost: 1},
		{ID: "2", At: "2026-03-01T10:00:01Z", Actor: "p1", Action: uncrafting.ActionExtract, Item: "IRON_SWORD", Count: 1, Outcome: "VALID", ExperienceCost: 1, Books: []string{"sharpness=3"}},
		{ID: "3", At: "2026-03-01T10:00:02Z", Actor: "p2", Action: uncrafting.ActionEvaluate, Item: "CAKE", Count: 1, Outcome: "NEED_CONTAINER_ITEMS", ExperienceCost: 1},
	}
	for _, e := range entries {
		if err := idx.WriteAudit(e); err != nil {
			t.Fatalf("WriteAudit: %v", err)
		}
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM audits WHERE actor='p1'`).Scan(&n); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows for p1, got %d", n)
	}
	var outcome string
	if err := db.QueryRow(`SELECT outcome FROM audits WHERE id='3'`).Scan(&outcome); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if outcome != "NEED_CONTAINER_ITEMS" {
		t.Fatalf("unexpected outcome %q", outcome)
	}
}

func TestSQLiteIndex_RecentAuditsAndCatalogs(t *testing.T) {
	dir := t.TempDir()
	idx, err := OpenSQLite(filepath.Join(dir, "index.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer idx.Close()

	configDir := filepath.Join("..", "..", "..", "configs")
	cats, err := catalogs.Load(configDir)
	if err != nil {
		t.Fatalf("catalogs.Load: %v", err)
	}
	if err := idx.UpsertCatalogs(configDir, cats, tuning.Defaults()); err != nil {
		t.Fatalf("UpsertCatalogs: %v", err)
	}
	ctx := context.Background()
	d, err := idx.CatalogDigest(ctx, "recipes")
	if err != nil || d != cats.Recipes.Digest {
		t.Fatalf("recipes digest = %q, %v; want %q", d, err, cats.Recipes.Digest)
	}
	if d, err := idx.CatalogDigest(ctx, "tuning"); err != nil || len(d) != 64 {
		t.Fatalf("tuning digest = %q, %v", d, err)
	}

	// Rows are visible once Close has drained the writer.
	path := filepath.Join(dir, "audits.db")
	w, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	_ = w.WriteAudit(uncrafting.AuditEntry{ID: "a", At: "2026-03-01T10:00:00Z", Actor: "p1", Outcome: "VALID"})
	_ = w.WriteAudit(uncrafting.AuditEntry{ID: "b", At: "2026-03-01T11:00:00Z", Actor: "p1", Outcome: "NOT_ENOUGH_XP"})
	_ = w.WriteAudit(uncrafting.AuditEntry{ID: "c", At: "2026-03-01T12:00:00Z", Actor: "p2", Outcome: "VALID"})
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r.Close()
	got, err := r.RecentAudits(ctx, "p1", 10)
	if err != nil {
		t.Fatalf("RecentAudits: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected p1 history: %+v", got)
	}
	all, err := r.RecentAudits(ctx, "", 2)
	if err != nil || len(all) != 2 || all[0].ID != "c" {
		t.Fatalf("unexpected history: %+v %v", all, err)
	}
}
