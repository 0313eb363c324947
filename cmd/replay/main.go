// Command replay re-evaluates audited uncraft attempts against the current
// catalogs and tuning and reports every attempt whose outcome or cost changed.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	persistlog "decraft.ai/internal/persistence/log"
	"decraft.ai/internal/sim/catalogs"
	"decraft.ai/internal/sim/itemstack"
	"decraft.ai/internal/sim/tuning"
	"decraft.ai/internal/sim/uncrafting"
)

func main() {
	logger := log.New(os.Stderr, "[replay] ", log.LstdFlags)
	drift, err := run(os.Args[1:], os.Stdout, logger)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	if drift > 0 {
		os.Exit(1)
	}
}

type mismatch struct {
	ID      string `json:"id"`
	Item    string `json:"item"`
	Damage  int    `json:"damage"`
	Count   int    `json:"count"`
	Outcome string `json:"outcome"`
	Want    string `json:"recorded_outcome"`
	Cost    int    `json:"xp_cost"`
	WantXP  int    `json:"recorded_xp_cost"`
	Reason  string `json:"reason,omitempty"`
}

// run returns the number of drifted entries.
func run(args []string, stdout io.Writer, logger *log.Logger) (int, error) {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	auditDir := fs.String("audit", "./data/audit", "audit dir containing uncraft-*.jsonl.zst")
	configDir := fs.String("configs", "./configs", "config directory")
	tuningPath := fs.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		return 0, fmt.Errorf("load catalogs: %w", err)
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		return 0, fmt.Errorf("load tuning: %w", err)
	}
	eng, err := uncrafting.NewEngine(cats, tune, logger)
	if err != nil {
		return 0, err
	}

	files, err := listAuditFiles(*auditDir)
	if err != nil {
		return 0, fmt.Errorf("list audits: %w", err)
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no audit files found in %s", *auditDir)
	}

	enc := json.NewEncoder(stdout)
	var checked, drift int
	for _, path := range files {
		entries, err := persistlog.ReadAudits(path)
		if err != nil {
			return drift, err
		}
		for _, e := range entries {
			checked++
			if m, ok := check(eng, e); !ok {
				drift++
				if err := enc.Encode(m); err != nil {
					return drift, err
				}
			}
		}
	}
	logger.Printf("replay done: checked=%d drifted=%d files=%d", checked, drift, len(files))
	return drift, nil
}

func check(eng *uncrafting.Engine, e uncrafting.AuditEntry) (mismatch, bool) {
	m := mismatch{ID: e.ID, Item: e.Item, Damage: e.Damage, Count: e.Count, Want: e.Outcome, WantXP: e.ExperienceCost}
	it, ok := eng.Items.Item(e.Item)
	if !ok {
		m.Reason = "item no longer exists"
		return m, false
	}
	res := eng.Manager.Evaluate(player{level: e.Level, creative: e.Creative}, itemstack.New(it, e.Count, e.Damage))
	m.Outcome, m.Cost = res.Outcome.String(), res.ExperienceCost
	return m, m.Outcome == m.Want && m.Cost == m.WantXP
}

func listAuditFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "uncraft-") && strings.HasSuffix(name, ".jsonl.zst") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out, nil
}

type player struct {
	level    int
	creative bool
}

func (p player) ExperienceLevel() int { return p.level }
func (p player) Creative() bool       { return p.creative }
