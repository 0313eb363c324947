package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"decraft.ai/internal/persistence/indexdb"
	persistlog "decraft.ai/internal/persistence/log"
	"decraft.ai/internal/sim/catalogs"
	"decraft.ai/internal/sim/itemstack"
	"decraft.ai/internal/sim/tuning"
	"decraft.ai/internal/sim/uncrafting"
)

// envConfig holds the environment defaults for flags.
type envConfig struct {
	ConfigDir string `env:"UNCRAFT_CONFIGS" envDefault:"./configs"`
	DataDir   string `env:"UNCRAFT_DATA" envDefault:"./data"`
	Tuning    string `env:"UNCRAFT_TUNING"`
	DBPath    string `env:"UNCRAFT_DB"`
	Player    string `env:"UNCRAFT_PLAYER" envDefault:"player"`
}

type options struct {
	configDir  string
	dataDir    string
	tuningPath string
	dbPath     string

	player   string
	level    int
	creative bool

	item    string
	damage  int
	count   int
	enchant string
	books   int
	confirm bool
	history int
}

func main() {
	logger := log.New(os.Stderr, "[uncraft] ", log.LstdFlags)
	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		logger.Fatalf("%v", err)
	}
}

func parseOptions(args []string) (options, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return options{}, fmt.Errorf("parse env: %w", err)
	}

	var o options
	fs := flag.NewFlagSet("uncraft", flag.ContinueOnError)
	fs.StringVar(&o.configDir, "configs", ec.ConfigDir, "config directory")
	fs.StringVar(&o.dataDir, "data", ec.DataDir, "runtime data directory for audit logs (empty to disable)")
	fs.StringVar(&o.tuningPath, "tuning", ec.Tuning, "path to tuning.yaml (default: <configs>/tuning.yaml)")
	fs.StringVar(&o.dbPath, "db", ec.DBPath, "sqlite audit index path (empty to disable)")
	fs.StringVar(&o.player, "player", ec.Player, "player id recorded in the audit log")
	fs.IntVar(&o.level, "level", 0, "player experience level")
	fs.BoolVar(&o.creative, "creative", false, "player is in creative mode")
	fs.StringVar(&o.item, "item", "", "item id to uncraft")
	fs.IntVar(&o.damage, "damage", 0, "damage or variant of the item")
	fs.IntVar(&o.count, "count", 1, "stack size")
	fs.StringVar(&o.enchant, "enchant", "", "enchantments as id=level,id=level")
	fs.IntVar(&o.books, "books", 0, "plain books placed in the container slot")
	fs.BoolVar(&o.confirm, "confirm", false, "take the item apart when the attempt is valid")
	fs.IntVar(&o.history, "history", 0, "print the last N audit entries for the player from -db and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.tuningPath == "" {
		o.tuningPath = filepath.Join(o.configDir, "tuning.yaml")
	}
	o.item = strings.ToUpper(strings.TrimSpace(o.item))
	return o, nil
}

type report struct {
	Player         string             `json:"player"`
	Item           string             `json:"item"`
	Damage         int                `json:"damage"`
	Count          int                `json:"count"`
	Outcome        uncrafting.Outcome `json:"outcome"`
	ExperienceCost int                `json:"xp_cost"`
	MinStackSizes  []int              `json:"min_stack_sizes"`
	Grid           []string           `json:"grid,omitempty"`
	Books          []string           `json:"books,omitempty"`
}

func run(args []string, stdout io.Writer, logger *log.Logger) error {
	o, err := parseOptions(args)
	if err != nil {
		return err
	}

	var idx *indexdb.SQLiteIndex
	if o.dbPath != "" {
		if idx, err = indexdb.OpenSQLite(o.dbPath); err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer idx.Close()
	}
	if o.history > 0 {
		if idx == nil {
			return fmt.Errorf("-history needs -db")
		}
		entries, err := idx.RecentAudits(context.Background(), o.player, o.history)
		if err != nil {
			return err
		}
		return writeJSON(stdout, entries)
	}

	cats, err := catalogs.Load(o.configDir)
	if err != nil {
		return fmt.Errorf("load catalogs: %w", err)
	}
	tune, err := tuning.Load(o.tuningPath)
	if err != nil {
		return fmt.Errorf("load tuning: %w", err)
	}
	if !tune.KnownMethod() {
		logger.Printf("unknown uncrafting method %d: every attempt will be refused", tune.Uncrafting.Method)
	}
	eng, err := uncrafting.NewEngine(cats, tune, logger)
	if err != nil {
		return fmt.Errorf("build recipes: %w", err)
	}
	if idx != nil {
		if err := idx.UpsertCatalogs(o.configDir, cats, tune); err != nil {
			logger.Printf("index catalogs: %v", err)
		}
	}

	if o.item == "" {
		return fmt.Errorf("-item is required")
	}
	it, ok := eng.Items.Item(o.item)
	if !ok {
		if s := suggest(o.item, cats.Items.Palette); s != "" {
			return fmt.Errorf("unknown item %q (did you mean %s?)", o.item, s)
		}
		return fmt.Errorf("unknown item %q", o.item)
	}
	stack := itemstack.New(it, o.count, o.damage)
	if stack.Enchantments, err = itemstack.ParseEnchantments(o.enchant); err != nil {
		return err
	}

	p := player{level: o.level, creative: o.creative}
	res := eng.Manager.Evaluate(p, stack)
	rep := report{
		Player:         o.player,
		Item:           stack.ID(),
		Damage:         stack.Damage,
		Count:          stack.Count,
		Outcome:        res.Outcome,
		ExperienceCost: res.ExperienceCost,
		MinStackSizes:  res.MinStackSizes,
	}
	entry := uncrafting.NewAuditEntry(o.player, p, uncrafting.ActionEvaluate, stack, res)
	rep.Grid = entry.Grid

	if o.confirm {
		if res.Outcome != uncrafting.Valid {
			entry.Reason = "refused: " + res.Outcome.String()
		} else {
			var container *itemstack.Stack
			if o.books > 0 {
				book, _ := eng.Items.Item(itemstack.Book)
				container = itemstack.New(book, o.books, 0)
			}
			books := eng.Manager.EnchantmentTransfer(stack, container)
			entry.Action = uncrafting.ActionExtract
			entry = entry.WithBooks(books)
			rep.Books = entry.Books
		}
	}

	if err := audit(o, idx, entry); err != nil {
		logger.Printf("audit: %v", err)
	}
	return writeJSON(stdout, rep)
}

func audit(o options, idx *indexdb.SQLiteIndex, e uncrafting.AuditEntry) error {
	if idx != nil {
		_ = idx.WriteAudit(e)
	}
	if o.dataDir == "" {
		return nil
	}
	al := persistlog.NewAuditLogger(o.dataDir)
	if err := al.WriteAudit(e); err != nil {
		_ = al.Close()
		return err
	}
	return al.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type player struct {
	level    int
	creative bool
}

func (p player) ExperienceLevel() int { return p.level }
func (p player) Creative() bool       { return p.creative }
