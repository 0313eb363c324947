package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ShippedTuning(t *testing.T) {
	tune, err := Load(filepath.Join("..", "..", "..", "configs", "tuning.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tune.Uncrafting.Method != MethodWorn {
		t.Fatalf("expected worn method, got %d", tune.Uncrafting.Method)
	}
	if tune.Uncrafting.MaxUsedLevel != 30 || tune.Uncrafting.StandardLevel != 1 {
		t.Fatalf("unexpected levels: %#v", tune.Uncrafting)
	}
	if !tune.PluginEnabled("masked") || !tune.PluginEnabled("generic") || tune.PluginEnabled("other") {
		t.Fatalf("unexpected plugins: %v", tune.Plugins)
	}
}

func TestLoad_MissingKeysKeepDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(p, []byte("uncrafting:\n  max_used_level: 40\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tune, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Defaults()
	if tune.Uncrafting.StandardLevel != def.Uncrafting.StandardLevel {
		t.Fatalf("expected default standard level, got %d", tune.Uncrafting.StandardLevel)
	}
	if tune.Uncrafting.MaxUsedLevel != 40 {
		t.Fatalf("expected max_used_level=40, got %d", tune.Uncrafting.MaxUsedLevel)
	}
}

func TestLoad_RejectsNegativeLevel(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(p, []byte("uncrafting:\n  standard_level: -1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestUnknownMethodPassesValidation(t *testing.T) {
	tune := Defaults()
	tune.Uncrafting.Method = 7
	if err := tune.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if tune.KnownMethod() {
		t.Fatalf("expected method 7 to be unknown")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
