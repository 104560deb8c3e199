package project

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"phpdrift/internal/diag"
	"phpdrift/internal/phpver"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFull(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[target]
php = "7.4-8.2"

[scan]
extensions = ["php", "phtml"]
exclude = ["vendor", "*.generated.php"]
encoding = "windows-1251"

[rules]
disable = ["optional-before-required"]

[output]
format = "json"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Target.PHP != "7.4-8.2" {
		t.Errorf("target = %q", cfg.Target.PHP)
	}
	if len(cfg.Scan.Extensions) != 2 || cfg.Scan.Extensions[1] != "phtml" {
		t.Errorf("extensions = %v", cfg.Scan.Extensions)
	}
	if len(cfg.Scan.Exclude) != 2 || cfg.Scan.Encoding != "windows-1251" {
		t.Errorf("scan section = %+v", cfg.Scan)
	}
	if len(cfg.Rules.Disable) != 1 || cfg.Rules.Disable[0] != "optional-before-required" {
		t.Errorf("rules = %+v", cfg.Rules)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("format = %q", cfg.Output.Format)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, Config{}) {
		t.Errorf("empty file should produce zero config: %+v", cfg)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[target]\nphp = \"8.0\"\nphp_version = \"x\"\n")

	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "unknown config keys") {
		t.Fatalf("expected unknown-key error, got %v", err)
	}
}

func TestLoadConfigTargetWithoutPHP(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[target]\n")

	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "[target] section without php key") {
		t.Fatalf("expected missing-key error, got %v", err)
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[target\nphp=")

	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse TOML") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadFindsConfigUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[target]\nphp = \"8.1\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
	if m.Path != filepath.Join(root, ConfigFileName) {
		t.Errorf("path = %q", m.Path)
	}
	if m.Config.Target.PHP != "8.1" {
		t.Errorf("target = %q", m.Config.Target.PHP)
	}
}

func TestLoadWithoutConfig(t *testing.T) {
	// TempDir лежит под системным tmp: подниматься выше него конфиг
	// phpdrift.toml в тестовой среде не должен находиться.
	m, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || m != nil {
		t.Fatalf("expected no manifest, got ok=%v m=%+v", ok, m)
	}
}

func TestResolveDefaults(t *testing.T) {
	bag := diag.NewBag(4)
	s, ok := Config{}.Resolve(diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("empty config must resolve: %+v", bag.Items())
	}
	if !s.Target.IsZero() {
		t.Errorf("default target should be unbounded, got %v", s.Target)
	}
	if len(s.Rules) == 0 {
		t.Errorf("default rule set is empty")
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestResolveTarget(t *testing.T) {
	cfg := Config{Target: TargetConfig{PHP: "7.4-8.2"}}
	bag := diag.NewBag(4)
	s, ok := cfg.Resolve(diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("resolve failed: %+v", bag.Items())
	}
	want, err := phpver.ParseRange("7.4-8.2")
	if err != nil {
		t.Fatalf("parse range: %v", err)
	}
	if s.Target != want {
		t.Errorf("target = %v, want %v", s.Target, want)
	}
}

func TestResolveBadTarget(t *testing.T) {
	cfg := Config{Target: TargetConfig{PHP: "about eight"}}
	bag := diag.NewBag(4)
	_, ok := cfg.Resolve(diag.BagReporter{Bag: bag})
	if ok {
		t.Fatalf("expected resolve failure")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ProjBadTargetRange {
		t.Fatalf("expected PRJ5002, got %+v", bag.Items())
	}
	if bag.Items()[0].Severity != diag.SevError {
		t.Errorf("config problems are errors, got %v", bag.Items()[0].Severity)
	}
}

func TestResolveUnknownRule(t *testing.T) {
	cfg := Config{Rules: RulesConfig{Disable: []string{"no-such-rule"}}}
	bag := diag.NewBag(4)
	_, ok := cfg.Resolve(diag.BagReporter{Bag: bag})
	if ok {
		t.Fatalf("expected resolve failure")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ProjUnknownRule {
		t.Fatalf("expected PRJ5003, got %+v", bag.Items())
	}
	if !strings.Contains(bag.Items()[0].Message, "no-such-rule") {
		t.Errorf("message should name the rule: %q", bag.Items()[0].Message)
	}
}

func TestResolveDisableAll(t *testing.T) {
	cfg := Config{Rules: RulesConfig{Disable: []string{"optional-before-required"}}}
	bag := diag.NewBag(4)
	s, ok := cfg.Resolve(diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("resolve failed: %+v", bag.Items())
	}
	if len(s.Rules) != 0 {
		t.Errorf("expected empty rule set, got %d", len(s.Rules))
	}
}
