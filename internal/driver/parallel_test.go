package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"phpdrift/internal/diag"
)

const badProgram = "<?php\nfunction f($a = 1, $b) {}\n"
const cleanProgram = "<?php\nfunction g($a, $b = 2) {}\n"

func TestCheckDirWalksAndSorts(t *testing.T) {
	dir := t.TempDir()
	writePHP(t, dir, "a.php", badProgram)
	writePHP(t, dir, "clean.php", cleanProgram)
	writePHP(t, dir, filepath.Join("nested", "b.php"), badProgram)
	writePHP(t, dir, "notes.txt", "not php")

	fs, results, runBag, err := CheckDir(context.Background(), dir, Options{MaxDiagnostics: 16}, 2)
	if err != nil {
		t.Fatalf("CheckDir error: %v", err)
	}
	if fs == nil {
		t.Fatalf("expected fileset")
	}
	if runBag.Len() != 0 {
		t.Fatalf("unexpected run diagnostics: %+v", runBag.Items())
	}
	wantPaths := []string{
		filepath.Join(dir, "a.php"),
		filepath.Join(dir, "clean.php"),
		filepath.Join(dir, "nested", "b.php"),
	}
	if len(results) != len(wantPaths) {
		t.Fatalf("expected %d results, got %d", len(wantPaths), len(results))
	}
	for i, want := range wantPaths {
		if results[i].Path != want {
			t.Errorf("results[%d].Path = %q, want %q", i, results[i].Path, want)
		}
	}
	if results[0].Bag.Len() != 1 || results[2].Bag.Len() != 1 {
		t.Errorf("expected findings in a.php and nested/b.php")
	}
	if results[1].Bag.Len() != 0 {
		t.Errorf("unexpected findings in clean.php: %+v", results[1].Bag.Items())
	}
	if len(results[0].Sigs) != 1 {
		t.Errorf("expected extracted signature for a.php")
	}
}

func TestCheckDirExcludes(t *testing.T) {
	dir := t.TempDir()
	writePHP(t, dir, "app.php", badProgram)
	writePHP(t, dir, filepath.Join("vendor", "dep.php"), badProgram)
	writePHP(t, dir, "legacy.inc.php", badProgram)

	opts := Options{MaxDiagnostics: 16, Exclude: []string{"vendor", "*.inc.php"}}
	_, results, _, err := CheckDir(context.Background(), dir, opts, 1)
	if err != nil {
		t.Fatalf("CheckDir error: %v", err)
	}
	if len(results) != 1 || results[0].Path != filepath.Join(dir, "app.php") {
		paths := make([]string, len(results))
		for i, r := range results {
			paths[i] = r.Path
		}
		t.Fatalf("expected only app.php, got %v", paths)
	}
}

func TestCheckDirExtensions(t *testing.T) {
	dir := t.TempDir()
	writePHP(t, dir, "tpl.phtml", badProgram)
	writePHP(t, dir, "skip.php", badProgram)
	writePHP(t, dir, "upper.PHTML", cleanProgram)

	// Расширение задаётся и без точки, регистр не важен.
	opts := Options{MaxDiagnostics: 16, Extensions: []string{"phtml"}}
	_, results, _, err := CheckDir(context.Background(), dir, opts, 1)
	if err != nil {
		t.Fatalf("CheckDir error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if filepath.Ext(r.Path) == ".php" {
			t.Errorf("unexpected .php file in results: %s", r.Path)
		}
	}
}

func TestCheckDirLoadFailure(t *testing.T) {
	dir := t.TempDir()
	writePHP(t, dir, "good.php", cleanProgram)
	if err := os.Symlink(filepath.Join(dir, "missing-target"), filepath.Join(dir, "broken.php")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, results, _, err := CheckDir(context.Background(), dir, Options{MaxDiagnostics: 16}, 2)
	if err != nil {
		t.Fatalf("CheckDir error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	broken := results[0] // broken.php < good.php
	if broken.Path != filepath.Join(dir, "broken.php") {
		t.Fatalf("unexpected order: %q", broken.Path)
	}
	if !broken.Bag.HasErrors() {
		t.Fatalf("expected load error diagnostic, got %+v", broken.Bag.Items())
	}
	if got := broken.Bag.Items()[0].Code; got != diag.IOLoadFileError {
		t.Errorf("code = %s, want IO4001", got.ID())
	}
	if results[1].Bag.HasErrors() {
		t.Errorf("good.php should not carry errors")
	}
}

func TestCheckDirMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, results, runBag, err := CheckDir(context.Background(), missing, Options{MaxDiagnostics: 16}, 1)
	if err != nil {
		t.Fatalf("CheckDir error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if !runBag.HasErrors() {
		t.Fatalf("expected walk error in run bag")
	}
	if got := runBag.Items()[0].Code; got != diag.IOWalkError {
		t.Errorf("code = %s, want IO4002", got.ID())
	}
}

func TestCheckDirObserver(t *testing.T) {
	dir := t.TempDir()
	writePHP(t, dir, "a.php", badProgram)
	writePHP(t, dir, "b.php", cleanProgram)

	var mu sync.Mutex
	var events []ScanEvent
	opts := Options{
		MaxDiagnostics: 16,
		Observer: func(ev ScanEvent) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
	}

	// jobs=1 даёт детерминированный порядок событий.
	_, _, _, err := CheckDir(context.Background(), dir, opts, 1)
	if err != nil {
		t.Fatalf("CheckDir error: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d: %+v", len(events), events)
	}
	wantStatus := []ScanStatus{ScanStart, ScanDone, ScanStart, ScanDone}
	for i, ev := range events {
		if ev.Status != wantStatus[i] {
			t.Errorf("events[%d].Status = %v, want %v", i, ev.Status, wantStatus[i])
		}
		if ev.Total != 2 {
			t.Errorf("events[%d].Total = %d, want 2", i, ev.Total)
		}
	}
	if events[1].Findings != 1 {
		t.Errorf("a.php done event Findings = %d, want 1", events[1].Findings)
	}
	if events[3].Findings != 0 {
		t.Errorf("b.php done event Findings = %d, want 0", events[3].Findings)
	}
}

func TestCheckDirCanceled(t *testing.T) {
	dir := t.TempDir()
	writePHP(t, dir, "a.php", cleanProgram)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err := CheckDir(ctx, dir, Options{MaxDiagnostics: 16}, 1)
	if err == nil {
		t.Fatalf("expected context error")
	}
}

func TestCheckDirTimings(t *testing.T) {
	dir := t.TempDir()
	writePHP(t, dir, "a.php", cleanProgram)

	_, _, runBag, err := CheckDir(context.Background(), dir, Options{MaxDiagnostics: 16, EnableTimings: true}, 1)
	if err != nil {
		t.Fatalf("CheckDir error: %v", err)
	}
	var report TimingReport
	found := false
	for _, d := range runBag.Items() {
		if r, ok := DecodeTimings(d); ok {
			report = r
			found = true
		}
	}
	if !found {
		t.Fatalf("no timings in run bag: %+v", runBag.Items())
	}
	if report.Kind != "scan" || report.Path != dir {
		t.Errorf("unexpected report header: kind=%q path=%q", report.Kind, report.Path)
	}
	names := make([]string, len(report.Phases))
	for i, p := range report.Phases {
		names[i] = p.Name
	}
	want := []string{"walk", "load", "check"}
	if len(names) != len(want) {
		t.Fatalf("phases = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("phases[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestExcludedPath(t *testing.T) {
	cases := []struct {
		rel      string
		patterns []string
		want     bool
	}{
		{"vendor/autoload.php", []string{"vendor"}, true},
		{"src/vendor/x.php", []string{"vendor"}, true},
		{"src/app.php", []string{"vendor"}, false},
		{"legacy.inc.php", []string{"*.inc.php"}, true},
		{"src/gen/out.php", []string{"src/gen/*"}, true},
		{"src/app.php", nil, false},
	}
	for _, tc := range cases {
		if got := excludedPath(tc.rel, tc.patterns); got != tc.want {
			t.Errorf("excludedPath(%q, %v) = %v, want %v", tc.rel, tc.patterns, got, tc.want)
		}
	}
}

func TestNormalizeExts(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{nil, []string{".php"}},
		{[]string{"php", ".phtml"}, []string{".php", ".phtml"}},
		{[]string{" ", ""}, []string{".php"}},
	}
	for _, tc := range cases {
		got := normalizeExts(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("normalizeExts(%v) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("normalizeExts(%v)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}
