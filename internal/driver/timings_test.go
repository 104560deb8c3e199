package driver

import (
	"strings"
	"testing"

	"phpdrift/internal/diag"
	"phpdrift/internal/observ"
	"phpdrift/internal/source"
)

func TestAppendTimingDiagnostic(t *testing.T) {
	bag := diag.NewBag(8)
	appendTimingDiagnostic(bag, timingPayload{
		Kind:    "scan",
		Path:    "/proj",
		TotalMS: 12.5,
		Phases:  []observ.PhaseReport{{Name: "walk", DurationMS: 2.5}, {Name: "check", DurationMS: 10}},
	})

	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.ObsTimings || d.Severity != diag.SevInfo {
		t.Errorf("unexpected code/severity: %+v", d)
	}
	if !strings.Contains(d.Message, "timings (scan)") || !strings.Contains(d.Message, "/proj") {
		t.Errorf("unexpected message: %q", d.Message)
	}

	report, ok := DecodeTimings(d)
	if !ok {
		t.Fatalf("DecodeTimings failed on %+v", d)
	}
	if report.TotalMS != 12.5 || len(report.Phases) != 2 || report.Phases[0].Name != "walk" {
		t.Errorf("decoded report mismatch: %+v", report)
	}
}

func TestAppendTimingOverflowsFullBag(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.CmpOptionalBeforeRequired, Message: "x"})

	// Лимит исчерпан, но тайминги всё равно должны дописаться.
	appendTimingDiagnostic(bag, timingPayload{Kind: "file", TotalMS: 1})
	if bag.Len() != 2 {
		t.Fatalf("expected timings past the limit, got %d diagnostics", bag.Len())
	}
	if bag.Items()[1].Code != diag.ObsTimings {
		t.Errorf("last diagnostic is not timings: %+v", bag.Items()[1])
	}
}

func TestDecodeTimingsRejectsForeignDiagnostics(t *testing.T) {
	if _, ok := DecodeTimings(diag.Diagnostic{Code: diag.CmpOptionalBeforeRequired}); ok {
		t.Errorf("non-timings diagnostic must not decode")
	}
	if _, ok := DecodeTimings(diag.Diagnostic{Code: diag.ObsTimings}); ok {
		t.Errorf("timings without notes must not decode")
	}
	bad := diag.Diagnostic{
		Code:  diag.ObsTimings,
		Notes: []diag.Note{{Span: source.Span{}, Msg: "not json"}},
	}
	if _, ok := DecodeTimings(bad); ok {
		t.Errorf("broken payload must not decode")
	}
}
