package diagfmt

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"phpdrift/internal/diag"
	"phpdrift/internal/source"
)

func TestCheckstyleGroupsByFile(t *testing.T) {
	fs := source.NewFileSet()
	aID := fs.AddVirtual("src/a.php", []byte("<?php\nfunction f($a = 1, $b) {}\n"))
	bID := fs.AddVirtual("src/b.php", []byte("<?php\n$x = \"broken\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.CmpOptionalBeforeRequired,
		source.Span{File: aID, Start: 17, End: 19}, "optional before required"))
	bag.Add(diag.New(diag.SevWarning, diag.CmpImplicitNullableOptional,
		source.Span{File: aID, Start: 25, End: 27}, "nullable case"))
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: bID, Start: 11, End: 18}, "unterminated string"))

	var buf bytes.Buffer
	if err := Checkstyle(&buf, bag, fs, "phpdrift"); err != nil {
		t.Fatalf("Checkstyle() error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, xml.Header) {
		t.Errorf("missing XML header:\n%s", out)
	}

	var doc checkstyleDoc
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid checkstyle XML: %v\n%s", err, out)
	}

	if doc.Version != "3.0" {
		t.Errorf("version = %q", doc.Version)
	}
	if len(doc.Files) != 2 {
		t.Fatalf("expected 2 file groups, got %d", len(doc.Files))
	}

	a := doc.Files[0]
	if a.Name != "src/a.php" || len(a.Errors) != 2 {
		t.Fatalf("first group: name=%q errors=%d", a.Name, len(a.Errors))
	}
	if a.Errors[0].Severity != "warning" || a.Errors[0].Source != "phpdrift.CMP3001" {
		t.Errorf("first error: %+v", a.Errors[0])
	}
	if a.Errors[0].Line != 2 || a.Errors[0].Column != 12 {
		t.Errorf("first error position: %d:%d", a.Errors[0].Line, a.Errors[0].Column)
	}
	if a.Errors[1].Source != "phpdrift.CMP3002" {
		t.Errorf("second error source: %q", a.Errors[1].Source)
	}

	b := doc.Files[1]
	if b.Name != "src/b.php" || len(b.Errors) != 1 {
		t.Fatalf("second group: name=%q errors=%d", b.Name, len(b.Errors))
	}
	if b.Errors[0].Severity != "error" {
		t.Errorf("lex error severity: %q", b.Errors[0].Severity)
	}
}

func TestCheckstyleEscapesMessages(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("esc.php", []byte("<?php\n"))

	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevWarning, diag.CmpOptionalBeforeRequired,
		source.Span{File: id, Start: 0, End: 1}, `message with "quotes" & <angles>`))

	var buf bytes.Buffer
	if err := Checkstyle(&buf, bag, fs, "phpdrift"); err != nil {
		t.Fatalf("Checkstyle() error: %v", err)
	}

	var doc checkstyleDoc
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("round-trip failed: %v\n%s", err, buf.String())
	}
	if doc.Files[0].Errors[0].Message != `message with "quotes" & <angles>` {
		t.Errorf("message mangled: %q", doc.Files[0].Errors[0].Message)
	}
}
