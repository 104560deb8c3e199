package diagfmt

import (
	"encoding/xml"
	"io"

	"phpdrift/internal/diag"
	"phpdrift/internal/source"
)

// checkstyle 3.0 — формат, который понимают Jenkins, GitLab и phpcs-экосистема.

type checkstyleDoc struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Version string           `xml:"version,attr"`
	Files   []checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Line     uint32 `xml:"line,attr"`
	Column   uint32 `xml:"column,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

func checkstyleSeverity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

// Checkstyle форматирует диагностики в checkstyle XML. Диагностики
// группируются по файлу в порядке обхода bag (ожидается bag.Sort()).
func Checkstyle(w io.Writer, bag *diag.Bag, fs *source.FileSet, toolName string) error {
	doc := checkstyleDoc{Version: "3.0"}
	fileIdx := make(map[string]int)

	for _, d := range bag.Items() {
		var path string
		var line, col uint32
		if loc, ok := resolveLoc(fs, d.Primary, PathModeRelative); ok {
			path = loc.path
			line = loc.start.Line
			col = loc.start.Col
		}

		idx, seen := fileIdx[path]
		if !seen {
			idx = len(doc.Files)
			fileIdx[path] = idx
			doc.Files = append(doc.Files, checkstyleFile{Name: path})
		}

		doc.Files[idx].Errors = append(doc.Files[idx].Errors, checkstyleError{
			Line:     line,
			Column:   col,
			Severity: checkstyleSeverity(d.Severity),
			Message:  d.Message,
			Source:   toolName + "." + d.Code.ID(),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
