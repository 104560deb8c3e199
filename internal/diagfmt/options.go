package diagfmt

import "fmt"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строк контекста вокруг строки со span
	PathMode  PathMode
	Width     uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes bool
	// ShowSnippet включает строку исходника с подчёркиванием ^~~~.
	ShowSnippet bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InfoURI        string
	InvocationArgs []string
}

// Format enumerates the diagnostic output formats the CLI can emit.
type Format uint8

const (
	FormatPretty Format = iota
	FormatShort
	FormatJSON
	FormatSarif
	FormatCheckstyle
)

func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatShort:
		return "short"
	case FormatJSON:
		return "json"
	case FormatSarif:
		return "sarif"
	case FormatCheckstyle:
		return "checkstyle"
	}
	return "unknown"
}

// ParseFormat разбирает значение флага --format / конфига [output] format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "pretty":
		return FormatPretty, nil
	case "short":
		return FormatShort, nil
	case "json":
		return FormatJSON, nil
	case "sarif":
		return FormatSarif, nil
	case "checkstyle":
		return FormatCheckstyle, nil
	}
	return FormatPretty, fmt.Errorf("unknown output format %q", s)
}
