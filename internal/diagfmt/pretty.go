package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"phpdrift/internal/diag"
	"phpdrift/internal/source"
)

// palette держит цветовые функции; при выключенном цвете все они identity.
type palette struct {
	path  func(a ...interface{}) string
	sev   map[diag.Severity]func(a ...interface{}) string
	code  func(a ...interface{}) string
	note  func(a ...interface{}) string
	caret func(a ...interface{}) string
}

func plainSprint(a ...interface{}) string { return fmt.Sprint(a...) }

func newPalette(enabled bool) palette {
	if !enabled {
		identity := map[diag.Severity]func(a ...interface{}) string{
			diag.SevError:   plainSprint,
			diag.SevWarning: plainSprint,
			diag.SevInfo:    plainSprint,
		}
		return palette{
			path:  plainSprint,
			sev:   identity,
			code:  plainSprint,
			note:  plainSprint,
			caret: plainSprint,
		}
	}
	return palette{
		path: color.New(color.Bold).SprintFunc(),
		sev: map[diag.Severity]func(a ...interface{}) string{
			diag.SevError:   color.New(color.FgRed, color.Bold).SprintFunc(),
			diag.SevWarning: color.New(color.FgYellow, color.Bold).SprintFunc(),
			diag.SevInfo:    color.New(color.FgCyan).SprintFunc(),
		},
		code:  color.New(color.FgMagenta).SprintFunc(),
		note:  color.New(color.FgCyan).SprintFunc(),
		caret: color.New(color.FgGreen, color.Bold).SprintFunc(),
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с
// аналогичным форматом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)

	// runewidth считает ANSI-escape байты как видимые, поэтому обрезка
	// ширины работает только в бесцветном режиме
	capWidth := opts.Width
	if opts.Color {
		capWidth = 0
	}

	for _, d := range bag.Items() {
		sevFn, ok := pal.sev[d.Severity]
		if !ok {
			sevFn = plainSprint
		}

		head := fmt.Sprintf("%s %s: %s", sevFn(d.Severity.String()), pal.code(d.Code.ID()), d.Message)
		if loc, ok := resolveLoc(fs, d.Primary, opts.PathMode); ok {
			head = pal.path(fmt.Sprintf("%s:%d:%d:", loc.path, loc.start.Line, loc.start.Col)) + " " + head
		}
		writeCapped(w, head, capWidth)

		if opts.ShowSnippet {
			writeSnippet(w, fs, d.Primary, opts, pal)
		}

		if opts.ShowNotes {
			for _, n := range d.Notes {
				line := "  " + pal.note("note:")
				if loc, ok := resolveLoc(fs, n.Span, opts.PathMode); ok {
					line += fmt.Sprintf(" %s:%d:%d:", loc.path, loc.start.Line, loc.start.Col)
				}
				line += " " + n.Msg
				writeCapped(w, line, capWidth)
				if opts.ShowSnippet {
					writeSnippet(w, fs, n.Span, opts, pal)
				}
			}
		}
	}
}

type resolvedLoc struct {
	path  string
	start source.LineCol
	end   source.LineCol
	file  *source.File
}

// resolveLoc даёт путь и координаты для span. Нулевой span (ошибки I/O без
// привязки) и неизвестный FileID дают ok=false.
func resolveLoc(fs *source.FileSet, sp source.Span, mode PathMode) (loc resolvedLoc, ok bool) {
	if fs == nil || sp == (source.Span{}) {
		return resolvedLoc{}, false
	}
	defer func() {
		if recover() != nil {
			loc, ok = resolvedLoc{}, false
		}
	}()

	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)

	var path string
	switch mode {
	case PathModeAbsolute:
		path = f.FormatPath("absolute", "")
	case PathModeRelative:
		path = f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		path = f.FormatPath("basename", "")
	default:
		path = f.FormatPath("auto", "")
	}

	return resolvedLoc{path: path, start: start, end: end, file: f}, true
}

// writeSnippet печатает строку исходника со span и каретки под ней, плюс
// Context строк вокруг.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, pal palette) {
	loc, ok := resolveLoc(fs, sp, opts.PathMode)
	if !ok {
		return
	}
	f := loc.file

	first := loc.start.Line
	last := first
	if ctx := uint32(max(opts.Context, 0)); ctx > 0 {
		if first > ctx {
			first -= ctx
		} else {
			first = 1
		}
		last += ctx
	}
	lineCount := uint32(len(f.LineIdx)) + 1
	if last > lineCount {
		last = lineCount
	}

	for line := first; line <= last; line++ {
		fmt.Fprintf(w, "%5d | %s\n", line, expandTabs(f.GetLine(line)))
		if line == loc.start.Line {
			writeCaretLine(w, f, loc, sp, pal)
		}
	}
}

// writeCaretLine рисует ^~~~ под участком span в его первой строке.
// Ширина считается через runewidth, чтобы каретки вставали ровно и под
// CJK-идентификаторами, и после табов.
func writeCaretLine(w io.Writer, f *source.File, loc resolvedLoc, sp source.Span, pal palette) {
	text := f.GetLine(loc.start.Line)

	col := int(loc.start.Col) - 1
	if col > len(text) {
		col = len(text)
	}
	prefixWidth := runewidth.StringWidth(expandTabs(text[:col]))

	// хвост span в пределах этой строки
	spanLen := int(sp.End - sp.Start)
	if rest := len(text) - col; spanLen > rest {
		spanLen = rest
	}
	markWidth := 1
	if spanLen > 0 {
		markWidth = runewidth.StringWidth(text[col:min(col+spanLen, len(text))])
		if markWidth < 1 {
			markWidth = 1
		}
	}

	marker := "^"
	if markWidth > 1 {
		marker += strings.Repeat("~", markWidth-1)
	}
	fmt.Fprintf(w, "      | %s%s\n", strings.Repeat(" ", prefixWidth), pal.caret(marker))
}

// expandTabs заменяет табы на 4 пробела, иначе ширина гуттера плывёт.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// writeCapped печатает строку, обрезая её до width колонок (0 — без лимита).
func writeCapped(w io.Writer, line string, width uint8) {
	if width > 0 && runewidth.StringWidth(line) > int(width) {
		line = runewidth.Truncate(line, int(width)-3, "...")
	}
	fmt.Fprintln(w, line)
}
