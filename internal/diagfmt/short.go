package diagfmt

import (
	"io"

	"phpdrift/internal/diag"
	"phpdrift/internal/source"
)

// Short печатает однострочный grep-дружелюбный формат:
// <severity> <CODE> <path>:<line>:<col> <message>
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, withNotes bool) error {
	items := bag.Items()
	refs := make([]*diag.Diagnostic, len(items))
	for i := range items {
		refs[i] = &items[i]
	}

	out := diag.FormatShortDiagnostics(refs, fs, withNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
