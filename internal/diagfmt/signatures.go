package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"phpdrift/internal/sig"
	"phpdrift/internal/source"
)

// ParamOutput описывает один параметр сигнатуры для JSON.
type ParamOutput struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Nullable bool   `json:"nullable,omitempty"`
	ByRef    bool   `json:"by_ref,omitempty"`
	Variadic bool   `json:"variadic,omitempty"`
	Promoted bool   `json:"promoted,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}

// SignatureOutput описывает извлечённую сигнатуру для JSON.
type SignatureOutput struct {
	Kind   string        `json:"kind"`
	Name   string        `json:"name,omitempty"`
	Line   uint32        `json:"line"`
	Col    uint32        `json:"col"`
	Params []ParamOutput `json:"params"`
}

func paramLabel(p sig.Param) string {
	var b strings.Builder
	if p.Promoted {
		b.WriteString("promoted ")
	}
	if p.Type.IsDeclared() {
		b.WriteString(p.Type.Raw)
		b.WriteByte(' ')
	}
	if p.ByRef {
		b.WriteByte('&')
	}
	if p.Variadic {
		b.WriteString("...")
	}
	b.WriteString(p.Name)
	if p.HasDefault {
		b.WriteString(" = …")
	}
	return b.String()
}

// FormatSignaturesPretty выводит сигнатуры в человекочитаемом формате:
// по строке на сигнатуру, параметры в скобках как в исходнике.
func FormatSignaturesPretty(w io.Writer, sigs []sig.Signature, fs *source.FileSet) error {
	for i, sg := range sigs {
		pos, _ := fs.Resolve(sg.Span)

		name := sg.Name
		if name == "" {
			name = "<anonymous>"
		}

		params := make([]string, len(sg.Params))
		for j, p := range sg.Params {
			params[j] = paramLabel(p)
		}

		fmt.Fprintf(w, "%4d: %-8s %s(%s) at %d:%d\n",
			i+1, sg.Kind.String(), name, strings.Join(params, ", "),
			pos.Line, pos.Col)
	}
	return nil
}

// FormatSignaturesJSON выводит сигнатуры в JSON формате.
func FormatSignaturesJSON(w io.Writer, sigs []sig.Signature, fs *source.FileSet) error {
	output := make([]SignatureOutput, 0, len(sigs))

	for _, sg := range sigs {
		pos, _ := fs.Resolve(sg.Span)

		out := SignatureOutput{
			Kind:   sg.Kind.String(),
			Name:   sg.Name,
			Line:   pos.Line,
			Col:    pos.Col,
			Params: make([]ParamOutput, len(sg.Params)),
		}
		for j, p := range sg.Params {
			out.Params[j] = ParamOutput{
				Name:     p.Name,
				Type:     p.Type.Raw,
				Nullable: p.Type.Nullable,
				ByRef:    p.ByRef,
				Variadic: p.Variadic,
				Promoted: p.Promoted,
				Optional: !p.Required(),
			}
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
