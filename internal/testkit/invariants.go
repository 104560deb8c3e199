package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"phpdrift/internal/sig"
	"phpdrift/internal/source"
)

// CheckSignatureInvariants runs a minimal set of span invariants on extracted
// signatures:
// 1) every signature span is non-empty and within file content bounds
// 2) every parameter span is non-empty, in bounds and tied to the same file
// 3) parameter name spans sit inside their parameter spans
// 4) parameters appear in source order
func CheckSignatureInvariants(sigs []sig.Signature, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	for i := range sigs {
		sg := &sigs[i]
		if sg.Span.End <= sg.Span.Start {
			return fmt.Errorf("signature %d: empty span %v", i, sg.Span)
		}
		if sg.Span.File != sf.ID {
			return fmt.Errorf("signature %d: span points to different file id: got=%d want=%d", i, sg.Span.File, sf.ID)
		}
		if sg.Span.End > lenContent {
			return fmt.Errorf("signature %d: span end beyond content: %d > %d", i, sg.Span.End, lenContent)
		}

		prevStart := uint32(0)
		for j, p := range sg.Params {
			if p.Span.End <= p.Span.Start {
				return fmt.Errorf("signature %d param %d: empty span %v", i, j, p.Span)
			}
			if p.Span.File != sf.ID {
				return fmt.Errorf("signature %d param %d: span file mismatch: got=%d want=%d", i, j, p.Span.File, sf.ID)
			}
			if p.Span.End > lenContent {
				return fmt.Errorf("signature %d param %d: span end beyond content: %d > %d", i, j, p.Span.End, lenContent)
			}
			// name inside parameter
			if p.Name != "" {
				if p.NameSpan.Start < p.Span.Start || p.NameSpan.End > p.Span.End {
					return fmt.Errorf("signature %d param %d: name span %v is outside param span %v", i, j, p.NameSpan, p.Span)
				}
			}
			// порядок параметров совпадает с порядком в исходнике
			if j > 0 && p.Span.Start < prevStart {
				return fmt.Errorf("signature %d param %d: out of source order: %d < %d", i, j, p.Span.Start, prevStart)
			}
			prevStart = p.Span.Start
		}
	}
	return nil
}
