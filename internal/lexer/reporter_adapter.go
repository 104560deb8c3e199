package lexer

import (
	"phpdrift/internal/diag"
	"phpdrift/internal/source"
)

// ReporterAdapter переводит тонкие ошибки лексера в diag-диагностики.
// Лексер сам diag не импортирует, маппинг код/severity живёт здесь.
type ReporterAdapter struct {
	R diag.Reporter
}

func (a *ReporterAdapter) Report(kind ErrKind, span source.Span, msg string) {
	if a.R == nil {
		return
	}
	a.R.Report(codeFor(kind), diag.SevError, span, msg, nil)
}

func codeFor(kind ErrKind) diag.Code {
	switch kind {
	case ErrUnterminatedString:
		return diag.LexUnterminatedString
	case ErrUnterminatedBlockComment:
		return diag.LexUnterminatedBlockComment
	case ErrUnterminatedHeredoc:
		return diag.LexUnterminatedHeredoc
	case ErrBadNumber:
		return diag.LexBadNumber
	case ErrTokenTooLong:
		return diag.LexTokenTooLong
	default:
		return diag.LexUnknownChar
	}
}
