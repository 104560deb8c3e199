package lexer

import (
	"phpdrift/internal/source"
)

// ErrKind идентифицирует класс лексической ошибки. Коды диагностик живут в
// diag; маппинг делает ReporterAdapter.
type ErrKind uint8

const (
	ErrUnknownChar ErrKind = iota
	ErrUnterminatedString
	ErrUnterminatedBlockComment
	ErrUnterminatedHeredoc
	ErrBadNumber
	ErrTokenTooLong
)

// Reporter — тонкий интерфейс, чтобы не тянуть diag сюда.
// Лексер **только вызывает** его с параметрами; форматирует diag внешний слой.
type Reporter interface {
	Report(kind ErrKind, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(kind ErrKind, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
