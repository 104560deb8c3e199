// Package sig extracts function-like signatures from a PHP token stream.
//
// The extractor is not a parser: it scans tokens, finds `function` / `fn`
// declarations and reads their parameter lists. Bodies, statements and
// expressions stay uninterpreted. That is enough for parameter-order
// analysis and keeps the package independent from any AST shape.
package sig

import (
	"phpdrift/internal/source"
	"phpdrift/internal/token"
)

// SigKind различает контексты объявления.
type SigKind uint8

const (
	// KindFunction — свободная функция верхнего уровня (или вложенная).
	KindFunction SigKind = iota
	// KindMethod — функция внутри class/trait/interface/enum.
	KindMethod
	// KindClosure — анонимная функция: function (...) use (...) {...}.
	KindClosure
	// KindArrowFn — стрелочная функция: fn (...) => expr.
	KindArrowFn
)

func (k SigKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindClosure:
		return "closure"
	case KindArrowFn:
		return "arrow-fn"
	}
	return "unknown"
}

// TypeInfo — объявленный тип параметра, как он записан в исходнике.
type TypeInfo struct {
	// Raw — текст типа без изменений: "?int", "A|B|null", "(A&B)|null".
	// Пустая строка = тип не объявлен.
	Raw string
	// Nullable — тип явно допускает null: "?"-префикс либо член null
	// в union/DNF форме.
	Nullable bool
}

// IsDeclared сообщает, что у параметра вообще есть тип.
func (t TypeInfo) IsDeclared() bool {
	return t.Raw != ""
}

// Param — один параметр в порядке объявления. Порядок значим: это
// позиционный порядок связывания аргументов.
type Param struct {
	// Name хранит имя вместе с сигилом: "$userId". Так имя попадает
	// в диагностики в том виде, в котором стоит в коде.
	Name     string
	Span     source.Span // весь параметр: от модификаторов до конца default
	NameSpan source.Span // только переменная, якорь для диагностик

	Variadic bool
	ByRef    bool
	// Promoted — constructor property promotion: перед параметром стоит
	// модификатор видимости или readonly.
	Promoted bool

	Type TypeInfo

	HasDefault bool
	// Default — значимые токены выражения по умолчанию (без trivia).
	// Пустой срез при HasDefault=true означает битый исходник; анализ
	// деградирует мягко, паники нет.
	Default []token.Token
}

// Required сообщает, обязан ли вызывающий передать аргумент.
func (p Param) Required() bool {
	return !p.HasDefault && !p.Variadic
}

// Signature — одна извлечённая сигнатура.
type Signature struct {
	// Name пусто для closures и стрелочных функций.
	Name string
	// Span указывает на имя функции, а для анонимных — на ключевое слово.
	Span   source.Span
	Kind   SigKind
	Params []Param
}
