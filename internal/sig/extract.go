package sig

import (
	"phpdrift/internal/diag"
	"phpdrift/internal/lexer"
	"phpdrift/internal/source"
	"phpdrift/internal/token"
)

// Extract сканирует файл и возвращает все сигнатуры в порядке появления.
// Лексические ошибки и битые списки параметров уходят в reporter (может
// быть nil); извлечение не останавливается ни на одной из них.
func Extract(file *source.File, reporter diag.Reporter) []Signature {
	x := &extractor{
		lx:       lexer.New(file, lexer.Options{Reporter: &lexer.ReporterAdapter{R: reporter}}),
		file:     file,
		reporter: reporter,
	}
	return x.run()
}

type extractor struct {
	lx       *lexer.Lexer
	file     *source.File
	reporter diag.Reporter

	prev token.Kind // токен перед текущим, для guard'а member access
	last token.Kind

	braceDepth  int
	classDepths []int // braceDepth каждого открытого class/trait/interface/enum тела
	pendingOpen bool  // видели class-like ключевое слово, ждём его '{'

	sigs []Signature
}

// next отдаёт следующий значимый токен, поддерживая x.prev.
func (x *extractor) next() token.Token {
	x.prev = x.last
	t := x.lx.Next()
	x.last = t.Kind
	return t
}

func (x *extractor) report(code diag.Code, sp source.Span, msg string) {
	if x.reporter != nil {
		x.reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (x *extractor) inClassBody() bool {
	return len(x.classDepths) > 0
}

func (x *extractor) run() []Signature {
	for {
		t := x.next()
		switch t.Kind {
		case token.EOF:
			return x.sigs

		case token.LBrace:
			x.braceDepth++
			if x.pendingOpen {
				x.classDepths = append(x.classDepths, x.braceDepth)
				x.pendingOpen = false
			}

		case token.RBrace:
			if n := len(x.classDepths); n > 0 && x.classDepths[n-1] == x.braceDepth {
				x.classDepths = x.classDepths[:n-1]
			}
			x.braceDepth--

		case token.KwClass, token.KwTrait, token.KwInterface, token.KwEnum:
			// `Foo::class` — константа имени класса, а не объявление
			if x.prev != token.ColonColon {
				x.pendingOpen = true
			}

		case token.KwFunction:
			// `$obj->function(...)`, `Foo::function(...)` — вызов метода
			// с именем function, декларацией не является
			if x.prev.OpensMemberAccess() {
				break
			}
			x.scanFunction(t)

		case token.KwFn:
			if x.prev.OpensMemberAccess() {
				break
			}
			x.scanArrowFn(t)
		}
	}
}

// scanFunction разбирает `function [&] [имя] ( ... )`. Если после имени нет
// открывающей скобки, это не декларация (например `const FUNCTION = 1`) —
// выходим, ничего не записав.
func (x *extractor) scanFunction(funcTok token.Token) {
	sg := Signature{Kind: KindClosure, Span: funcTok.Span}

	t := x.next()
	if t.Kind == token.Amp { // возврат по ссылке: function &f()
		t = x.next()
	}

	switch {
	case t.Kind == token.LParen:
		// анонимная функция; capture-список `use (...)` подписью
		// не является и в параметры не попадает

	case t.IsIdent() || t.IsKeyword() || t.Kind == token.NullLit || t.Kind == token.TrueLit || t.Kind == token.FalseLit:
		// методы могут называться полу-зарезервированными словами:
		// public function array() / function list() и т.д.
		sg.Name = t.Text
		sg.Span = t.Span
		if x.inClassBody() {
			sg.Kind = KindMethod
		} else {
			sg.Kind = KindFunction
		}
		t = x.next()
		if t.Kind != token.LParen {
			return
		}

	default:
		return
	}

	sg.Params = x.parseParams(t)
	x.sigs = append(x.sigs, sg)
}

// scanArrowFn разбирает `fn [&] ( ... )`. Стрелочные функции всегда
// анонимны, а захват переменных у них неявный.
func (x *extractor) scanArrowFn(fnTok token.Token) {
	t := x.next()
	if t.Kind == token.Amp {
		t = x.next()
	}
	if t.Kind != token.LParen {
		return
	}

	sg := Signature{Kind: KindArrowFn, Span: fnTok.Span}
	sg.Params = x.parseParams(t)
	x.sigs = append(x.sigs, sg)
}
