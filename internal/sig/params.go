package sig

import (
	"phpdrift/internal/diag"
	"phpdrift/internal/source"
	"phpdrift/internal/token"
)

// parseParams читает список параметров, курсор стоит сразу после открывающей
// скобки open. Возвращает параметры в порядке объявления.
//
// Глубина скобок отслеживается, чтобы запятые внутри default-значений
// (`$a = [1, 2]`, `$b = new Foo(1, 2)`) и внутри атрибутов не рвали список.
func (x *extractor) parseParams(open token.Token) []Param {
	params := make([]Param, 0, 4)
	cur := &paramBuilder{}
	depth := 1

	for {
		t := x.next()
		switch t.Kind {
		case token.EOF:
			x.report(diag.SigUnclosedParamList, open.Span, "unterminated parameter list")
			cur.flush(x, &params)
			return params

		case token.LParen, token.LBracket, token.LBrace, token.AttrStart:
			depth++
			cur.feed(t)

		case token.RParen:
			depth--
			if depth == 0 {
				cur.flush(x, &params)
				return params
			}
			cur.feed(t)

		case token.RBracket, token.RBrace:
			// страхуемся от лишней закрывашки в битом коде: ниже уровня
			// списка не опускаемся
			if depth > 1 {
				depth--
			}
			cur.feed(t)

		case token.Comma:
			if depth == 1 {
				cur.flush(x, &params)
				cur = &paramBuilder{}
			} else {
				cur.feed(t)
			}

		case token.Amp:
			// `&$x` / `&...$x` — передача по ссылке; `A&B $x` — пересечение
			// типов. Различаем по следующему токену.
			if k := x.lx.Peek().Kind; k == token.Variable || k == token.Ellipsis {
				cur.touch(t.Span)
				cur.byref = true
			} else {
				cur.feed(t)
			}

		default:
			cur.feed(t)
		}
	}
}

// paramBuilder накапливает один параметр между запятыми.
type paramBuilder struct {
	started bool
	first   source.Span
	last    source.Span

	attrDepth int // > 0 — внутри #[...], токены атрибута к типу не относятся

	typeStarted bool
	typeFirst   source.Span
	typeLast    source.Span
	nullable    bool

	promoted bool
	byref    bool
	variadic bool

	name     string
	nameSpan source.Span

	inDefault bool
	defToks   []token.Token
}

func (pb *paramBuilder) touch(sp source.Span) {
	if !pb.started {
		pb.started = true
		pb.first = sp
	}
	pb.last = sp
}

func (pb *paramBuilder) feed(t token.Token) {
	pb.touch(t.Span)

	if pb.inDefault {
		pb.defToks = append(pb.defToks, t)
		return
	}

	if pb.attrDepth > 0 {
		switch t.Kind {
		case token.AttrStart, token.LBracket:
			pb.attrDepth++
		case token.RBracket:
			pb.attrDepth--
		}
		return
	}

	switch t.Kind {
	case token.AttrStart:
		pb.attrDepth = 1

	case token.KwPublic, token.KwProtected, token.KwPrivate, token.KwReadonly:
		pb.promoted = true

	case token.Ellipsis:
		pb.variadic = true

	case token.Variable:
		if pb.name == "" {
			pb.name = t.Text
			pb.nameSpan = t.Span
		}

	case token.Assign:
		// '=' до имени переменной — битый параметр; имя уже не появится,
		// остаток уйдёт в defToks и отсеется при flush
		pb.inDefault = true

	case token.Question, token.NullLit:
		if pb.name == "" {
			pb.nullable = true
			pb.feedType(t)
		}

	default:
		if pb.name == "" {
			pb.feedType(t)
		}
	}
}

func (pb *paramBuilder) feedType(t token.Token) {
	if !pb.typeStarted {
		pb.typeStarted = true
		pb.typeFirst = t.Span
	}
	pb.typeLast = t.Span
}

// flush завершает параметр и добавляет его в список.
func (pb *paramBuilder) flush(x *extractor, params *[]Param) {
	if !pb.started {
		return // пустой кусок: trailing comma
	}
	if pb.name == "" {
		x.report(diag.SigMalformedParam, pb.first.Cover(pb.last), "parameter without a variable name")
		return
	}

	p := Param{
		Name:       pb.name,
		Span:       pb.first.Cover(pb.last),
		NameSpan:   pb.nameSpan,
		Variadic:   pb.variadic,
		ByRef:      pb.byref,
		Promoted:   pb.promoted,
		HasDefault: pb.inDefault,
		Default:    pb.defToks,
	}
	if pb.typeStarted {
		p.Type = TypeInfo{
			Raw:      string(x.file.Content[pb.typeFirst.Start:pb.typeLast.End]),
			Nullable: pb.nullable,
		}
	}

	*params = append(*params, p)
}
