package rules

import (
	"fmt"

	"phpdrift/internal/diag"
	"phpdrift/internal/sig"
	"phpdrift/internal/source"
	"phpdrift/internal/token"
)

// Tier — порог версии, начиная с которого нарушение становится репортуемым.
type Tier uint8

const (
	// Tier80 — общий случай: deprecated since PHP 8.0.
	Tier80 Tier = iota
	// Tier81 — подслучай с явно nullable типом: мягко deprecated в 8.0,
	// жёстко — начиная с 8.1.
	Tier81
)

func (t Tier) String() string {
	if t == Tier81 {
		return "8.1"
	}
	return "8.0"
}

// Violation — один необязательный параметр, объявленный раньше обязательного.
type Violation struct {
	Offending string // имя необязательного параметра (с сигилом)
	Required  string // имя ближайшего обязательного параметра правее

	Tier Tier

	Anchor         source.Span // имя offending-параметра
	RequiredAnchor source.Span // имя required-параметра, для note
}

// DefaultClass — классификация default-значения параметра.
type DefaultClass struct {
	// ContainsNull — литерал null встречается где-то внутри выражения.
	ContainsNull bool
	// OnlyNullAndTrivia — выражение состоит ровно из литерала null
	// (trivia в поток значимых токенов не попадает).
	OnlyNullAndTrivia bool
}

// ClassifyDefault смотрит на значимые токены default-выражения. Пустой
// срез (битый исходник) даёт {false, false} — мягкая деградация без паник.
func ClassifyDefault(toks []token.Token) DefaultClass {
	if len(toks) == 0 {
		return DefaultClass{}
	}
	cls := DefaultClass{OnlyNullAndTrivia: true}
	for _, t := range toks {
		if t.Kind == token.NullLit {
			cls.ContainsNull = true
		} else {
			cls.OnlyNullAndTrivia = false
		}
	}
	return cls
}

// AnalyzeParamOrder ищет необязательные параметры, объявленные раньше
// обязательных. Один обратный проход: идём от последнего параметра к
// первому и тащим имя ближайшего обязательного справа.
//
// Исключение: параметр с конкретным, не-nullable типом и default ровно
// null — легаси-идиома «типизированный, но допускает null» из времён до
// настоящих nullable-типов; её не репортуем вовсе. Подслучай с явно
// nullable типом и null в default репортуем только когда целевой диапазон
// дотягивается до 8.1, и тогда с Tier81.
func AnalyzeParamOrder(params []sig.Param, at80, at81 bool) []Violation {
	if !at80 {
		return nil // правило целиком инертно ниже 8.0
	}

	var out []Violation
	nearestRequired := -1

	for i := len(params) - 1; i >= 0; i-- {
		p := params[i]

		// вариадики всегда хвостовые, на порядок не влияют и сами
		// нарушением быть не могут
		if p.Variadic {
			continue
		}

		if !p.HasDefault {
			nearestRequired = i
			continue
		}

		// правее нет ни одного обязательного — нарушать нечего
		if nearestRequired < 0 {
			continue
		}

		cls := ClassifyDefault(p.Default)

		if p.Type.IsDeclared() && !p.Type.Nullable && cls.ContainsNull && cls.OnlyNullAndTrivia {
			// исключение; параметр остаётся необязательным и точкой
			// отсчёта для соседей слева не становится
			continue
		}

		tier := Tier80
		if p.Type.Nullable && cls.ContainsNull {
			if !at81 {
				continue // мягкий случай, до 8.1 молчим
			}
			tier = Tier81
		}

		req := params[nearestRequired]
		out = append(out, Violation{
			Offending:      p.Name,
			Required:       req.Name,
			Tier:           tier,
			Anchor:         p.NameSpan,
			RequiredAnchor: req.NameSpan,
		})
	}

	return out
}

const (
	msgTier80 = "Declaring an optional parameter before a required parameter is deprecated since PHP 8.0. " +
		"Parameter %s is optional, while parameter %s is required. " +
		"The %s parameter is implicitly treated as a required parameter."

	msgTier81 = "Declaring an optional parameter with a nullable type before a required parameter is soft deprecated since PHP 8.0 and hard deprecated since PHP 8.1. " +
		"Parameter %s is optional, while parameter %s is required. " +
		"The %s parameter is implicitly treated as a required parameter."
)

// OptionalBeforeRequired — правило поверх AnalyzeParamOrder: превращает
// нарушения в диагностики с кодами CMP3001/CMP3002.
type OptionalBeforeRequired struct{}

func (OptionalBeforeRequired) Name() string { return "optional-before-required" }

func (OptionalBeforeRequired) Check(sg *sig.Signature, gate Gate, reporter diag.Reporter) {
	for _, v := range AnalyzeParamOrder(sg.Params, gate.At80, gate.At81) {
		code := diag.CmpOptionalBeforeRequired
		msg := fmt.Sprintf(msgTier80, v.Offending, v.Required, v.Offending)
		if v.Tier == Tier81 {
			code = diag.CmpImplicitNullableOptional
			msg = fmt.Sprintf(msgTier81, v.Offending, v.Required, v.Offending)
		}

		diag.ReportWarning(reporter, code, v.Anchor, msg).
			WithNote(v.RequiredAnchor, fmt.Sprintf("required parameter %s declared here", v.Required)).
			Emit()
	}
}
