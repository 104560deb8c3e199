package token

import "strings"

var keywords = map[string]Kind{
	"function":  KwFunction,
	"fn":        KwFn,
	"use":       KwUse,
	"static":    KwStatic,
	"abstract":  KwAbstract,
	"final":     KwFinal,
	"public":    KwPublic,
	"protected": KwProtected,
	"private":   KwPrivate,
	"readonly":  KwReadonly,
	"var":       KwVar,
	"class":     KwClass,
	"trait":     KwTrait,
	"interface": KwInterface,
	"enum":      KwEnum,
	"namespace": KwNamespace,
	"const":     KwConst,
	"new":       KwNew,
	"array":     KwArray,
	"callable":  KwCallable,
	"null":      NullLit,
	"true":      TrueLit,
	"false":     FalseLit,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// PHP ключевые слова регистронезависимые: "NULL", "Null" и "null" — одно и то же.
func LookupKeyword(ident string) (Kind, bool) {
	if k, ok := keywords[ident]; ok {
		return k, ok
	}
	k, ok := keywords[strings.ToLower(ident)]
	return k, ok
}
