package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"phpdrift/internal/lexer"
	"phpdrift/internal/source"
	"phpdrift/internal/token"
)

// testReporter собирает все ошибки, полученные от лексера
type testReporter struct {
	kinds []lexer.ErrKind
	msgs  []string
}

// Report реализует lexer.Reporter
func (r *testReporter) Report(kind lexer.ErrKind, span source.Span, msg string) {
	r.kinds = append(r.kinds, kind)
	r.msgs = append(r.msgs, fmt.Sprintf("%d: %s (%s)", kind, msg, span))
}

func (r *testReporter) HasErrors() bool { return len(r.kinds) > 0 }

func (r *testReporter) ErrorMessages() []string { return r.msgs }

// makeTestLexer создаёт лексер для сырого входа (HTML режим, как с диска)
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.php", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	return lx, reporter
}

// makePHPLexer оборачивает вход в "<?php " и съедает открывающий тег,
// чтобы тесты токенов не думали про HTML режим.
func makePHPLexer(t *testing.T, input string) (*lexer.Lexer, *testReporter) {
	t.Helper()
	lx, reporter := makeTestLexer("<?php " + input)
	open := lx.Next()
	if open.Kind != token.OpenTag {
		t.Fatalf("Expected OpenTag, got %v", open.Kind)
	}
	return lx, reporter
}

// collectAllTokens собирает все токены до EOF
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

// expectTokens проверяет последовательность токенов после "<?php "
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makePHPLexer(t, input)
	tokens := collectAllTokens(lx)

	// убираем EOF из сравнения
	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == token.EOF {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}

	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)",
				i, expected[i], tok.Kind, tok.Text)
		}
	}
}

// expectSingleToken проверяет, что вход создаёт ровно один токен
func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, _ := makePHPLexer(t, input)
	tok := lx.Next()

	if tok.Kind != expectedKind {
		t.Errorf("Expected kind %v, got %v (input %q)", expectedKind, tok.Kind, input)
	}
	if tok.Text != expectedText {
		t.Errorf("Expected text %q, got %q", expectedText, tok.Text)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ====== HTML режим и теги ======

func TestHTMLOnly_NoTokens(t *testing.T) {
	lx, reporter := makeTestLexer("<html><body>hello</body></html>")
	tok := lx.Next()
	if tok.Kind != token.EOF {
		t.Fatalf("Expected EOF for pure HTML, got %v", tok.Kind)
	}
	if reporter.HasErrors() {
		t.Errorf("Expected no errors, got %v", reporter.ErrorMessages())
	}
}

func TestOpenTag_Variants(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{"<?php $x;", token.OpenTag, "<?php"},
		{"<?PHP $x;", token.OpenTag, "<?PHP"},
		{"<?= $x;", token.OpenTagEcho, "<?="},
		{"<? $x;", token.OpenTag, "<?"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != tt.kind {
				t.Errorf("Expected %v, got %v", tt.kind, tok.Kind)
			}
			if tok.Text != tt.text {
				t.Errorf("Expected text %q, got %q", tt.text, tok.Text)
			}
		})
	}
}

func TestOpenTag_PhpPrefixIdent(t *testing.T) {
	// "<?phpinfo()" — это короткий тег и идентификатор phpinfo
	lx, _ := makeTestLexer("<?phpinfo();")
	open := lx.Next()
	if open.Kind != token.OpenTag || open.Text != "<?" {
		t.Fatalf("Expected short OpenTag, got %v %q", open.Kind, open.Text)
	}
	ident := lx.Next()
	if ident.Kind != token.Ident || ident.Text != "phpinfo" {
		t.Fatalf("Expected Ident 'phpinfo', got %v %q", ident.Kind, ident.Text)
	}
}

func TestOpenTag_LeadingHTMLTrivia(t *testing.T) {
	lx, _ := makeTestLexer("<h1>title</h1><?php $x;")
	open := lx.Next()
	if open.Kind != token.OpenTag {
		t.Fatalf("Expected OpenTag, got %v", open.Kind)
	}
	if len(open.Leading) != 1 || open.Leading[0].Kind != token.TriviaInlineHTML {
		t.Fatalf("Expected InlineHTML leading trivia, got %v", open.Leading)
	}
	if open.Leading[0].Text != "<h1>title</h1>" {
		t.Errorf("Expected HTML text preserved, got %q", open.Leading[0].Text)
	}
}

func TestCloseTag_SwitchesToHTML(t *testing.T) {
	lx, _ := makeTestLexer("<?php $x; ?>plain<?php $y;")
	kinds := []token.Kind{}
	for {
		tok := lx.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	expected := []token.Kind{
		token.OpenTag, token.Variable, token.Semicolon, token.CloseTag,
		token.OpenTag, token.Variable, token.Semicolon, token.EOF,
	}
	if len(kinds) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(expected), len(kinds), kinds)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("Token %d: expected %v, got %v", i, expected[i], kinds[i])
		}
	}
}

func TestCloseTag_EndsLineComment(t *testing.T) {
	// "?>" закрывает однострочный комментарий — дальше снова HTML
	lx, _ := makeTestLexer("<?php // note ?>html<?php $x;")
	open := lx.Next()
	if open.Kind != token.OpenTag {
		t.Fatalf("Expected OpenTag, got %v", open.Kind)
	}
	closeTag := lx.Next()
	if closeTag.Kind != token.CloseTag {
		t.Fatalf("Expected CloseTag after comment, got %v %q", closeTag.Kind, closeTag.Text)
	}
	// Leading = [Space, LineComment]
	if len(closeTag.Leading) != 2 || closeTag.Leading[1].Kind != token.TriviaLineComment {
		t.Fatalf("Expected LineComment leading trivia, got %v", closeTag.Leading)
	}
	if closeTag.Leading[1].Text != "// note " {
		t.Errorf("Comment must stop before '?>', got %q", closeTag.Leading[1].Text)
	}
	reopen := lx.Next()
	if reopen.Kind != token.OpenTag {
		t.Fatalf("Expected OpenTag after HTML, got %v", reopen.Kind)
	}
}

// ====== Идентификаторы и переменные ======

func TestIdentifiers_ASCII(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"foo", "foo"},
		{"_bar", "_bar"},
		{"__construct", "__construct"},
		{"x123", "x123"},
		{"camelCase", "camelCase"},
		{"UPPER", "UPPER"},
		{"_", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, token.Ident, tt.text)
		})
	}
}

func TestIdentifiers_HighBytes(t *testing.T) {
	// PHP разрешает байты >= 0x80 в идентификаторах
	tests := []string{
		"переменная",
		"naïve",
		"函数",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.Ident, input)
		})
	}
}

func TestVariables(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"$foo", "$foo"},
		{"$_bar", "$_bar"},
		{"$this", "$this"},
		{"$x123", "$x123"},
		{"$имя", "$имя"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, token.Variable, tt.text)
		})
	}
}

func TestVariableVariable(t *testing.T) {
	expectTokens(t, "$$name", []token.Kind{token.Dollar, token.Variable})
	expectTokens(t, "${'x'}", []token.Kind{token.Dollar, token.LBrace, token.StringLit, token.RBrace})
}

func TestKeywords_CaseInsensitive(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"function", token.KwFunction},
		{"FUNCTION", token.KwFunction},
		{"Function", token.KwFunction},
		{"fn", token.KwFn},
		{"use", token.KwUse},
		{"static", token.KwStatic},
		{"abstract", token.KwAbstract},
		{"final", token.KwFinal},
		{"public", token.KwPublic},
		{"protected", token.KwProtected},
		{"private", token.KwPrivate},
		{"readonly", token.KwReadonly},
		{"var", token.KwVar},
		{"class", token.KwClass},
		{"trait", token.KwTrait},
		{"interface", token.KwInterface},
		{"enum", token.KwEnum},
		{"namespace", token.KwNamespace},
		{"const", token.KwConst},
		{"new", token.KwNew},
		{"array", token.KwArray},
		{"callable", token.KwCallable},
		{"null", token.NullLit},
		{"NULL", token.NullLit},
		{"Null", token.NullLit},
		{"true", token.TrueLit},
		{"TRUE", token.TrueLit},
		{"false", token.FalseLit},
		{"False", token.FalseLit},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, _ := makePHPLexer(t, tt.input)
			tok := lx.Next()
			if tok.Kind != tt.kind {
				t.Errorf("Expected %v, got %v", tt.kind, tok.Kind)
			}
			if tok.Text != tt.input {
				t.Errorf("Text must preserve source case: expected %q, got %q", tt.input, tok.Text)
			}
		})
	}
}

func TestReservedWordsWithoutKind_AreIdents(t *testing.T) {
	tests := []string{"if", "else", "foreach", "instanceof", "echo", "return", "int", "string", "mixed"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.Ident, input)
		})
	}
}

// ====== Числа ======

func TestNumbers_Int(t *testing.T) {
	tests := []string{
		"0", "123", "456789", "1_000", "1_000_000",
		"0x0", "0xDEADBEEF", "0xAB_CD", "0X123",
		"0b1010", "0b1111_0000", "0B1010",
		"0o777", "0O17",
		"0777", "0123_456", // legacy octal — лексится как IntLit
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.IntLit, input)
		})
	}
}

func TestNumbers_Float(t *testing.T) {
	tests := []string{
		"1.0", "3.14", "0.5", "123.456", "1_000.5",
		"1.", ".5", ".123",
		"1e10", "1E10", "1e+10", "1e-10", "1.5e10", "3.14e-2", "1_000e3",
		"1.e3", // PHP: DNUM "1." + экспонента
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.FloatLit, input)
		})
	}
}

func TestNumbers_InvalidExponent(t *testing.T) {
	tests := []string{"1e", "1e+", "1e-"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lx, reporter := makePHPLexer(t, input)
			tok := lx.Next()
			if tok.Kind != token.Invalid && !reporter.HasErrors() {
				t.Errorf("Expected Invalid token or error for %q, got %v", input, tok.Kind)
			}
		})
	}
}

func TestNumbers_ConcatVsFloat(t *testing.T) {
	// "1.foo" в PHP — float "1." и идентификатор
	expectTokens(t, "1.foo", []token.Kind{token.FloatLit, token.Ident})
	// "$a.1" — конкатенация переменной и числа
	expectTokens(t, "$a.1", []token.Kind{token.Variable, token.Dot, token.IntLit})
}

// ====== Строки ======

func TestString_SingleQuoted(t *testing.T) {
	tests := []struct {
		input string
	}{
		{`''`},
		{`'hello'`},
		{`'it\'s'`},
		{`'back\\slash'`},
		{`'no $interp here'`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, token.StringLit, tt.input)
		})
	}
}

func TestString_DoubleQuoted(t *testing.T) {
	tests := []string{
		`""`,
		`"hello"`,
		`"tab\there"`,
		`"quote\"inside"`,
		`"$simple interp"`,
		`"{$complex['key']}"`,
		`"${legacy}"`,
		`"{$obj->prop}"`,
		`"{$m["{nested}"]}"`,
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.StringLit, input)
		})
	}
}

func TestString_MultilineIsLegal(t *testing.T) {
	// в PHP перевод строки внутри строки — норма
	input := "\"line1\nline2\""
	lx, reporter := makePHPLexer(t, input)
	tok := lx.Next()
	if tok.Kind != token.StringLit {
		t.Fatalf("Expected StringLit, got %v", tok.Kind)
	}
	if reporter.HasErrors() {
		t.Errorf("Expected no errors, got %v", reporter.ErrorMessages())
	}
}

func TestString_InterpolationQuoteDoesNotClose(t *testing.T) {
	// кавычка внутри {$...} не закрывает литерал
	input := `"{$arr['key']}" . $x`
	expectTokens(t, input, []token.Kind{token.StringLit, token.Dot, token.Variable})
}

func TestString_Backtick(t *testing.T) {
	expectSingleToken(t, "`ls -la`", token.StringLit, "`ls -la`")
}

func TestString_Unterminated(t *testing.T) {
	tests := []string{`"hello`, `'world`, "`cmd"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lx, reporter := makePHPLexer(t, input)
			tok := lx.Next()
			if tok.Kind != token.Invalid {
				t.Errorf("Expected Invalid for unterminated string, got %v", tok.Kind)
			}
			if !reporter.HasErrors() {
				t.Error("Expected error report for unterminated string")
			}
		})
	}
}

// ====== Heredoc / Nowdoc ======

func TestHeredoc_Basic(t *testing.T) {
	input := "<<<EOT\nhello $world\nEOT;"
	lx, reporter := makePHPLexer(t, input)
	tok := lx.Next()
	if tok.Kind != token.StringLit {
		t.Fatalf("Expected StringLit, got %v (%v)", tok.Kind, reporter.ErrorMessages())
	}
	if tok.Text != "<<<EOT\nhello $world\nEOT" {
		t.Errorf("Unexpected heredoc text %q", tok.Text)
	}
	if next := lx.Next(); next.Kind != token.Semicolon {
		t.Fatalf("Expected Semicolon after heredoc, got %v", next.Kind)
	}
}

func TestHeredoc_QuotedLabels(t *testing.T) {
	tests := []string{
		"<<<\"EOT\"\nbody\nEOT;",
		"<<<'EOT'\nliteral $notinterp\nEOT;",
		"<<< EOT\nspaced label\nEOT;",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lx, reporter := makePHPLexer(t, input)
			tok := lx.Next()
			if tok.Kind != token.StringLit {
				t.Fatalf("Expected StringLit, got %v (%v)", tok.Kind, reporter.ErrorMessages())
			}
		})
	}
}

func TestHeredoc_IndentedCloser(t *testing.T) {
	// гибкий синтаксис PHP 7.3: закрывающая метка с отступом
	input := "<<<EOT\n  line\n    EOT;"
	lx, reporter := makePHPLexer(t, input)
	tok := lx.Next()
	if tok.Kind != token.StringLit {
		t.Fatalf("Expected StringLit, got %v (%v)", tok.Kind, reporter.ErrorMessages())
	}
}

func TestHeredoc_LabelPrefixLineIsBody(t *testing.T) {
	// "EOTx" — не закрывающая метка
	input := "<<<EOT\nEOTx\nEOT;"
	lx, _ := makePHPLexer(t, input)
	tok := lx.Next()
	if tok.Kind != token.StringLit {
		t.Fatalf("Expected StringLit, got %v", tok.Kind)
	}
	if !strings.Contains(tok.Text, "EOTx") {
		t.Errorf("Body line EOTx must be inside the token, got %q", tok.Text)
	}
}

func TestHeredoc_Unterminated(t *testing.T) {
	input := "<<<EOT\nno closer here"
	lx, reporter := makePHPLexer(t, input)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("Expected Invalid for unterminated heredoc, got %v", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Error("Expected error report for unterminated heredoc")
	}
}

// ====== Операторы ======

func TestOperators_Single(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"+", token.Plus},
		{"-", token.Minus},
		{"*", token.Star},
		{"/", token.Slash},
		{"%", token.Percent},
		{"=", token.Assign},
		{"!", token.Bang},
		{"<", token.Lt},
		{">", token.Gt},
		{"&", token.Amp},
		{"|", token.Pipe},
		{"^", token.Caret},
		{"~", token.Tilde},
		{"?", token.Question},
		{":", token.Colon},
		{";", token.Semicolon},
		{",", token.Comma},
		{".", token.Dot},
		{"@", token.At},
		{"(", token.LParen},
		{")", token.RParen},
		{"{", token.LBrace},
		{"}", token.RBrace},
		{"[", token.LBracket},
		{"]", token.RBracket},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestOperators_Backslash(t *testing.T) {
	// namespace-путь: \Foo\Bar
	expectTokens(t, `\Foo\Bar`, []token.Kind{
		token.Backslash, token.Ident, token.Backslash, token.Ident,
	})
}

func TestOperators_Double(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"==", token.EqEq},
		{"!=", token.BangEq},
		{"<>", token.LtGt},
		{"<=", token.LtEq},
		{">=", token.GtEq},
		{"<<", token.Shl},
		{">>", token.Shr},
		{"&&", token.AndAnd},
		{"||", token.OrOr},
		{"++", token.PlusPlus},
		{"--", token.MinusMinus},
		{"**", token.StarStar},
		{"::", token.ColonColon},
		{"->", token.Arrow},
		{"=>", token.FatArrow},
		{"??", token.QuestionQuestion},
		{"+=", token.PlusAssign},
		{"-=", token.MinusAssign},
		{"*=", token.StarAssign},
		{"/=", token.SlashAssign},
		{".=", token.DotAssign},
		{"%=", token.PercentAssign},
		{"&=", token.AmpAssign},
		{"|=", token.PipeAssign},
		{"^=", token.CaretAssign},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestOperators_Triple(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"===", token.EqEqEq},
		{"!==", token.BangEqEq},
		{"<=>", token.Spaceship},
		{"**=", token.StarStarAssign},
		{"<<=", token.ShlAssign},
		{">>=", token.ShrAssign},
		{"??=", token.QuestionQuestionAssign},
		{"?->", token.QuestionArrow},
		{"...", token.Ellipsis},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestOperators_Greedy(t *testing.T) {
	// "===" не должен разбиться на "==" + "="
	expectTokens(t, "===", []token.Kind{token.EqEqEq})
	expectTokens(t, "?->x", []token.Kind{token.QuestionArrow, token.Ident})
	// "??" + "?" — а не "?" + "??"
	expectTokens(t, "???", []token.Kind{token.QuestionQuestion, token.Question})
	expectTokens(t, "...$args", []token.Kind{token.Ellipsis, token.Variable})
}

func TestAttribute_Start(t *testing.T) {
	expectTokens(t, "#[Attr] function", []token.Kind{
		token.AttrStart, token.Ident, token.RBracket, token.KwFunction,
	})
}

// ====== Trivia ======

func TestTrivia_Spaces(t *testing.T) {
	lx, _ := makePHPLexer(t, " \t  foo")
	tok := lx.Next()

	if tok.Kind != token.Ident {
		t.Fatalf("Expected Ident, got %v", tok.Kind)
	}
	if len(tok.Leading) != 1 {
		t.Fatalf("Expected 1 leading trivia, got %d", len(tok.Leading))
	}
	if tok.Leading[0].Kind != token.TriviaSpace {
		t.Errorf("Expected TriviaSpace, got %v", tok.Leading[0].Kind)
	}
}

func TestTrivia_Newlines(t *testing.T) {
	lx, _ := makePHPLexer(t, "\n\n\nfoo")
	tok := lx.Next()

	if tok.Kind != token.Ident {
		t.Fatalf("Expected Ident, got %v", tok.Kind)
	}
	// TriviaSpace от пробела после <?php, затем один коалесцированный Newline
	if len(tok.Leading) != 2 {
		t.Fatalf("Expected 2 leading trivia (coalesced newlines), got %d: %v", len(tok.Leading), tok.Leading)
	}
	if tok.Leading[1].Kind != token.TriviaNewline {
		t.Errorf("Expected TriviaNewline, got %v", tok.Leading[1].Kind)
	}
	if tok.Leading[1].Text != "\n\n\n" {
		t.Errorf("Expected all three newlines in one trivia, got %q", tok.Leading[1].Text)
	}
}

func TestTrivia_LineCommentSlash(t *testing.T) {
	lx, _ := makePHPLexer(t, "// this is a comment\nfoo")
	tok := lx.Next()

	if tok.Kind != token.Ident {
		t.Fatalf("Expected Ident, got %v", tok.Kind)
	}
	// space + comment + newline
	if len(tok.Leading) != 3 {
		t.Fatalf("Expected 3 leading trivia, got %d", len(tok.Leading))
	}
	if tok.Leading[1].Kind != token.TriviaLineComment {
		t.Errorf("Expected TriviaLineComment, got %v", tok.Leading[1].Kind)
	}
	if tok.Leading[2].Kind != token.TriviaNewline {
		t.Errorf("Expected TriviaNewline, got %v", tok.Leading[2].Kind)
	}
}

func TestTrivia_LineCommentHash(t *testing.T) {
	lx, _ := makePHPLexer(t, "# unix style\nfoo")
	tok := lx.Next()

	if tok.Kind != token.Ident {
		t.Fatalf("Expected Ident, got %v", tok.Kind)
	}
	if len(tok.Leading) != 3 {
		t.Fatalf("Expected 3 leading trivia, got %d", len(tok.Leading))
	}
	if tok.Leading[1].Kind != token.TriviaLineComment {
		t.Errorf("Expected TriviaLineComment, got %v", tok.Leading[1].Kind)
	}
	if tok.Leading[1].Text != "# unix style" {
		t.Errorf("Expected full comment text, got %q", tok.Leading[1].Text)
	}
}

func TestTrivia_BlockComment(t *testing.T) {
	lx, _ := makePHPLexer(t, "/* block comment */foo")
	tok := lx.Next()

	if tok.Kind != token.Ident {
		t.Fatalf("Expected Ident, got %v", tok.Kind)
	}
	if len(tok.Leading) != 2 {
		t.Fatalf("Expected 2 leading trivia, got %d", len(tok.Leading))
	}
	if tok.Leading[1].Kind != token.TriviaBlockComment {
		t.Errorf("Expected TriviaBlockComment, got %v", tok.Leading[1].Kind)
	}
}

func TestTrivia_DocBlock(t *testing.T) {
	lx, _ := makePHPLexer(t, "/** @param int $x */foo")
	tok := lx.Next()

	if tok.Kind != token.Ident {
		t.Fatalf("Expected Ident, got %v", tok.Kind)
	}
	if len(tok.Leading) != 2 {
		t.Fatalf("Expected 2 leading trivia, got %d", len(tok.Leading))
	}
	if tok.Leading[1].Kind != token.TriviaDocBlock {
		t.Errorf("Expected TriviaDocBlock, got %v", tok.Leading[1].Kind)
	}
}

func TestTrivia_EmptyBlockCommentIsNotDocBlock(t *testing.T) {
	lx, _ := makePHPLexer(t, "/**/foo")
	tok := lx.Next()
	if len(tok.Leading) != 2 || tok.Leading[1].Kind != token.TriviaBlockComment {
		t.Fatalf("Expected plain BlockComment for '/**/', got %v", tok.Leading)
	}
}

func TestTrivia_BlockCommentNoNesting(t *testing.T) {
	// PHP закрывает блочный комментарий на первом "*/"
	lx, reporter := makePHPLexer(t, "/* outer /* inner */ foo")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "foo" {
		t.Fatalf("Expected Ident 'foo' after comment, got %v %q", tok.Kind, tok.Text)
	}
	if reporter.HasErrors() {
		t.Errorf("Expected no errors, got %v", reporter.ErrorMessages())
	}
}

func TestTrivia_UnterminatedBlockComment(t *testing.T) {
	lx, reporter := makePHPLexer(t, "/* unterminated\nfoo")
	tok := lx.Next()

	if tok.Kind != token.EOF {
		t.Errorf("Expected EOF after unterminated block comment consuming all input, got %v", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Error("Expected error report for unterminated block comment")
	}
}

// ====== Интеграционные тесты ======

func TestLexer_FunctionSignature(t *testing.T) {
	input := "function add(int $a, ?int $b = null) {}"
	expectTokens(t, input, []token.Kind{
		token.KwFunction,
		token.Ident,
		token.LParen,
		token.Ident,
		token.Variable,
		token.Comma,
		token.Question,
		token.Ident,
		token.Variable,
		token.Assign,
		token.NullLit,
		token.RParen,
		token.LBrace,
		token.RBrace,
	})
}

func TestLexer_PromotedConstructor(t *testing.T) {
	input := "function __construct(private readonly string $name = 'x', int $n) {}"
	expectTokens(t, input, []token.Kind{
		token.KwFunction,
		token.Ident,
		token.LParen,
		token.KwPrivate,
		token.KwReadonly,
		token.Ident,
		token.Variable,
		token.Assign,
		token.StringLit,
		token.Comma,
		token.Ident,
		token.Variable,
		token.RParen,
		token.LBrace,
		token.RBrace,
	})
}

func TestLexer_UnionAndIntersectionTypes(t *testing.T) {
	expectTokens(t, "int|null $x", []token.Kind{
		token.Ident, token.Pipe, token.NullLit, token.Variable,
	})
	expectTokens(t, "A&B $y", []token.Kind{
		token.Ident, token.Amp, token.Ident, token.Variable,
	})
}

func TestLexer_MethodCallVsDeclaration(t *testing.T) {
	expectTokens(t, "$obj->function()", []token.Kind{
		token.Variable, token.Arrow, token.KwFunction, token.LParen, token.RParen,
	})
	expectTokens(t, "$obj?->fn()", []token.Kind{
		token.Variable, token.QuestionArrow, token.KwFn, token.LParen, token.RParen,
	})
}

func TestLexer_PeekBehavior(t *testing.T) {
	lx, _ := makePHPLexer(t, "$a $b $c")

	peek1 := lx.Peek()
	if peek1.Kind != token.Variable || peek1.Text != "$a" {
		t.Errorf("First peek: expected Variable '$a', got %v %q", peek1.Kind, peek1.Text)
	}

	peek2 := lx.Peek()
	if peek2.Kind != peek1.Kind || peek2.Text != peek1.Text {
		t.Error("Second peek should return the same token")
	}

	next1 := lx.Next()
	if next1.Kind != peek1.Kind || next1.Text != peek1.Text {
		t.Error("Next should return the peeked token")
	}

	next2 := lx.Next()
	if next2.Text != "$b" {
		t.Errorf("Expected '$b', got %q", next2.Text)
	}
}

func TestLexer_EOF(t *testing.T) {
	lx, _ := makePHPLexer(t, "$x")

	tok1 := lx.Next()
	if tok1.Kind != token.Variable {
		t.Fatalf("Expected Variable, got %v", tok1.Kind)
	}

	tok2 := lx.Next()
	if tok2.Kind != token.EOF {
		t.Fatalf("Expected EOF, got %v", tok2.Kind)
	}

	// Повторные вызовы Next после EOF должны продолжать возвращать EOF
	tok3 := lx.Next()
	if tok3.Kind != token.EOF {
		t.Errorf("Expected EOF again, got %v", tok3.Kind)
	}
}

func TestLexer_EmptyInput(t *testing.T) {
	lx, _ := makeTestLexer("")
	tok := lx.Next()

	if tok.Kind != token.EOF {
		t.Errorf("Expected EOF for empty input, got %v", tok.Kind)
	}
}

func TestLexer_UnknownCharacter(t *testing.T) {
	lx, reporter := makePHPLexer(t, "\x01")
	tok := lx.Next()

	if tok.Kind != token.Invalid {
		t.Errorf("Expected Invalid for unknown char, got %v", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Error("Expected error report for unknown character")
	}
}

// Бенчмарки

func BenchmarkLexer_Signature(b *testing.B) {
	input := "<?php function f(int $a = 0, ?string $b = null, mixed ...$rest) {}"
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("bench.php", []byte(input))
	file := fs.Get(fileID)

	b.ResetTimer()
	for b.Loop() {
		lx := lexer.New(file, lexer.Options{})
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
		}
	}
}

func BenchmarkLexer_LargeFile(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("<?php\n")
	for i := range 100 {
		fmt.Fprintf(&sb, "function handler%d($req, $resp = null) { return $req . $resp; }\n", i)
	}
	input := sb.String()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("bench.php", []byte(input))
	file := fs.Get(fileID)

	b.ResetTimer()
	for b.Loop() {
		lx := lexer.New(file, lexer.Options{})
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
		}
	}
}
