package driver

import (
	"phpdrift/internal/diag"
	"phpdrift/internal/lexer"
	"phpdrift/internal/source"
	"phpdrift/internal/token"
)

// TokenizeResult содержит токены одного файла для отладочного дампа.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize лексит один файл целиком, включая завершающий EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)

	lx := lexer.New(file, lexer.Options{
		Reporter: &lexer.ReporterAdapter{R: diag.BagReporter{Bag: bag}},
	})

	// Токенизация: собираем все токены до EOF
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
