package driver

import (
	"phpdrift/internal/diag"
	"phpdrift/internal/sig"
	"phpdrift/internal/source"
)

// SignaturesResult содержит извлечённые сигнатуры одного файла для
// отладочного дампа.
type SignaturesResult struct {
	FileSet *source.FileSet
	File    *source.File
	Sigs    []sig.Signature
	Bag     *diag.Bag
}

// ExtractSignatures извлекает сигнатуры файла без прогона правил. Это тот
// же проход, что делает CheckFile перед проверками.
func ExtractSignatures(path string, maxDiagnostics int) (*SignaturesResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	sigs := sig.Extract(file, diag.BagReporter{Bag: bag})

	return &SignaturesResult{
		FileSet: fs,
		File:    file,
		Sigs:    sigs,
		Bag:     bag,
	}, nil
}
