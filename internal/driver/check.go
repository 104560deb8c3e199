package driver

import (
	"context"
	"fmt"

	"phpdrift/internal/diag"
	"phpdrift/internal/observ"
	"phpdrift/internal/phpver"
	"phpdrift/internal/rules"
	"phpdrift/internal/sig"
	"phpdrift/internal/source"
	"phpdrift/internal/trace"
)

// Options содержит настройки проверки для CheckFile и CheckDir.
type Options struct {
	// Target — целевой диапазон версий PHP. Нулевой диапазон означает
	// "без верхней границы": все деприкации актуальны.
	Target phpver.Range
	// Rules — набор правил. nil означает все известные правила, пустой
	// не-nil срез отключает проверки совсем.
	Rules          []rules.Rule
	MaxDiagnostics int
	// Extensions — расширения файлов для обхода директории ([".php"] по
	// умолчанию). Сравнение без учёта регистра.
	Extensions []string
	// Exclude — glob-шаблоны путей и имён, которые не проверяем.
	Exclude []string
	// Encoding — IANA-имя кодировки исходников, пусто = utf-8.
	Encoding string
	// EnableTimings добавляет info-диагностику с фазовыми замерами.
	EnableTimings bool
	// Cache хранит результаты проверки между запусками, nil = без кеша.
	Cache *DiskCache
	// Observer получает события прогресса из CheckDir, nil = без событий.
	Observer ScanObserver
}

func (o *Options) selectedRules() []rules.Rule {
	if o.Rules != nil {
		return o.Rules
	}
	return rules.All()
}

// CheckResult содержит всё, что даёт проверка одного файла.
type CheckResult struct {
	FileSet *source.FileSet
	File    *source.File
	FileID  source.FileID
	Sigs    []sig.Signature
	Bag     *diag.Bag
}

// CheckFile загружает один файл и прогоняет по нему включённые правила.
// Находки и лексические ошибки попадают в Bag; error возвращается только
// когда файл не удалось прочитать.
func CheckFile(ctx context.Context, path string, opts Options) (*CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	begin := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	end := func(idx int, note string) {
		if timer == nil || idx < 0 {
			return
		}
		timer.End(idx, note)
	}

	tr := trace.FromContext(ctx)
	fileSpan := trace.Begin(tr, trace.ScopeFile, "file:"+path, 0)

	loadIdx := begin("load_file")
	loadSpan := trace.Begin(tr, trace.ScopePhase, "load_file", fileSpan.ID())
	fs := source.NewFileSet()
	if opts.Encoding != "" {
		if err := fs.SetEncoding(opts.Encoding); err != nil {
			loadSpan.End("bad encoding")
			fileSpan.End("bad encoding")
			return nil, err
		}
	}
	fileID, err := fs.Load(path)
	loadSpan.End("")
	end(loadIdx, "")
	if err != nil {
		fileSpan.End("load error")
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)

	checkIdx := begin("check")
	checkSpan := trace.Begin(tr, trace.ScopePhase, "check", fileSpan.ID())
	sigs := checkOne(file, opts.selectedRules(), rules.GateFor(opts.Target), bag)
	checkNote := ""
	if timer != nil || tr.Enabled() {
		checkNote = fmt.Sprintf("sigs=%d diags=%d", len(sigs), bag.Len())
	}
	checkSpan.End(checkNote)
	end(checkIdx, checkNote)
	tracePoints(tr, bag, fileSpan.ID())
	fileSpan.End(findingsDetail(bag))

	if timer != nil {
		report := timer.Report()
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "file",
			Path:    path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	return &CheckResult{
		FileSet: fs,
		File:    file,
		FileID:  fileID,
		Sigs:    sigs,
		Bag:     bag,
	}, nil
}

// checkOne извлекает сигнатуры файла и прогоняет по каждой все правила.
// Диагностики лексера и извлечения уходят в тот же bag, что и находки.
func checkOne(file *source.File, sel []rules.Rule, gate rules.Gate, bag *diag.Bag) []sig.Signature {
	reporter := diag.BagReporter{Bag: bag}
	sigs := sig.Extract(file, reporter)
	for i := range sigs {
		for _, rule := range sel {
			rule.Check(&sigs[i], gate, reporter)
		}
	}
	return sigs
}
