package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"phpdrift/internal/diag"
	"phpdrift/internal/observ"
	"phpdrift/internal/rules"
	"phpdrift/internal/sig"
	"phpdrift/internal/source"
	"phpdrift/internal/trace"
)

// CheckDirResult содержит результат проверки одного файла из директории.
type CheckDirResult struct {
	Path      string        // Путь к файлу, как его нашёл обход
	FileID    source.FileID // ID файла в FileSet, 0 если файл не загрузился
	Sigs      []sig.Signature
	Bag       *diag.Bag // Диагностики файла
	FromCache bool      // Находки восстановлены из кеша без повторного прогона
}

type walkFailure struct {
	Path string
	Err  error
}

// ListFiles returns the sorted list of files CheckDir would visit under dir.
// Callers that render per-file progress use it to know the workload upfront;
// walk errors are ignored here and resurface during the actual scan.
func ListFiles(dir string, exts, exclude []string) []string {
	files, _ := listPHPFiles(dir, normalizeExts(exts), exclude)
	return files
}

// listPHPFiles возвращает отсортированный список проверяемых файлов.
// Ошибки обхода не прерывают сканирование: недоступная директория
// пропускается и запоминается, остальное дерево обходится дальше.
func listPHPFiles(dir string, exts, exclude []string) ([]string, []walkFailure) {
	var files []string
	var fails []walkFailure
	root := filepath.Clean(dir)

	// Коллбэк никогда не возвращает ошибку наружу, только SkipDir,
	// поэтому результат WalkDir можно не проверять.
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fails = append(fails, walkFailure{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if path != root && excludedPath(rel, exclude) {
				return fs.SkipDir
			}
			return nil
		}
		if !matchesExt(path, exts) {
			return nil
		}
		if excludedPath(rel, exclude) {
			return nil
		}
		files = append(files, path)
		return nil
	})

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, fails
}

// matchesExt сравнивает расширение файла без учёта регистра: в PHP-мире
// встречаются и .PHP, и .phtml.
func matchesExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, want := range exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// excludedPath проверяет glob-шаблоны против относительного пути и против
// каждого его сегмента: "vendor" выключает каталог vendor на любом уровне.
func excludedPath(rel string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel = filepath.ToSlash(rel)
	segments := strings.Split(rel, "/")
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		for _, seg := range segments {
			if ok, _ := filepath.Match(pat, seg); ok {
				return true
			}
		}
	}
	return false
}

// normalizeExts приводит список расширений к виду ".php": точка
// добавляется, пустые элементы выбрасываются, пустой список = [".php"].
func normalizeExts(exts []string) []string {
	if len(exts) == 0 {
		return []string{".php"}
	}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return []string{".php"}
	}
	return out
}

// CheckDir проверяет все подходящие файлы директории параллельно.
// Третий результат — run-bag с диагностиками уровня прогона: ошибки
// обхода (IO4002) и, при включённых таймингах, сводка фаз. Ошибки загрузки
// отдельных файлов попадают в их собственные bag'и как IO4001.
func CheckDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []CheckDirResult, *diag.Bag, error) {
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

	runBag := diag.NewBag(opts.MaxDiagnostics)

	tr := trace.FromContext(ctx)
	scanSpan := trace.Begin(tr, trace.ScopeScan, "scan:"+dir, 0)

	// Собираем список файлов
	walkIdx := begin("walk")
	walkSpan := trace.Begin(tr, trace.ScopePhase, "walk", scanSpan.ID())
	files, walkFails := listPHPFiles(dir, normalizeExts(opts.Extensions), opts.Exclude)
	walkSpan.End(fmt.Sprintf("files=%d", len(files)))
	end(walkIdx, fmt.Sprintf("files=%d", len(files)))

	for _, wf := range walkFails {
		runBag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOWalkError,
			Message:  fmt.Sprintf("failed to walk %s: %v", wf.Path, wf.Err),
			Primary:  source.Span{}, // у ошибок обхода нет позиции в исходнике
		})
	}

	fileSet := source.NewFileSetWithBase(dir)
	if opts.Encoding != "" {
		if err := fileSet.SetEncoding(opts.Encoding); err != nil {
			scanSpan.End("bad encoding")
			return fileSet, nil, runBag, err
		}
	}

	if len(files) == 0 {
		appendRunTimings(runBag, timer, dir)
		scanSpan.End("files=0")
		return fileSet, nil, runBag, nil
	}

	// Предзагружаем все файлы: FileSet не рассчитан на конкурентный Add,
	// поэтому вся загрузка происходит до запуска горутин.
	loadIdx := begin("load")
	loadSpan := trace.Begin(tr, trace.ScopePhase, "load", scanSpan.ID())
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			// Сохраняем ошибку загрузки для последующей обработки
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}
	loadSpan.End(fmt.Sprintf("failed=%d", len(loadErrors)))
	end(loadIdx, fmt.Sprintf("failed=%d", len(loadErrors)))

	// Настраиваем параллелизм
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	sel := opts.selectedRules()
	gate := rules.GateFor(opts.Target)
	key := newKeyMaker(opts.Target, sel)

	notify := func(ev ScanEvent) {
		if opts.Observer != nil {
			opts.Observer(ev)
		}
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]CheckDirResult, len(files))

	checkIdx := begin("check")
	checkSpan := trace.Begin(tr, trace.ScopePhase, "check", scanSpan.ID())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				// Проверка отмены
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				started := time.Now()
				notify(ScanEvent{Path: path, Total: len(files), Status: ScanStart})
				fileSpan := trace.Begin(tr, trace.ScopeFile, "file:"+path, checkSpan.ID())

				bag := diag.NewBag(opts.MaxDiagnostics)

				// Проверяем ошибку загрузки
				if loadErr, hadError := loadErrors[path]; hadError {
					bag.Add(diag.Diagnostic{
						Severity: diag.SevError,
						Code:     diag.IOLoadFileError,
						Message:  "failed to load file: " + loadErr.Error(),
						Primary:  source.Span{}, // файла нет, привязывать span не к чему
					})
					results[i] = CheckDirResult{Path: path, Bag: bag}
					fileSpan.End("load error")
					notify(doneEvent(path, len(files), bag, started))
					return nil
				}

				fileID := fileIDs[path]
				file := fileSet.Get(fileID)

				// Кеш: при совпадении ключа находки восстанавливаются без
				// повторного лексинга.
				if opts.Cache != nil {
					if hit, err := opts.Cache.Replay(key(file), fileID, bag); err == nil && hit {
						results[i] = CheckDirResult{Path: path, FileID: fileID, Bag: bag, FromCache: true}
						fileSpan.WithExtra("cached", "true").End(findingsDetail(bag))
						notify(doneEvent(path, len(files), bag, started))
						return nil
					}
				}

				sigs := checkOne(file, sel, gate, bag)
				if opts.Cache != nil {
					// Ошибка записи кеша не должна портить прогон.
					_ = opts.Cache.Record(key(file), bag)
				}

				// Сохраняем результат (мьютекс не нужен — индекс i уникален)
				results[i] = CheckDirResult{Path: path, FileID: fileID, Sigs: sigs, Bag: bag}
				tracePoints(tr, bag, fileSpan.ID())
				fileSpan.End(findingsDetail(bag))
				notify(doneEvent(path, len(files), bag, started))
				return nil
			}
		}(i, path))
	}

	// Ждём завершения всех горутин
	err := g.Wait()
	checkNote := ""
	if timer != nil {
		total := 0
		for i := range results {
			if results[i].Bag != nil {
				total += results[i].Bag.Len()
			}
		}
		checkNote = fmt.Sprintf("diags=%d", total)
	}
	checkSpan.End(checkNote)
	end(checkIdx, checkNote)

	appendRunTimings(runBag, timer, dir)
	scanSpan.End(fmt.Sprintf("files=%d", len(files)))

	if err != nil {
		return fileSet, results, runBag, err
	}
	return fileSet, results, runBag, nil
}

func doneEvent(path string, total int, bag *diag.Bag, started time.Time) ScanEvent {
	errs, warns, _ := bag.Counts()
	return ScanEvent{
		Path:     path,
		Total:    total,
		Status:   ScanDone,
		Findings: errs + warns,
		Elapsed:  time.Since(started),
	}
}

func findingsDetail(bag *diag.Bag) string {
	errs, warns, _ := bag.Counts()
	return fmt.Sprintf("findings=%d", errs+warns)
}

// tracePoints выдаёт по точечному событию на находку при уровне debug.
func tracePoints(tr trace.Tracer, bag *diag.Bag, parent uint64) {
	if !tr.Level().ShouldEmit(trace.ScopeRule) {
		return
	}
	for _, d := range bag.Items() {
		trace.Point(tr, trace.ScopeRule, "finding:"+d.Code.ID(), d.Message, parent)
	}
}

func appendRunTimings(runBag *diag.Bag, timer *observ.Timer, dir string) {
	if timer == nil {
		return
	}
	report := timer.Report()
	appendTimingDiagnostic(runBag, timingPayload{
		Kind:    "scan",
		Path:    dir,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	})
}
