package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"phpdrift/internal/diag"
	"phpdrift/internal/diagfmt"
	"phpdrift/internal/driver"
	"phpdrift/internal/project"
	"phpdrift/internal/source"
	"phpdrift/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [file|dir]",
	Short: "Check PHP sources against a target version range",
	Long: `Check scans a PHP file or directory tree and reports constructs that are
deprecated within the target version range.

Without an argument the scan starts at the project root, found by walking up
from the current directory to the nearest phpdrift.toml. Flags override the
values from the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("target", "", "target PHP version range, e.g. 8.1, 7.4-8.2 or 8.0-")
	checkCmd.Flags().String("format", "", "output format: pretty|short|json|sarif|checkstyle (default from config or pretty)")
	checkCmd.Flags().Int("jobs", 0, "number of parallel workers, 0 = number of CPUs")
	checkCmd.Flags().String("ext", "", "comma-separated list of file extensions to scan (default php)")
	checkCmd.Flags().String("exclude", "", "comma-separated glob patterns for paths to skip")
	checkCmd.Flags().String("encoding", "", "IANA name of the source encoding (default utf-8)")
	checkCmd.Flags().Bool("cache", false, "reuse findings of unchanged files from previous runs")
	checkCmd.Flags().String("progress", "auto", "per-file progress UI for directory scans (auto|on|off)")
	checkCmd.Flags().Bool("with-notes", false, "include secondary notes in short and json output")
	checkCmd.Flags().Bool("fullpath", false, "print absolute file paths")
}

func runCheck(cmd *cobra.Command, args []string) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	targetFlag, err := cmd.Flags().GetString("target")
	if err != nil {
		return fmt.Errorf("failed to get target flag: %w", err)
	}
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	extFlag, err := cmd.Flags().GetString("ext")
	if err != nil {
		return fmt.Errorf("failed to get ext flag: %w", err)
	}
	excludeFlag, err := cmd.Flags().GetString("exclude")
	if err != nil {
		return fmt.Errorf("failed to get exclude flag: %w", err)
	}
	encodingFlag, err := cmd.Flags().GetString("encoding")
	if err != nil {
		return fmt.Errorf("failed to get encoding flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	progressFlag, err := cmd.Flags().GetString("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullpath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	progress, err := readProgressMode(progressFlag)
	if err != nil {
		return err
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	// Путь сканирования: аргумент, иначе корень проекта, иначе текущая
	// директория. Конфиг ищем вверх от сканируемого места.
	scanPath := ""
	if len(args) == 1 {
		scanPath = args[0]
	}

	var info os.FileInfo
	startDir := ""
	if scanPath != "" {
		info, err = os.Stat(scanPath)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", scanPath, err)
		}
		startDir = scanPath
		if !info.IsDir() {
			startDir = filepath.Dir(scanPath)
		}
	} else {
		startDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	cfgBag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: cfgBag}

	var cfg project.Config
	manifest, found, loadErr := project.Load(startDir)
	if loadErr != nil {
		// Битый конфиг показываем той же PRJ-диагностикой, что и прочие
		// проблемы конфига.
		diag.ReportError(reporter, diag.ProjConfigParseError, source.Span{}, loadErr.Error()).Emit()
		printConfigProblems(cfgBag, useColor)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	if found {
		cfg = manifest.Config
	}
	if scanPath == "" {
		scanPath = "."
		if found {
			scanPath = manifest.Root
		}
		info, err = os.Stat(scanPath)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", scanPath, err)
		}
	}

	// Флаги перекрывают конфиг.
	if targetFlag != "" {
		cfg.Target.PHP = targetFlag
	}
	if extFlag != "" {
		cfg.Scan.Extensions = splitList(extFlag)
	}
	if excludeFlag != "" {
		cfg.Scan.Exclude = splitList(excludeFlag)
	}
	if encodingFlag != "" {
		cfg.Scan.Encoding = encodingFlag
	}
	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}

	settings, ok := cfg.Resolve(reporter)
	if !ok {
		printConfigProblems(cfgBag, useColor)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}

	outFormat, err := diagfmt.ParseFormat(settings.Format)
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeAuto
	if fullpath {
		pathMode = diagfmt.PathModeAbsolute
	}
	prettyOpts := diagfmt.PrettyOpts{
		Color:       useColor,
		PathMode:    pathMode,
		ShowNotes:   true,
		ShowSnippet: true,
	}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		IncludeNotes:     withNotes,
	}

	opts := driver.Options{
		Target:         settings.Target,
		Rules:          settings.Rules,
		MaxDiagnostics: maxDiagnostics,
		Extensions:     settings.Extensions,
		Exclude:        settings.Exclude,
		Encoding:       settings.Encoding,
		EnableTimings:  showTimings,
	}
	if useCache {
		cache, cacheErr := driver.OpenDiskCache("phpdrift")
		if cacheErr != nil {
			return fmt.Errorf("failed to open result cache: %w", cacheErr)
		}
		opts.Cache = cache
	}

	traceCleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	profCleanup, err := setupProfiling(cmd)
	if err != nil {
		traceCleanup()
		return err
	}

	runFile := func() (int, error) {
		result, err := driver.CheckFile(cmd.Context(), scanPath, opts)
		if err != nil {
			return 0, err
		}

		switch outFormat {
		case diagfmt.FormatPretty:
			if !quiet {
				diagfmt.Pretty(os.Stdout, result.Bag, result.FileSet, prettyOpts)
			}
		case diagfmt.FormatShort:
			if !quiet {
				if err := diagfmt.Short(os.Stdout, result.Bag, result.FileSet, withNotes); err != nil {
					return 0, err
				}
			}
		case diagfmt.FormatJSON:
			if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, jsonOpts); err != nil {
				return 0, err
			}
		case diagfmt.FormatSarif:
			if err := diagfmt.Sarif(os.Stdout, result.Bag, result.FileSet, sarifMeta()); err != nil {
				return 0, err
			}
		case diagfmt.FormatCheckstyle:
			if err := diagfmt.Checkstyle(os.Stdout, result.Bag, result.FileSet, "phpdrift"); err != nil {
				return 0, err
			}
		}

		if showTimings && !quiet {
			printTimingReports(os.Stderr, result.Bag)
		}
		if result.Bag.HasErrors() || result.Bag.HasWarnings() {
			return 1, nil
		}
		return 0, nil
	}

	runDir := func() (int, error) {
		var fs *source.FileSet
		var results []driver.CheckDirResult
		var runBag *diag.Bag
		var err error
		// TUI рисует в stdout, поэтому включаем его только для pretty.
		if outFormat == diagfmt.FormatPretty && !quiet && shouldShowProgress(progress) {
			fs, results, runBag, err = runScanWithUI(cmd.Context(), "checking "+scanPath, scanPath, opts, jobs)
		} else {
			fs, results, runBag, err = driver.CheckDir(cmd.Context(), scanPath, opts, jobs)
		}
		if err != nil {
			return 0, err
		}

		exitCode := 0
		if runBag.HasErrors() || runBag.HasWarnings() {
			exitCode = 1
		}
		for _, res := range results {
			if res.Bag.HasErrors() || res.Bag.HasWarnings() {
				exitCode = 1
				break
			}
		}

		switch outFormat {
		case diagfmt.FormatPretty:
			if !quiet {
				// Сначала проблемы самого прогона (обход, тайминги),
				// потом файлы с находками.
				diagfmt.Pretty(os.Stdout, runBag, fs, prettyOpts)
				for _, res := range results {
					if res.Bag.Len() == 0 {
						continue
					}
					header := fmt.Sprintf("== %s ==", displayScanPath(res.Path, fullpath))
					if res.FromCache {
						header += " (cached)"
					}
					fmt.Fprintln(os.Stdout, header)
					diagfmt.Pretty(os.Stdout, res.Bag, fs, prettyOpts)
				}
			}
		case diagfmt.FormatShort:
			if !quiet {
				merged := mergeScanBags(runBag, results)
				if err := diagfmt.Short(os.Stdout, merged, fs, withNotes); err != nil {
					return 0, err
				}
			}
		case diagfmt.FormatJSON:
			payload := make(map[string]diagfmt.DiagnosticsOutput, len(results)+1)
			for _, res := range results {
				payload[displayScanPath(res.Path, fullpath)] = diagfmt.BuildDiagnosticsOutput(res.Bag, fs, jsonOpts)
			}
			if runBag.Len() > 0 {
				payload[displayScanPath(scanPath, fullpath)] = diagfmt.BuildDiagnosticsOutput(runBag, fs, jsonOpts)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(payload); err != nil {
				return 0, err
			}
		case diagfmt.FormatSarif:
			merged := mergeScanBags(runBag, results)
			if err := diagfmt.Sarif(os.Stdout, merged, fs, sarifMeta()); err != nil {
				return 0, err
			}
		case diagfmt.FormatCheckstyle:
			merged := mergeScanBags(runBag, results)
			if err := diagfmt.Checkstyle(os.Stdout, merged, fs, "phpdrift"); err != nil {
				return 0, err
			}
		}

		if showTimings && !quiet {
			printTimingReports(os.Stderr, runBag)
		}
		return exitCode, nil
	}

	var exitCode int
	if info.IsDir() {
		exitCode, err = runDir()
	} else {
		exitCode, err = runFile()
	}

	// Профили и трасса закрываются до выхода при любом исходе.
	profCleanup()
	traceCleanup()

	if err != nil {
		return err
	}
	if exitCode != 0 {
		// Диагностики уже напечатаны, голая ошибка лишь задаёт код выхода.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// printConfigProblems печатает PRJ-диагностики конфига в stderr. У них нет
// позиций в исходниках, поэтому FileSet пустой.
func printConfigProblems(bag *diag.Bag, useColor bool) {
	if bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(os.Stderr, bag, source.NewFileSet(), diagfmt.PrettyOpts{
		Color:     useColor,
		ShowNotes: true,
	})
}

// mergeScanBags собирает диагностики прогона и всех файлов в один Bag для
// форматов с единым документом (short, sarif, checkstyle).
func mergeScanBags(runBag *diag.Bag, results []driver.CheckDirResult) *diag.Bag {
	total := runBag.Len()
	for _, res := range results {
		total += res.Bag.Len()
	}
	merged := diag.NewBag(total)
	merged.Merge(runBag)
	for _, res := range results {
		merged.Merge(res.Bag)
	}
	return merged
}

func displayScanPath(path string, fullpath bool) string {
	if !fullpath {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func sarifMeta() diagfmt.SarifRunMeta {
	return diagfmt.SarifRunMeta{
		ToolName:       "phpdrift",
		ToolVersion:    version.Plain,
		InvocationArgs: os.Args,
	}
}

// splitList разбирает значение вида "php,phtml" в срез без пустых элементов.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
