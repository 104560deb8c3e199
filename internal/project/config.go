// Package project загружает и валидирует конфигурацию phpdrift.toml.
//
// Конфиг ищется вверх от стартовой директории, как это принято у
// инструментов с файлом проекта в корне репозитория. Все секции
// необязательны: пустой файл эквивалентен отсутствию файла.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"phpdrift/internal/diag"
	"phpdrift/internal/phpver"
	"phpdrift/internal/rules"
	"phpdrift/internal/source"
)

// Config повторяет структуру phpdrift.toml.
type Config struct {
	Target TargetConfig `toml:"target"`
	Scan   ScanConfig   `toml:"scan"`
	Rules  RulesConfig  `toml:"rules"`
	Output OutputConfig `toml:"output"`
}

// TargetConfig — секция [target].
type TargetConfig struct {
	// PHP — целевой диапазон версий: "8.1", "7.4-8.2", "8.0-".
	// Пустая строка означает "без верхней границы".
	PHP string `toml:"php"`
}

// ScanConfig — секция [scan].
type ScanConfig struct {
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
	Encoding   string   `toml:"encoding"`
}

// RulesConfig — секция [rules]. Enable сужает набор до перечисленных
// правил, Disable выключает поимённо.
type RulesConfig struct {
	Enable  []string `toml:"enable"`
	Disable []string `toml:"disable"`
}

// OutputConfig — секция [output].
type OutputConfig struct {
	Format string `toml:"format"`
}

// Manifest — загруженный конфиг вместе с его расположением.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// LoadConfig parses a phpdrift.toml file. Unknown keys are rejected so a
// typo like [rule] does not silently disable the config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown config keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("target") && !meta.IsDefined("target", "php") {
		return Config{}, fmt.Errorf("%s: [target] section without php key", path)
	}
	return cfg, nil
}

// Load ищет phpdrift.toml вверх от startDir и парсит его. Второй результат
// false означает, что файла нет нигде до корня файловой системы.
func Load(startDir string) (*Manifest, bool, error) {
	configPath, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   configPath,
		Root:   filepath.Dir(configPath),
		Config: cfg,
	}, true, nil
}

// Settings — типизированная и проверенная форма конфига. Поля с дефолтами
// уже заполнены, строки диапазона и имён правил разобраны.
type Settings struct {
	Target     phpver.Range
	Rules      []rules.Rule
	Extensions []string
	Exclude    []string
	Encoding   string
	Format     string
}

// Resolve валидирует конфиг и собирает Settings. Каждая проблема уходит в
// reporter отдельной диагностикой (PRJ-коды), возвращается ok=false.
// Частично валидный конфиг даёт частично заполненные Settings.
func (c Config) Resolve(reporter diag.Reporter) (Settings, bool) {
	ok := true
	s := Settings{
		Extensions: c.Scan.Extensions,
		Exclude:    c.Scan.Exclude,
		Encoding:   c.Scan.Encoding,
		Format:     c.Output.Format,
	}

	if c.Target.PHP != "" {
		r, err := phpver.ParseRange(c.Target.PHP)
		if err != nil {
			report(reporter, diag.ProjBadTargetRange,
				fmt.Sprintf("invalid target version range %q: %v", c.Target.PHP, err))
			ok = false
		} else {
			s.Target = r
		}
	}

	selected, err := rules.Select(c.Rules.Enable, c.Rules.Disable)
	if err != nil {
		report(reporter, diag.ProjUnknownRule, err.Error())
		ok = false
	} else {
		s.Rules = selected
	}

	return s, ok
}

func report(r diag.Reporter, code diag.Code, msg string) {
	if r == nil {
		return
	}
	// У конфигурационных проблем нет позиции в PHP-исходниках.
	r.Report(code, diag.SevError, source.Span{}, msg, nil)
}
