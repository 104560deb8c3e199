// Package rules contains the PHP version-compatibility checks.
//
// Every rule is a pure pass over one extracted signature: no IO, no shared
// state, safe to run from parallel workers. The driver computes the version
// Gate once per run and hands each rule the signature together with a
// diag.Reporter for findings.
package rules

import (
	"fmt"

	"phpdrift/internal/diag"
	"phpdrift/internal/phpver"
	"phpdrift/internal/sig"
)

// Gate — два версионных среза, на которые смотрят правила. Считается один
// раз на запуск, правила сами диапазон не разбирают.
type Gate struct {
	At80 bool // целевой диапазон дотягивается до PHP 8.0
	At81 bool // целевой диапазон дотягивается до PHP 8.1
}

// GateFor строит Gate по целевому диапазону.
func GateFor(r phpver.Range) Gate {
	return Gate{
		At80: r.AtOrAbove(phpver.V80),
		At81: r.AtOrAbove(phpver.V81),
	}
}

// Rule — одно правило совместимости.
type Rule interface {
	// Name — стабильное имя для конфига и флагов: [rules] enable/disable.
	Name() string
	// Check проверяет одну сигнатуру и шлёт находки в reporter.
	Check(sg *sig.Signature, gate Gate, reporter diag.Reporter)
}

// All возвращает все известные правила в стабильном порядке.
func All() []Rule {
	return []Rule{
		OptionalBeforeRequired{},
	}
}

// Select отбирает правила по спискам из конфига: enable сужает набор до
// перечисленных, disable выключает поимённо. Неизвестное имя — ошибка,
// молча игнорировать опечатку в конфиге нельзя.
func Select(enable, disable []string) ([]Rule, error) {
	known := make(map[string]Rule)
	order := All()
	for _, r := range order {
		known[r.Name()] = r
	}

	for _, name := range enable {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
	}
	for _, name := range disable {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
	}

	enabled := make(map[string]bool)
	if len(enable) > 0 {
		for _, name := range enable {
			enabled[name] = true
		}
	} else {
		for name := range known {
			enabled[name] = true
		}
	}
	for _, name := range disable {
		delete(enabled, name)
	}

	selected := make([]Rule, 0, len(enabled))
	for _, r := range order {
		if enabled[r.Name()] {
			selected = append(selected, r)
		}
	}
	return selected, nil
}
