// Package fuzztests houses Go fuzz harnesses that exercise the early
// phpdrift pipeline (source -> lexer -> signature extraction). Its goal is
// to smoke test robustness and guard against panics or allocator explosions
// on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet
// и прогоняют их через лексер и извлечение сигнатур.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/sig, internal/diag,
// internal/rules, internal/testkit.

package fuzztests
