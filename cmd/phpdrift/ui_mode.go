package main

import (
	"fmt"
	"os"
)

// progressMode определяет, когда команда check рисует прогресс-интерфейс.
type progressMode int

const (
	progressAuto progressMode = iota
	progressOn
	progressOff
)

func readProgressMode(value string) (progressMode, error) {
	switch value {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressOn, nil
	case "off":
		return progressOff, nil
	default:
		return progressAuto, fmt.Errorf("invalid --progress value %q (expected auto|on|off)", value)
	}
}

// shouldShowProgress: явный on включает всегда, auto только на терминале.
func shouldShowProgress(mode progressMode) bool {
	switch mode {
	case progressOn:
		return true
	case progressOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
