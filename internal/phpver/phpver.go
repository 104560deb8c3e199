// Package phpver models PHP version numbers and target version ranges.
//
// A target range declares the PHP versions the scanned codebase must run on.
// Rules gate themselves on the range: a deprecation introduced in version X
// matters as soon as the range reaches X, so the gate looks at the upper
// bound, not the lower one. A codebase targeting "7.2-8.1" still has to care
// about 8.0 deprecations even though it supports 7.2.
package phpver

import (
	"fmt"
	"strconv"
	"strings"
)

// Version — одна версия PHP (major.minor). Патч-уровень для проверок
// совместимости не важен: поведение языка меняется только в minor-релизах.
type Version struct {
	Major uint8
	Minor uint8
}

// Контрольные точки, на которые ссылаются правила.
var (
	V80 = Version{Major: 8, Minor: 0}
	V81 = Version{Major: 8, Minor: 1}
)

// IsZero сообщает, что версия не задана (открытая граница диапазона).
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0
}

// Compare возвращает -1/0/+1 как при сравнении строк версий.
func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		if v.Major < o.Major {
			return -1
		}
		return 1
	}
	if v.Minor != o.Minor {
		if v.Minor < o.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// AtLeast сообщает, что v >= o.
func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Parse разбирает "8", "8.0", "7.4". Пустая строка — ошибка: открытые
// границы выражаются на уровне Range, не Version.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("empty version")
	}

	majorStr, minorStr, hasMinor := strings.Cut(s, ".")
	major, err := strconv.ParseUint(majorStr, 10, 8)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}

	var minor uint64
	if hasMinor {
		minor, err = strconv.ParseUint(minorStr, 10, 8)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
	}

	v := Version{Major: uint8(major), Minor: uint8(minor)}
	if v.IsZero() {
		return Version{}, fmt.Errorf("invalid version %q: zero is reserved", s)
	}
	return v, nil
}

// Range — диапазон целевых версий. Нулевая граница = открытая:
//
//	"8.1"      → ровно 8.1
//	"7.2-8.1"  → от 7.2 до 8.1 включительно
//	"8.0-"     → 8.0 и выше
//	"-7.4"     → всё до 7.4 включительно
type Range struct {
	Min Version
	Max Version
}

// ParseRange разбирает строку диапазона из конфига или флага --target.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty version range")
	}

	minStr, maxStr, isRange := strings.Cut(s, "-")
	if !isRange {
		v, err := Parse(s)
		if err != nil {
			return Range{}, err
		}
		return Range{Min: v, Max: v}, nil
	}

	var r Range
	if strings.TrimSpace(minStr) != "" {
		v, err := Parse(minStr)
		if err != nil {
			return Range{}, err
		}
		r.Min = v
	}
	if strings.TrimSpace(maxStr) != "" {
		v, err := Parse(maxStr)
		if err != nil {
			return Range{}, err
		}
		r.Max = v
	}

	if r.Min.IsZero() && r.Max.IsZero() {
		return Range{}, fmt.Errorf("invalid version range %q", s)
	}
	if !r.Min.IsZero() && !r.Max.IsZero() && r.Min.Compare(r.Max) > 0 {
		return Range{}, fmt.Errorf("invalid version range %q: lower bound above upper bound", s)
	}
	return r, nil
}

// IsZero сообщает, что диапазон не задан вовсе.
func (r Range) IsZero() bool {
	return r.Min.IsZero() && r.Max.IsZero()
}

// AtOrAbove отвечает "дотягивается ли диапазон до версии v". Ложь только
// когда верхняя граница задана и лежит строго ниже v: такому проекту
// деприкации версии v безразличны.
func (r Range) AtOrAbove(v Version) bool {
	if r.Max.IsZero() {
		return true
	}
	return r.Max.AtLeast(v)
}

func (r Range) String() string {
	switch {
	case r.IsZero():
		return "-"
	case r.Min == r.Max:
		return r.Min.String()
	case r.Min.IsZero():
		return "-" + r.Max.String()
	case r.Max.IsZero():
		return r.Min.String() + "-"
	default:
		return r.Min.String() + "-" + r.Max.String()
	}
}
