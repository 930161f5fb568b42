package wipe

import (
	"fmt"
	"strings"
)

// WipeStandard определяет стандарт затирания
type WipeStandard string

const (
	StandardZeros   WipeStandard = "zeros"
	StandardRandom  WipeStandard = "random"
	StandardDOD     WipeStandard = "dod"
	StandardGutmann WipeStandard = "gutmann"
)

// PatternKind определяет тип паттерна прохода
type PatternKind int

const (
	PatternFixed PatternKind = iota
	PatternRandom
)

func (k PatternKind) String() string {
	switch k {
	case PatternFixed:
		return "fixed"
	case PatternRandom:
		return "random"
	default:
		return "unknown"
	}
}

// PassSpec описывает один проход затирания.
// Список проходов строится один раз на операцию и не изменяется.
type PassSpec struct {
	Index   int // 1-based
	Total   int
	Kind    PatternKind
	Pattern []byte // повторяющийся паттерн 1-4 байта, nil для Random
	Label   string
}

// gutmannPatterns содержит фиксированные паттерны проходов 5-31 метода
// Гутмана в каноническом порядке из оригинальной публикации.
// Проходы 1-4 и 32-35 — случайные данные.
var gutmannPatterns = [][]byte{
	{0x55},             // 5
	{0xAA},             // 6
	{0x92, 0x49, 0x24}, // 7
	{0x49, 0x24, 0x92}, // 8
	{0x24, 0x92, 0x49}, // 9
	{0x00},             // 10
	{0x11},             // 11
	{0x22},             // 12
	{0x33},             // 13
	{0x44},             // 14
	{0x55},             // 15
	{0x66},             // 16
	{0x77},             // 17
	{0x88},             // 18
	{0x99},             // 19
	{0xAA},             // 20
	{0xBB},             // 21
	{0xCC},             // 22
	{0xDD},             // 23
	{0xEE},             // 24
	{0xFF},             // 25
	{0x92, 0x49, 0x24}, // 26
	{0x49, 0x24, 0x92}, // 27
	{0x24, 0x92, 0x49}, // 28
	{0x6D, 0xB6, 0xDB}, // 29
	{0xB6, 0xDB, 0x6D}, // 30
	{0xDB, 0x6D, 0xB6}, // 31
}

// SchedulePasses строит упорядоченный список проходов для стандарта.
// Для zeros/random количество проходов задаётся параметром passes (>= 1),
// для dod и gutmann параметр игнорируется. Функция чистая, без I/O.
func SchedulePasses(standard WipeStandard, passes int) ([]PassSpec, error) {
	switch standard {
	case StandardZeros:
		if passes < 1 {
			return nil, fmt.Errorf("стандарт %s: %w (указано %d)", standard, ErrInvalidPassCount, passes)
		}
		specs := make([]PassSpec, passes)
		for i := range specs {
			specs[i] = fixedPass(i+1, passes, []byte{0x00})
		}
		return specs, nil

	case StandardRandom:
		if passes < 1 {
			return nil, fmt.Errorf("стандарт %s: %w (указано %d)", standard, ErrInvalidPassCount, passes)
		}
		specs := make([]PassSpec, passes)
		for i := range specs {
			specs[i] = randomPass(i+1, passes)
		}
		return specs, nil

	case StandardDOD:
		// DoD 5220.22-M: всегда ровно 3 прохода — нули, 0xFF, случайные
		return []PassSpec{
			fixedPass(1, 3, []byte{0x00}),
			fixedPass(2, 3, []byte{0xFF}),
			randomPass(3, 3),
		}, nil

	case StandardGutmann:
		// Метод Гутмана: всегда ровно 35 проходов в фиксированном порядке
		specs := make([]PassSpec, 0, 35)
		for i := 1; i <= 4; i++ {
			specs = append(specs, randomPass(i, 35))
		}
		for i, pattern := range gutmannPatterns {
			specs = append(specs, fixedPass(5+i, 35, pattern))
		}
		for i := 32; i <= 35; i++ {
			specs = append(specs, randomPass(i, 35))
		}
		return specs, nil

	default:
		return nil, fmt.Errorf("неизвестный стандарт затирания: %s", standard)
	}
}

// TotalPasses возвращает количество проходов для стандарта
func TotalPasses(standard WipeStandard, passes int) int {
	switch standard {
	case StandardDOD:
		return 3
	case StandardGutmann:
		return 35
	default:
		return passes
	}
}

// ValidateStandard проверяет корректность стандарта
func ValidateStandard(standard string) (WipeStandard, error) {
	s := WipeStandard(standard)
	switch s {
	case StandardZeros, StandardRandom, StandardDOD, StandardGutmann:
		return s, nil
	default:
		return "", fmt.Errorf("неподдерживаемый стандарт затирания: %s", standard)
	}
}

func fixedPass(index, total int, pattern []byte) PassSpec {
	return PassSpec{
		Index:   index,
		Total:   total,
		Kind:    PatternFixed,
		Pattern: pattern,
		Label:   patternLabel(pattern),
	}
}

func randomPass(index, total int) PassSpec {
	return PassSpec{
		Index: index,
		Total: total,
		Kind:  PatternRandom,
		Label: "случайные данные",
	}
}

func patternLabel(pattern []byte) string {
	if len(pattern) == 1 && pattern[0] == 0x00 {
		return "нули"
	}
	parts := make([]string, len(pattern))
	for i, b := range pattern {
		parts[i] = fmt.Sprintf("0x%02X", b)
	}
	return "паттерн " + strings.Join(parts, " ")
}
