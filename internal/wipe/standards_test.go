package wipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheduleDOD(t *testing.T) {
	// Количество проходов для DoD фиксировано, переданное значение игнорируется
	for _, passes := range []int{0, 1, 10} {
		specs, err := SchedulePasses(StandardDOD, passes)
		require.NoError(t, err)
		require.Len(t, specs, 3)

		require.Equal(t, PatternFixed, specs[0].Kind)
		require.Equal(t, []byte{0x00}, specs[0].Pattern)
		require.Equal(t, PatternFixed, specs[1].Kind)
		require.Equal(t, []byte{0xFF}, specs[1].Pattern)
		require.Equal(t, PatternRandom, specs[2].Kind)

		for i, spec := range specs {
			require.Equal(t, i+1, spec.Index)
			require.Equal(t, 3, spec.Total)
		}
	}
}

func TestScheduleGutmann(t *testing.T) {
	specs, err := SchedulePasses(StandardGutmann, 7)
	require.NoError(t, err)
	require.Len(t, specs, 35)

	// Проходы 1-4 и 32-35 случайные
	for _, idx := range []int{0, 1, 2, 3, 31, 32, 33, 34} {
		require.Equal(t, PatternRandom, specs[idx].Kind, "проход %d", idx+1)
	}

	// Выборочная проверка канонической таблицы
	require.Equal(t, []byte{0x55}, specs[4].Pattern)              // проход 5
	require.Equal(t, []byte{0xAA}, specs[5].Pattern)              // проход 6
	require.Equal(t, []byte{0x92, 0x49, 0x24}, specs[6].Pattern)  // проход 7
	require.Equal(t, []byte{0x00}, specs[9].Pattern)              // проход 10
	require.Equal(t, []byte{0xFF}, specs[24].Pattern)             // проход 25
	require.Equal(t, []byte{0x6D, 0xB6, 0xDB}, specs[28].Pattern) // проход 29
	require.Equal(t, []byte{0xDB, 0x6D, 0xB6}, specs[30].Pattern) // проход 31

	for i, spec := range specs {
		require.Equal(t, i+1, spec.Index)
		require.Equal(t, 35, spec.Total)
	}
}

func TestScheduleSinglePass(t *testing.T) {
	tests := []struct {
		name     string
		standard WipeStandard
		passes   int
		kind     PatternKind
	}{
		{"zeros x3", StandardZeros, 3, PatternFixed},
		{"random x5", StandardRandom, 5, PatternRandom},
		{"zeros x1", StandardZeros, 1, PatternFixed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			specs, err := SchedulePasses(tc.standard, tc.passes)
			require.NoError(t, err)
			require.Len(t, specs, tc.passes)

			for i, spec := range specs {
				require.Equal(t, i+1, spec.Index)
				require.Equal(t, tc.passes, spec.Total)
				require.Equal(t, tc.kind, spec.Kind)
				if tc.standard == StandardZeros {
					require.Equal(t, []byte{0x00}, spec.Pattern)
				}
			}
		})
	}
}

func TestScheduleInvalidPassCount(t *testing.T) {
	for _, standard := range []WipeStandard{StandardZeros, StandardRandom} {
		for _, passes := range []int{0, -1} {
			_, err := SchedulePasses(standard, passes)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidPassCount))
		}
	}
}

func TestScheduleUnknownStandard(t *testing.T) {
	_, err := SchedulePasses(WipeStandard("paranoid"), 1)
	require.Error(t, err)
}

func TestScheduleDeterministic(t *testing.T) {
	// Классификация проходов детерминирована для одинаковых входов
	for _, standard := range []WipeStandard{StandardZeros, StandardRandom, StandardDOD, StandardGutmann} {
		first, err := SchedulePasses(standard, 5)
		require.NoError(t, err)
		second, err := SchedulePasses(standard, 5)
		require.NoError(t, err)
		require.Equal(t, first, second)
	}
}

func TestTotalPasses(t *testing.T) {
	require.Equal(t, 3, TotalPasses(StandardDOD, 10))
	require.Equal(t, 35, TotalPasses(StandardGutmann, 1))
	require.Equal(t, 7, TotalPasses(StandardRandom, 7))
}

func TestValidateStandard(t *testing.T) {
	for _, valid := range []string{"zeros", "random", "dod", "gutmann"} {
		s, err := ValidateStandard(valid)
		require.NoError(t, err)
		require.Equal(t, WipeStandard(valid), s)
	}

	_, err := ValidateStandard("shred")
	require.Error(t, err)
}
