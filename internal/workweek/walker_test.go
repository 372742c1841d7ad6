package workweek

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(seq func(func(Shift) bool)) []Shift {
	var shifts []Shift
	for shift := range seq {
		shifts = append(shifts, shift)
	}
	return shifts
}

func TestAscendingShifts(t *testing.T) {
	w := newReferenceWeek(t)

	got := collect(w.AscendingShifts(date(5, 10, 30), date(8, 0, 0)))

	want := []Shift{
		NewShift(date(5, 10, 30), 2*time.Hour),
		NewShift(date(5, 13, 30), 4*time.Hour),
		NewShift(date(6, 9, 30), 3*time.Hour),
		NewShift(date(7, 9, 30), 3*time.Hour),
	}
	assert.Equal(t, want, got)
}

func TestAscendingShiftsStopsAtEnd(t *testing.T) {
	w := newReferenceWeek(t)

	// 开始于结束时间之前的班次仍然会产生，开始于结束时间之后的不会
	got := collect(w.AscendingShifts(date(5, 0, 0), date(5, 13, 30)))
	assert.Equal(t, []Shift{NewShift(date(5, 9, 30), 3*time.Hour)}, got)

	got = collect(w.AscendingShifts(date(5, 0, 0), date(5, 13, 31)))
	assert.Len(t, got, 2)

	assert.Empty(t, collect(w.AscendingShifts(date(5, 10, 0), date(5, 10, 0))))
	assert.Empty(t, collect(w.AscendingShifts(date(8, 0, 0), date(11, 9, 0))))
}

func TestDescendingShifts(t *testing.T) {
	w := newReferenceWeek(t)

	got := collect(w.DescendingShifts(date(7, 11, 0), date(5, 0, 0)))

	want := []Shift{
		NewShift(date(7, 9, 30), 90*time.Minute),
		NewShift(date(6, 9, 30), 3*time.Hour),
		NewShift(date(5, 13, 30), 4*time.Hour),
		NewShift(date(5, 9, 30), 3*time.Hour),
	}
	assert.Equal(t, want, got)
}

func TestDescendingShiftsStopsAtEnd(t *testing.T) {
	w := newReferenceWeek(t)

	got := collect(w.DescendingShifts(date(5, 20, 0), date(5, 9, 30)))
	assert.Equal(t, []Shift{NewShift(date(5, 13, 30), 4*time.Hour)}, got)

	got = collect(w.DescendingShifts(date(5, 20, 0), date(5, 9, 29)))
	assert.Len(t, got, 2)
}

func TestShiftsOnEmptyWeek(t *testing.T) {
	w := NewWeek()

	assert.Empty(t, collect(w.AscendingShifts(date(5, 0, 0), MaxTime)))
	assert.Empty(t, collect(w.DescendingShifts(date(5, 0, 0), MinTime)))
}

func TestUnboundedShifts(t *testing.T) {
	w := newReferenceWeek(t)

	var ascending []Shift
	for shift := range w.AscendingShifts(date(5, 0, 0), MaxTime) {
		ascending = append(ascending, shift)
		if len(ascending) == 12 {
			break
		}
	}
	require.Len(t, ascending, 12)
	// 每周 4 个班次，第 12 个是第三周的周三
	assert.Equal(t, NewShift(date(21, 9, 30), 3*time.Hour), ascending[11])
	assert.True(t, slices.IsSortedFunc(ascending, Shift.Compare))

	var descending []Shift
	for shift := range w.DescendingShifts(date(31, 0, 0), MinTime) {
		descending = append(descending, shift)
		if len(descending) == 5 {
			break
		}
	}
	require.Len(t, descending, 5)
	assert.Equal(t, NewShift(date(28, 9, 30), 3*time.Hour), descending[0])
	assert.Equal(t, NewShift(date(21, 9, 30), 3*time.Hour), descending[4])
}

func TestShiftsAreRestartable(t *testing.T) {
	w := newReferenceWeek(t)
	seq := w.AscendingShifts(date(5, 11, 0), date(20, 0, 0))

	first := collect(seq)
	second := collect(seq)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestShiftsUseSnapshot(t *testing.T) {
	w := newReferenceWeek(t)
	seq := w.AscendingShifts(date(5, 0, 0), date(12, 0, 0))

	require.NoError(t, w.AddShift(time.Thursday, Clock{Hour: 9}, time.Hour))

	assert.Len(t, collect(seq), 4)
	assert.Len(t, collect(w.AscendingShifts(date(5, 0, 0), date(12, 0, 0))), 5)
}

func TestShiftEndingAtMidnight(t *testing.T) {
	w := NewWeek()
	require.NoError(t, w.AddShift(time.Friday, Clock{Hour: 20}, 4*time.Hour))

	friday := date(9, 0, 0)
	saturday := date(10, 0, 0)

	got := collect(w.DescendingShifts(saturday.Add(time.Hour), friday))
	assert.Equal(t, []Shift{NewShift(date(9, 20, 0), 4*time.Hour)}, got)

	got = collect(w.AscendingShifts(date(9, 22, 0), saturday.Add(12*time.Hour)))
	assert.Equal(t, []Shift{NewShift(date(9, 22, 0), 2*time.Hour)}, got)
}

func TestZeroDurationShiftsTerminate(t *testing.T) {
	w := NewWeek()
	require.NoError(t, w.AddShift(time.Monday, Clock{Hour: 10}, 0))

	got := collect(w.AscendingShifts(date(5, 0, 0), date(19, 0, 0)))
	assert.Equal(t, []Shift{
		NewShift(date(5, 10, 0), 0),
		NewShift(date(12, 10, 0), 0),
	}, got)

	got = collect(w.DescendingShifts(date(19, 0, 0), date(5, 0, 0)))
	assert.Equal(t, []Shift{
		NewShift(date(12, 10, 0), 0),
		NewShift(date(5, 10, 0), 0),
	}, got)
}
