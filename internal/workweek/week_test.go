package workweek

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newReferenceWeek 构造测试用的班次模式：
// 周一 09:30-12:30、13:30-17:30，周二 09:30-12:30，周三 09:30-12:30
func newReferenceWeek(t *testing.T) *Week {
	t.Helper()

	w := NewWeek()
	require.NoError(t, w.AddShift(time.Monday, Clock{Hour: 9, Minute: 30}, 3*time.Hour))
	require.NoError(t, w.AddShift(time.Monday, Clock{Hour: 13, Minute: 30}, 4*time.Hour))
	require.NoError(t, w.AddShift(time.Tuesday, Clock{Hour: 9, Minute: 30}, 3*time.Hour))
	require.NoError(t, w.AddShift(time.Wednesday, Clock{Hour: 9, Minute: 30}, 3*time.Hour))
	return w
}

func date(day, hour, minute int) time.Time {
	return time.Date(2010, time.July, day, hour, minute, 0, 0, time.UTC)
}

func TestWeekAddShift(t *testing.T) {
	t.Run("keeps shifts sorted and totals consistent", func(t *testing.T) {
		w := NewWeek()
		require.NoError(t, w.AddShift(time.Monday, Clock{Hour: 13}, 2*time.Hour))
		require.NoError(t, w.AddShift(time.Monday, Clock{Hour: 8}, time.Hour))
		require.NoError(t, w.AddShift(time.Friday, Clock{Hour: 22}, 2*time.Hour))

		shifts := w.GetDay(time.Monday).Shifts()
		require.Len(t, shifts, 2)
		assert.Equal(t, 8, shifts[0].Start.Hour())
		assert.Equal(t, 13, shifts[1].Start.Hour())

		assert.Equal(t, 3*time.Hour, w.GetDay(time.Monday).Duration())
		assert.Equal(t, 5*time.Hour, w.TotalDuration())
	})

	t.Run("rejects overlapping shifts", func(t *testing.T) {
		w := newReferenceWeek(t)

		err := w.AddShift(time.Monday, Clock{Hour: 12}, time.Hour)
		assert.ErrorIs(t, err, ErrShiftConflict)

		err = w.AddShift(time.Monday, Clock{Hour: 9}, time.Hour)
		assert.ErrorIs(t, err, ErrShiftConflict)

		err = w.AddShift(time.Monday, Clock{Hour: 9, Minute: 30}, 0)
		assert.ErrorIs(t, err, ErrShiftConflict)

		assert.Equal(t, 13*time.Hour, w.TotalDuration())
	})

	t.Run("allows shifts that only touch", func(t *testing.T) {
		w := newReferenceWeek(t)
		assert.NoError(t, w.AddShift(time.Monday, Clock{Hour: 12, Minute: 30}, time.Hour))
		assert.Equal(t, 14*time.Hour, w.TotalDuration())
	})

	t.Run("rejects invalid shifts", func(t *testing.T) {
		w := NewWeek()
		assert.ErrorIs(t, w.AddShift(time.Monday, Clock{Hour: 9}, -time.Hour), ErrNegativeDuration)
		assert.ErrorIs(t, w.AddShift(time.Monday, Clock{Hour: 23}, 2*time.Hour), ErrShiftPastMidnight)
		assert.ErrorIs(t, w.AddShift(time.Monday, Clock{Hour: 24}, time.Hour), ErrInvalidClock)
		assert.False(t, w.ContainsShifts())
	})

	t.Run("allows a shift ending at midnight", func(t *testing.T) {
		w := NewWeek()
		assert.NoError(t, w.AddShift(time.Friday, Clock{Hour: 20}, 4*time.Hour))
	})
}

func TestWeekRemoveShift(t *testing.T) {
	w := newReferenceWeek(t)

	assert.True(t, w.RemoveShift(time.Monday, Clock{Hour: 13, Minute: 30}))
	assert.Equal(t, 9*time.Hour, w.TotalDuration())
	assert.Equal(t, 3*time.Hour, w.GetDay(time.Monday).Duration())

	assert.False(t, w.RemoveShift(time.Monday, Clock{Hour: 13, Minute: 30}))
	assert.False(t, w.RemoveShift(time.Sunday, Clock{Hour: 9, Minute: 30}))
	assert.Equal(t, 9*time.Hour, w.TotalDuration())
}

func TestWeekIsWorking(t *testing.T) {
	w := newReferenceWeek(t)

	assert.True(t, w.ContainsShifts())
	assert.True(t, w.IsWorking(date(5, 9, 30)))
	assert.True(t, w.IsWorking(date(5, 12, 29)))
	assert.False(t, w.IsWorking(date(5, 12, 30)))
	assert.False(t, w.IsWorking(date(8, 10, 0)))

	assert.True(t, w.IsWorkingDay(time.Wednesday))
	assert.False(t, w.IsWorkingDay(time.Thursday))
}

func TestGetDayIsUnaffectedByLaterMutation(t *testing.T) {
	w := newReferenceWeek(t)
	monday := w.GetDay(time.Monday)

	require.NoError(t, w.AddShift(time.Monday, Clock{Hour: 18}, time.Hour))

	assert.Len(t, monday.Shifts(), 2)
	assert.Len(t, w.GetDay(time.Monday).Shifts(), 3)
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30:15")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 9, Minute: 30, Second: 15}, c)
	assert.Equal(t, "09:30:15", c.String())

	c, err = ParseClock("13:30")
	require.NoError(t, err)
	assert.Equal(t, 13*time.Hour+30*time.Minute, c.SinceMidnight())

	_, err = ParseClock("25:00")
	assert.ErrorIs(t, err, ErrInvalidClock)
}
