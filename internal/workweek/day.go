package workweek

import (
	"fmt"
	"slices"
	"time"
)

// Day 表示某个星期几的全部班次
//
// 班次按开始时间排序且互不重叠。Day 是只读的值：Week 在修改时总是生成新的切片，
// 因此已经拿到手的 Day 不会被并发修改。
type Day struct {
	weekday  time.Weekday
	shifts   []Shift
	duration time.Duration
}

func newDay(weekday time.Weekday) Day {
	return Day{weekday: weekday}
}

func (d Day) Weekday() time.Weekday {
	return d.weekday
}

// Duration 返回当天所有班次的总时长
func (d Day) Duration() time.Duration {
	return d.duration
}

func (d Day) ContainsShifts() bool {
	return len(d.shifts) > 0
}

// Shifts 返回当天班次的副本
func (d Day) Shifts() []Shift {
	return slices.Clone(d.shifts)
}

// FindShift 找到包含 t 的班次，只比较时分秒，日期可以是任意一天
func (d Day) FindShift(t time.Time) (Shift, bool) {
	tod := timeOfDay(t)

	for _, shift := range d.shifts {
		if shift.contains(tod) {
			return shift, true
		}
	}

	return Shift{}, false
}

func (d Day) IsWorkingTime(t time.Time) bool {
	_, ok := d.FindShift(t)
	return ok
}

// GetNextShift 返回第一个在 t 之后结束的班次。
// 如果 t 落在某个班次内，返回的班次会被截断为从 t 开始。
func (d Day) GetNextShift(t time.Time) (Shift, bool) {
	d.mustMatch(t)
	return d.nextAt(timeOfDay(t))
}

// GetPreviousShift 返回最后一个在 t 之前开始的班次。
// 如果 t 落在某个班次内，返回的班次会被截断为在 t 结束。
func (d Day) GetPreviousShift(t time.Time) (Shift, bool) {
	d.mustMatch(t)
	return d.previousAt(timeOfDay(t))
}

func (d Day) mustMatch(t time.Time) {
	if t.Weekday() != d.weekday {
		panic(fmt.Errorf("%w: 期望 %s，实际 %s", ErrWeekdayMismatch, d.weekday, t.Weekday()))
	}
}

// nextAt 的 tod 位于模板日期上
func (d Day) nextAt(tod time.Time) (Shift, bool) {
	for _, shift := range d.shifts {
		if !tod.Before(shift.End()) {
			continue
		}

		if !tod.After(shift.Start) {
			return shift, true
		}

		return NewShift(tod, shift.End().Sub(tod)), true
	}

	return Shift{}, false
}

// previousAt 的 tod 可以是 endOfDay，表示从当天 24:00 往前找
func (d Day) previousAt(tod time.Time) (Shift, bool) {
	for i := len(d.shifts) - 1; i >= 0; i-- {
		shift := d.shifts[i]

		if !tod.After(shift.Start) {
			continue
		}

		if !tod.Before(shift.End()) {
			return shift, true
		}

		return NewShift(shift.Start, tod.Sub(shift.Start)), true
	}

	return Shift{}, false
}

// withShift 返回插入新班次后的 Day，原 Day 保持不变
func (d Day) withShift(shift Shift) (Day, error) {
	if shift.Duration < 0 {
		return d, ErrNegativeDuration
	}
	if shift.End().After(endOfDay) {
		return d, fmt.Errorf("%w: %s", ErrShiftPastMidnight, shift)
	}

	for _, existing := range d.shifts {
		overlaps := shift.Start.Before(existing.End()) && existing.Start.Before(shift.End())
		if overlaps || shift.Start.Equal(existing.Start) {
			return d, fmt.Errorf("%w: %s 与 %s", ErrShiftConflict, shift, existing)
		}
	}

	i, _ := slices.BinarySearchFunc(d.shifts, shift, Shift.Compare)

	return Day{
		weekday:  d.weekday,
		shifts:   slices.Insert(slices.Clone(d.shifts), i, shift),
		duration: d.duration + shift.Duration,
	}, nil
}

// withoutShift 返回删除从 start 开始的班次后的 Day
func (d Day) withoutShift(start time.Time) (Day, bool) {
	i := slices.IndexFunc(d.shifts, func(s Shift) bool {
		return s.Start.Equal(start)
	})
	if i < 0 {
		return d, false
	}

	return Day{
		weekday:  d.weekday,
		shifts:   slices.Delete(slices.Clone(d.shifts), i, i+1),
		duration: d.duration - d.shifts[i].Duration,
	}, true
}
