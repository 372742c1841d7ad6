package workweek

import (
	"iter"
	"time"
)

var (
	// MaxTime 作为 AscendingShifts 的结束时间时，产生无限的班次序列
	MaxTime = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)

	// MinTime 作为 DescendingShifts 的结束时间时，产生无限的班次序列
	MinTime = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// AscendingShifts 按时间顺序产生 [start, end) 之间的每一个班次，班次带有真实日期。
// 第一个班次如果包含 start，会被截断为从 start 开始。
//
// 序列是惰性的，每次 range 都会从 start 重新开始；end 为 MaxTime 时序列无限，
// 由调用方决定何时停止。
func (w *Week) AscendingShifts(start, end time.Time) iter.Seq[Shift] {
	return w.snapshot().ascending(start, end)
}

// DescendingShifts 按时间倒序产生 (end, start] 之间的每一个班次。
// 第一个班次如果包含 start，会被截断为在 start 结束。
func (w *Week) DescendingShifts(start, end time.Time) iter.Seq[Shift] {
	return w.snapshot().descending(start, end)
}

func (s *snapshot) ascending(start, end time.Time) iter.Seq[Shift] {
	return func(yield func(Shift) bool) {
		// 没有任何班次时直接结束，否则会一直往后找下去
		if !s.containsShifts() {
			return
		}

		current := start
		for current.Before(end) {
			shift, ok := s.day(current.Weekday()).nextAt(timeOfDay(current))
			if !ok {
				// 当天已经没有班次了，从第二天零点继续
				current = startOfNextDay(current)
				continue
			}

			occurrence := NewShift(ClockOf(shift.Start).OnDate(current), shift.Duration)
			current = occurrence.End()

			if !occurrence.Start.Before(end) {
				return
			}
			if !yield(occurrence) {
				return
			}
		}
	}
}

func (s *snapshot) descending(start, end time.Time) iter.Seq[Shift] {
	return func(yield func(Shift) bool) {
		if !s.containsShifts() {
			return
		}

		// 倒序时需要表示某天的 24:00，因此把游标拆成日期和模板时刻两部分
		date := startOfDay(start)
		tod := timeOfDay(start)

		for onDate(date, tod).After(end) {
			shift, ok := s.day(date.Weekday()).previousAt(tod)
			if !ok {
				// 当天已经没有更早的班次了，从前一天的 24:00 继续
				y, m, d := date.Date()
				date = time.Date(y, m, d-1, 0, 0, 0, 0, date.Location())
				tod = endOfDay
				continue
			}

			occurrence := NewShift(ClockOf(shift.Start).OnDate(date), shift.Duration)
			tod = shift.Start

			if !occurrence.Start.After(end) {
				return
			}
			if !yield(occurrence) {
				return
			}
		}
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfNextDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// onDate 把模板时刻放到 date 那一天，endOfDay 对应第二天零点
func onDate(date time.Time, tod time.Time) time.Time {
	if !tod.Before(endOfDay) {
		return startOfNextDay(date)
	}
	return ClockOf(tod).OnDate(date)
}
