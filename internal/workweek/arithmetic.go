package workweek

import (
	"time"
)

const week = 7 * 24 * time.Hour

// DateAdd 从 start 开始只在班次内计时，经过 duration 后到达的时间。
// duration 为负数时向前倒推，结果超出 MinTime 到 MaxTime 时返回 ErrOutOfRange。
func (w *Week) DateAdd(start time.Time, duration time.Duration) (time.Time, error) {
	s := w.snapshot()

	switch {
	case duration > 0:
		return s.dateAddPositive(start, duration)
	case duration < 0:
		return s.dateAddNegative(start, -duration)
	default:
		return start, nil
	}
}

// DateDiff 计算 a 到 b 之间的工作时长，a 晚于 b 时结果为负数
func (w *Week) DateDiff(a, b time.Time) time.Duration {
	return w.snapshot().dateDiff(a, b)
}

func (s *snapshot) dateAddPositive(start time.Time, remaining time.Duration) (time.Time, error) {
	if s.duration <= 0 {
		return time.Time{}, ErrEmptyWeek
	}

	// 先一次性跳过整周，避免逐天遍历
	weeks := int64(remaining / s.duration)
	end := start
	if weeks > 0 {
		remaining -= time.Duration(weeks) * s.duration
		end = end.AddDate(0, 0, int(weeks)*7)
	}

	for shift := range s.ascending(end, MaxTime) {
		if remaining == 0 {
			break
		}

		if remaining >= shift.Duration {
			end = shift.End()
			remaining -= shift.Duration
			continue
		}

		// 剩余时长落在这个班次内
		end = shift.Start.Add(remaining)
		remaining = 0
	}

	if remaining > 0 || end.After(MaxTime) {
		return time.Time{}, ErrOutOfRange
	}

	return end, nil
}

// dateAddNegative 的 remaining 已经取反，为正数
func (s *snapshot) dateAddNegative(start time.Time, remaining time.Duration) (time.Time, error) {
	if s.duration <= 0 {
		return time.Time{}, ErrEmptyWeek
	}

	weeks := int64(remaining / s.duration)
	end := start
	if weeks > 0 {
		remaining -= time.Duration(weeks) * s.duration
		end = end.AddDate(0, 0, -int(weeks)*7)
	}

	for shift := range s.descending(end, MinTime) {
		if remaining == 0 {
			break
		}

		if remaining >= shift.Duration {
			end = shift.Start
			remaining -= shift.Duration
			continue
		}

		end = shift.End().Add(-remaining)
		remaining = 0
	}

	if remaining > 0 || end.Before(MinTime) {
		return time.Time{}, ErrOutOfRange
	}

	return end, nil
}

func (s *snapshot) dateDiff(start, end time.Time) time.Duration {
	inverted := false
	if start.After(end) {
		start, end = end, start
		inverted = true
	}

	var diff time.Duration

	// 整周部分直接用一周的工作时长相乘
	if weeks := wholeWeeksBetween(start, end); weeks > 0 {
		diff += time.Duration(weeks) * s.duration
		start = start.AddDate(0, 0, int(weeks)*7)
	}

	// 剩下不足一周的部分逐个班次累加，最后一个班次只计算 end 之前的部分
	for shift := range s.ascending(start, end) {
		if shift.End().After(end) {
			diff += end.Sub(shift.Start)
			continue
		}
		diff += shift.Duration
	}

	if inverted {
		return -diff
	}
	return diff
}

// wholeWeeksBetween 返回 start 到 end（start 不晚于 end）之间完整的周数。
// 用秒计算，避免相隔几百年时 time.Duration 溢出。
func wholeWeeksBetween(start, end time.Time) int64 {
	secs := end.Unix() - start.Unix()
	if end.Nanosecond() < start.Nanosecond() {
		secs--
	}
	return secs / int64(week/time.Second)
}
