package workweek

import (
	"fmt"
	"time"
)

// zeroDate 是所有模板班次共用的日期，只有时分秒有意义
var zeroDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// Shift 表示一个班次：开始时间 + 时长，创建后不可修改
//
// 工作周模板中的班次日期固定为 0001-01-01；遍历产生的班次则带有真实日期。
type Shift struct {
	Start    time.Time
	Duration time.Duration
}

func NewShift(start time.Time, duration time.Duration) Shift {
	return Shift{Start: start, Duration: duration}
}

func (s Shift) End() time.Time {
	return s.Start.Add(s.Duration)
}

// Compare 先比较开始时间，开始时间相同时再比较时长
func (s Shift) Compare(other Shift) int {
	if c := s.Start.Compare(other.Start); c != 0 {
		return c
	}

	switch {
	case s.Duration < other.Duration:
		return -1
	case s.Duration > other.Duration:
		return 1
	default:
		return 0
	}
}

func (s Shift) Equal(other Shift) bool {
	return s.Compare(other) == 0
}

// contains 判断 [Start, End) 是否包含 t
func (s Shift) contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End())
}

func (s Shift) String() string {
	return fmt.Sprintf("%s+%s", s.Start.Format("2006-01-02 15:04:05.000"), s.Duration)
}

// Clock 表示一天中的某个时刻，不含日期
type Clock struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// ParseClock 解析 "15:04:05" 或 "15:04" 格式的时刻
func ParseClock(s string) (Clock, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return ClockOf(t), nil
		}
	}
	return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
}

// ClockOf 取出 t 的时分秒，丢弃日期
func ClockOf(t time.Time) Clock {
	return Clock{
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond(),
	}
}

func (c Clock) valid() bool {
	return c.Hour >= 0 && c.Hour < 24 &&
		c.Minute >= 0 && c.Minute < 60 &&
		c.Second >= 0 && c.Second < 60 &&
		c.Nanosecond >= 0 && c.Nanosecond < int(time.Second)
}

// SinceMidnight 返回从零点到该时刻经过的时长
func (c Clock) SinceMidnight() time.Duration {
	return time.Duration(c.Hour)*time.Hour +
		time.Duration(c.Minute)*time.Minute +
		time.Duration(c.Second)*time.Second +
		time.Duration(c.Nanosecond)
}

// OnDate 把时刻放到 date 所在的那一天（使用 date 的时区）
func (c Clock) OnDate(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, c.Second, c.Nanosecond, date.Location())
}

func (c Clock) String() string {
	if c.Nanosecond != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%09d", c.Hour, c.Minute, c.Second, c.Nanosecond)
	}
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// templateTime 把时刻放到模板日期上
func (c Clock) templateTime() time.Time {
	return zeroDate.Add(c.SinceMidnight())
}

// timeOfDay 把 t 映射到模板日期上，用于和模板班次比较
func timeOfDay(t time.Time) time.Time {
	return ClockOf(t).templateTime()
}

// endOfDay 表示模板日期的 24:00，即第二天的零点
var endOfDay = zeroDate.Add(24 * time.Hour)
