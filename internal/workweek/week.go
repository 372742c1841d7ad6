package workweek

import (
	"fmt"
	"sync"
	"time"
)

// Week 是按周重复的工作班次模式
//
// 修改操作（AddShift / RemoveShift）持有写锁并替换对应 Day 的切片；
// 所有查询在开始时持有读锁复制一份快照，之后不再访问 Week 本身。
type Week struct {
	mu       sync.RWMutex
	days     [7]Day
	duration time.Duration
}

func NewWeek() *Week {
	w := &Week{}
	for i := range w.days {
		w.days[i] = newDay(time.Weekday(i))
	}
	return w
}

// AddShift 在 weekday 上添加一个从 start 开始、持续 duration 的班次
func (w *Week) AddShift(weekday time.Weekday, start Clock, duration time.Duration) error {
	if !start.valid() {
		return fmt.Errorf("%w: %s", ErrInvalidClock, start)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	day, err := w.days[weekday].withShift(NewShift(start.templateTime(), duration))
	if err != nil {
		return err
	}

	w.days[weekday] = day
	w.duration += duration
	return nil
}

// RemoveShift 删除 weekday 上从 start 开始的班次，返回是否找到了该班次
func (w *Week) RemoveShift(weekday time.Weekday, start Clock) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	before := w.days[weekday].duration
	day, ok := w.days[weekday].withoutShift(start.templateTime())
	if !ok {
		return false
	}

	w.days[weekday] = day
	w.duration -= before - day.duration
	return true
}

// GetDay 返回某天的只读视图
func (w *Week) GetDay(weekday time.Weekday) Day {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.days[weekday]
}

// TotalDuration 返回一整周的工作时长
func (w *Week) TotalDuration() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.duration
}

// ContainsShifts 判断一周中是否存在任何班次
func (w *Week) ContainsShifts() bool {
	return w.snapshot().containsShifts()
}

// IsWorking 判断 t 是否落在某个班次内
func (w *Week) IsWorking(t time.Time) bool {
	return w.GetDay(t.Weekday()).IsWorkingTime(t)
}

// IsWorkingDay 判断 weekday 是否有班次
func (w *Week) IsWorkingDay(weekday time.Weekday) bool {
	return w.GetDay(weekday).ContainsShifts()
}

func (w *Week) snapshot() *snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return &snapshot{
		days:     w.days,
		duration: w.duration,
	}
}

// snapshot 是某一时刻的工作周，所有查询都在它上面完成
type snapshot struct {
	days     [7]Day
	duration time.Duration
}

func (s *snapshot) day(weekday time.Weekday) Day {
	return s.days[weekday]
}

func (s *snapshot) containsShifts() bool {
	for _, day := range s.days {
		if day.ContainsShifts() {
			return true
		}
	}
	return false
}
