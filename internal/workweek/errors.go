package workweek

import "errors"

var (
	// 调用方违反约定，例如用星期二的时间去查询星期一
	ErrWeekdayMismatch = errors.New("传入时间的星期与当天不符")

	// 工作周配置有误，例如整周工作时长为 0 却仍需要按整周推进
	ErrEmptyWeek = errors.New("工作周的总工作时长为 0")

	// DateAdd 的结果早于 MinTime 或晚于 MaxTime
	ErrOutOfRange = errors.New("计算结果超出支持的时间范围")

	ErrShiftConflict     = errors.New("新班次与已有班次冲突")
	ErrNegativeDuration  = errors.New("班次时长不能为负数")
	ErrShiftPastMidnight = errors.New("班次不能跨越午夜")
	ErrInvalidClock      = errors.New("无效的时刻")
)
