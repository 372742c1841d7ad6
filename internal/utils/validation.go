package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/working-week/backend/internal/domain"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/workweek"
)

// ParseShiftTime 解析 "15:04:05" 格式的时间，返回距离零点的时长。
// 额外允许 "24:00:00"，用于表示在午夜结束的班次。
// 数据库 TIME 列读出的值带有微秒（"09:30:00.000000"），同样可以解析。
func ParseShiftTime(s string) (time.Duration, error) {
	if isMidnightEnd(s) {
		return 24 * time.Hour, nil
	}

	clock, err := workweek.ParseClock(s)
	if err != nil {
		return 0, err
	}
	return clock.SinceMidnight(), nil
}

func isMidnightEnd(s string) bool {
	hms, frac, hasFrac := strings.Cut(s, ".")
	if !hasFrac {
		return s == "24:00:00" || s == "24:00"
	}
	return hms == "24:00:00" && frac != "" && strings.Trim(frac, "0") == ""
}

// FormatShiftTime 把距离零点的时长格式化为 "15:04:05"，24 小时格式化为 "24:00:00"
func FormatShiftTime(d time.Duration) string {
	if d == 24*time.Hour {
		return "24:00:00"
	}
	return workweek.ClockOf(time.Time{}.Add(d)).String()
}

// NormalizeShiftTime 把 "09:30"、"09:30:00.000000" 等写法统一为 "09:30:00"
func NormalizeShiftTime(s string) (string, error) {
	d, err := ParseShiftTime(s)
	if err != nil {
		return "", err
	}
	return FormatShiftTime(d), nil
}

// NormalizeWorkingWeekShift 统一班次开始时间和结束时间的格式
func NormalizeWorkingWeekShift(shift *domain.WorkingWeekShift) error {
	start, err := NormalizeShiftTime(shift.StartTime)
	if err != nil {
		return fmt.Errorf("开始时间 %q 格式错误", shift.StartTime)
	}
	end, err := NormalizeShiftTime(shift.EndTime)
	if err != nil {
		return fmt.Errorf("结束时间 %q 格式错误", shift.EndTime)
	}

	shift.StartTime = start
	shift.EndTime = end
	return nil
}

func ValidateWorkingWeekShiftTime(ww *domain.WorkingWeek) error {
	// 检查每一个班次的格式以及结束时间是否不早于开始时间
	for i, shift := range ww.Shifts {
		if err := ValidateWorkingWeekShift(&shift); err != nil {
			return fmt.Errorf("班次 %d: %w", i, err)
		}
	}

	// 检查同一天的各个班次之间是否冲突
	for i := 0; i < len(ww.Shifts); i++ {
		iStart, _ := ParseShiftTime(ww.Shifts[i].StartTime)
		iEnd, _ := ParseShiftTime(ww.Shifts[i].EndTime)

		for j := i + 1; j < len(ww.Shifts); j++ {
			if ww.Shifts[i].Weekday != ww.Shifts[j].Weekday {
				continue
			}

			jStart, _ := ParseShiftTime(ww.Shifts[j].StartTime)
			jEnd, _ := ParseShiftTime(ww.Shifts[j].EndTime)

			if iStart == jStart || (iStart < jEnd && jStart < iEnd) {
				return fmt.Errorf("班次 %d 和班次 %d 之间的时间冲突", i, j)
			}
		}
	}

	return nil
}

func ValidateWorkingWeekShift(shift *domain.WorkingWeekShift) error {
	if shift.Weekday < 0 || shift.Weekday > 6 {
		return fmt.Errorf("星期 %d 无效", shift.Weekday)
	}

	start, err := ParseShiftTime(shift.StartTime)
	if err != nil || start >= 24*time.Hour {
		return fmt.Errorf("开始时间 %q 格式错误", shift.StartTime)
	}
	end, err := ParseShiftTime(shift.EndTime)
	if err != nil {
		return fmt.Errorf("结束时间 %q 格式错误", shift.EndTime)
	}
	if end < start {
		return fmt.Errorf("结束时间不能早于开始时间")
	}

	return nil
}
