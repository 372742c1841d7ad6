package utils

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/working-week/backend/internal/domain"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/workweek"
)

// BuildWeek 把数据库中的工作周转换为可以计算的 workweek.Week
func BuildWeek(ww *domain.WorkingWeek) (*workweek.Week, error) {
	week := workweek.NewWeek()

	for _, shift := range ww.Shifts {
		if err := AddShiftToWeek(week, &shift); err != nil {
			return nil, fmt.Errorf("班次 %d: %w", shift.ID, err)
		}
	}

	return week, nil
}

func AddShiftToWeek(week *workweek.Week, shift *domain.WorkingWeekShift) error {
	if err := ValidateWorkingWeekShift(shift); err != nil {
		return err
	}

	start, _ := workweek.ParseClock(shift.StartTime)
	end, _ := ParseShiftTime(shift.EndTime)

	return week.AddShift(time.Weekday(shift.Weekday), start, end-start.SinceMidnight())
}

// FormatWeekday 返回星期的中文名称
func FormatWeekday(weekday int32) string {
	names := []string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}
	if weekday < 0 || int(weekday) >= len(names) {
		return fmt.Sprintf("星期(%d)", weekday)
	}
	return names[weekday]
}
