package seed

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/domain"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/repository"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/utils"
)

type dailyShift struct {
	StartTime string
	EndTime   string
	Weekdays  []int32 // 0 表示周日
}

// ECNC 值班时间表
var ecncShifts = []dailyShift{
	{StartTime: "09:00:00", EndTime: "10:00:00", Weekdays: []int32{1, 2, 3, 4, 5, 6}},
	{StartTime: "10:00:00", EndTime: "12:00:00", Weekdays: []int32{1, 2, 3, 4, 5, 6}},
	{StartTime: "13:30:00", EndTime: "16:10:00", Weekdays: []int32{1, 2, 3, 4, 5}},
	{StartTime: "16:10:00", EndTime: "18:00:00", Weekdays: []int32{1, 2, 3, 4, 5}},
	{StartTime: "19:00:00", EndTime: "21:00:00", Weekdays: []int32{0, 1, 2, 3, 4, 5, 6}},
}

// 每周 13 小时的参考工作周，周一有两个班次
var referenceShifts = []dailyShift{
	{StartTime: "09:30:00", EndTime: "12:30:00", Weekdays: []int32{1, 2, 3}},
	{StartTime: "13:30:00", EndTime: "17:30:00", Weekdays: []int32{1}},
}

func newWorkingWeek(name string, description string, shifts []dailyShift) *domain.WorkingWeek {
	ww := &domain.WorkingWeek{
		Name:        name,
		Slug:        utils.GenerateSlug(name),
		Description: description,
	}

	for _, shift := range shifts {
		for _, weekday := range shift.Weekdays {
			ww.Shifts = append(ww.Shifts, domain.WorkingWeekShift{
				Weekday:   weekday,
				StartTime: shift.StartTime,
				EndTime:   shift.EndTime,
			})
		}
	}

	return ww
}

func RealWorkingWeeks() []*domain.WorkingWeek {
	return []*domain.WorkingWeek{
		newWorkingWeek("网络中心值班", "ECNC 助理值班时间", ecncShifts),
		newWorkingWeek("参考工作周", "周一 09:30-12:30、13:30-17:30，周二、周三 09:30-12:30", referenceShifts),
	}
}

func SeedRealData(r *repository.Repository) {
	cnt := 0
	for _, ww := range RealWorkingWeeks() {
		if err := utils.ValidateWorkingWeekShiftTime(ww); err != nil {
			slog.Error("工作周数据无效", "name", ww.Name, "error", err)
			continue
		}

		if err := r.CreateWorkingWeek(ww); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.ConstraintName == "working_weeks_name_key" {
				slog.Info("工作周已存在，跳过", "name", ww.Name)
				continue
			}
			slog.Error("无法插入工作周", "name", ww.Name, "error", err)
			continue
		}

		cnt++
	}

	slog.Info("插入真实数据成功", "count", cnt)
}
