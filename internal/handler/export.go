package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/working-week/backend/internal/domain"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/utils"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/workweek"
	"github.com/xuri/excelize/v2"
)

const (
	templateSheet   = "每周班次"
	occurrenceSheet = "班次明细"
)

// buildWorkbook 生成两张表：工作周的每周班次，以及 [from, to) 内的全部班次
func buildWorkbook(ww *domain.WorkingWeek, week *workweek.Week, from, to time.Time, limit int) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(occurrenceSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	// 每周班次
	rows := [][]any{{"星期", "开始时间", "结束时间", "时长"}}
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		for _, shift := range week.GetDay(weekday).Shifts() {
			rows = append(rows, []any{
				utils.FormatWeekday(int32(weekday)),
				shift.Start.Format(time.TimeOnly),
				utils.FormatShiftTime(workweek.ClockOf(shift.Start).SinceMidnight() + shift.Duration),
				shift.Duration.String(),
			})
		}
	}
	rows = append(rows, []any{"合计", "", "", week.TotalDuration().String()})
	if err := writeRows(f, templateSheet, rows, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}

	// 班次明细
	rows = [][]any{{"日期", "星期", "开始", "结束", "时长"}}
	var total time.Duration
	for shift := range week.AscendingShifts(from, to) {
		if len(rows) > limit {
			break
		}

		// 最后一个班次只计算 to 之前的部分
		end := shift.End()
		if end.After(to) {
			end = to
		}
		total += end.Sub(shift.Start)

		rows = append(rows, []any{
			shift.Start.Format(time.DateOnly),
			utils.FormatWeekday(int32(shift.Start.Weekday())),
			shift.Start.Format(time.DateTime),
			end.Format(time.DateTime),
			end.Sub(shift.Start).String(),
		})
	}
	rows = append(rows, []any{"合计", "", "", "", total.String()})
	if err := writeRows(f, occurrenceSheet, rows, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := f.SetDocProps(&excelize.DocProperties{Title: ww.Name}); err != nil {
		_ = f.Close()
		return nil, err
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	return f.SetColWidth(sheet, "A", "E", 20)
}

func (h *Handler) ExportWorkingWeek(w http.ResponseWriter, r *http.Request) {
	ww := r.Context().Value(WorkingWeekCtx).(*domain.WorkingWeek)

	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		h.errorResponse(w, r, "开始时间格式错误")
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		h.errorResponse(w, r, "结束时间格式错误")
		return
	}
	if !to.After(from) {
		h.errorResponse(w, r, "结束时间必须晚于开始时间")
		return
	}

	week, ok := h.weekFromContext(w, r)
	if !ok {
		return
	}

	f, err := buildWorkbook(ww, week, from, to, h.config.Query.MaxEnumeratedShifts)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("%s_%s_%s.xlsx", ww.Slug, from.Format("20060102"), to.Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(w); err != nil {
		h.logInternalServerError(r, err)
	}
}
