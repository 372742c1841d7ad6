package handler

import (
	"errors"
	"iter"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/working-week/backend/internal/domain"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/utils"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/workweek"
)

type shiftOccurrence struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration string    `json:"duration"`
}

func (h *Handler) weekFromContext(w http.ResponseWriter, r *http.Request) (*workweek.Week, bool) {
	ww := r.Context().Value(WorkingWeekCtx).(*domain.WorkingWeek)

	week, err := utils.BuildWeek(ww)
	if err != nil {
		h.internalServerError(w, r, err)
		return nil, false
	}

	return week, true
}

func (h *Handler) DateAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Start    time.Time `json:"start" validate:"required"`
		Duration string    `json:"duration" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	duration, err := time.ParseDuration(req.Duration)
	if err != nil {
		h.errorResponse(w, r, "时长格式错误")
		return
	}

	week, ok := h.weekFromContext(w, r)
	if !ok {
		return
	}

	result, err := week.DateAdd(req.Start, duration)
	if err != nil {
		switch {
		case errors.Is(err, workweek.ErrEmptyWeek):
			h.errorResponse(w, r, "工作周没有任何工作时间，无法计算")
		case errors.Is(err, workweek.ErrOutOfRange):
			h.unprocessable(w, r, "计算结果超出支持的时间范围")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "计算成功", map[string]time.Time{
		"result": result,
	})
}

func (h *Handler) DateDiff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Start time.Time `json:"start" validate:"required"`
		End   time.Time `json:"end" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	week, ok := h.weekFromContext(w, r)
	if !ok {
		return
	}

	diff := week.DateDiff(req.Start, req.End)

	h.successResponse(w, r, "计算成功", map[string]any{
		"duration": diff.String(),
		"seconds":  diff.Seconds(),
	})
}

func (h *Handler) EnumerateShifts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Start     time.Time  `json:"start" validate:"required"`
		End       *time.Time `json:"end"`
		Direction string     `json:"direction" validate:"omitempty,oneof=asc desc"`
		Limit     int        `json:"limit" validate:"omitempty,gte=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	limit := h.config.Query.MaxEnumeratedShifts
	if req.Limit > 0 && req.Limit < limit {
		limit = req.Limit
	}

	week, ok := h.weekFromContext(w, r)
	if !ok {
		return
	}

	var shifts iter.Seq[workweek.Shift]
	switch req.Direction {
	case "desc":
		end := workweek.MinTime
		if req.End != nil {
			end = *req.End
		}
		shifts = week.DescendingShifts(req.Start, end)
	default:
		end := workweek.MaxTime
		if req.End != nil {
			end = *req.End
		}
		shifts = week.AscendingShifts(req.Start, end)
	}

	occurrences := make([]shiftOccurrence, 0)
	for shift := range shifts {
		occurrences = append(occurrences, shiftOccurrence{
			Start:    shift.Start,
			End:      shift.End(),
			Duration: shift.Duration.String(),
		})
		if len(occurrences) >= limit {
			break
		}
	}

	h.successResponse(w, r, "获取班次成功", occurrences)
}

func (h *Handler) IsWorking(w http.ResponseWriter, r *http.Request) {
	at, err := time.Parse(time.RFC3339, r.URL.Query().Get("at"))
	if err != nil {
		h.errorResponse(w, r, "时间格式错误")
		return
	}

	week, ok := h.weekFromContext(w, r)
	if !ok {
		return
	}

	h.successResponse(w, r, "查询成功", map[string]bool{
		"isWorking": week.IsWorking(at),
	})
}
