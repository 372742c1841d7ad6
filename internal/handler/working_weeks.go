package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/domain"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/utils"
)

type shiftRequest struct {
	Weekday   *int32 `json:"weekday" validate:"required,gte=0,lte=6"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

func (s shiftRequest) toDomain() domain.WorkingWeekShift {
	return domain.WorkingWeekShift{
		Weekday:   *s.Weekday,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

func (h *Handler) GetAllWorkingWeeks(w http.ResponseWriter, r *http.Request) {
	wws, err := h.repository.GetAllWorkingWeeks()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有工作周成功", wws)
}

func (h *Handler) CreateWorkingWeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string         `json:"name" validate:"required"`
		Description string         `json:"description"`
		Shifts      []shiftRequest `json:"shifts" validate:"dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ww := &domain.WorkingWeek{
		Name:        req.Name,
		Slug:        utils.GenerateSlug(req.Name),
		Description: req.Description,
		Shifts:      make([]domain.WorkingWeekShift, 0, len(req.Shifts)),
	}
	for _, shift := range req.Shifts {
		ww.Shifts = append(ww.Shifts, shift.toDomain())
	}

	if err := utils.ValidateWorkingWeekShiftTime(ww); err != nil {
		h.badRequest(w, r, err)
		return
	}
	for i := range ww.Shifts {
		if err := utils.NormalizeWorkingWeekShift(&ww.Shifts[i]); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	if err := h.repository.CreateWorkingWeek(ww); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "working_weeks_name_key":
				h.errorResponse(w, r, "工作周名称已存在")
			case "working_week_shifts_start_key":
				h.errorResponse(w, r, "同一天存在开始时间相同的班次")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建工作周成功", ww)
}

func (h *Handler) GetWorkingWeek(w http.ResponseWriter, r *http.Request) {
	ww := r.Context().Value(WorkingWeekCtx).(*domain.WorkingWeek)

	h.successResponse(w, r, "获取工作周成功", ww)
}

func (h *Handler) UpdateWorkingWeek(w http.ResponseWriter, r *http.Request) {
	ww := r.Context().Value(WorkingWeekCtx).(*domain.WorkingWeek)

	var req struct {
		Name        *string `json:"name" validate:"omitnil,min=1"`
		Description *string `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		ww.Name = *req.Name
		ww.Slug = utils.GenerateSlug(*req.Name)
	}
	if req.Description != nil {
		ww.Description = *req.Description
	}

	if err := h.repository.UpdateWorkingWeek(ww); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "working_weeks_name_key":
				h.errorResponse(w, r, "工作周名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateWorkingWeek(r.Context(), ww.ID)

	h.successResponse(w, r, "更新工作周成功", ww)
}

func (h *Handler) DeleteWorkingWeek(w http.ResponseWriter, r *http.Request) {
	ww := r.Context().Value(WorkingWeekCtx).(*domain.WorkingWeek)

	if err := h.repository.DeleteWorkingWeek(ww.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateWorkingWeek(r.Context(), ww.ID)

	h.successResponse(w, r, "删除工作周成功", nil)
}

func (h *Handler) AddWorkingWeekShift(w http.ResponseWriter, r *http.Request) {
	ww := r.Context().Value(WorkingWeekCtx).(*domain.WorkingWeek)

	var req shiftRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := req.toDomain()

	// 先在内存中的工作周上尝试添加，冲突时直接返回，不访问数据库
	week, err := utils.BuildWeek(ww)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := utils.AddShiftToWeek(week, &shift); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.NormalizeWorkingWeekShift(&shift); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.InsertWorkingWeekShift(ww, &shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "working_week_shifts_start_key":
				h.errorResponse(w, r, "同一天存在开始时间相同的班次")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateWorkingWeek(r.Context(), ww.ID)
	h.notifyShiftChanged(r.Context(), domain.ShiftEventAdded, ww, shift, week.TotalDuration())

	h.successResponse(w, r, "添加班次成功", shift)
}

func (h *Handler) RemoveWorkingWeekShift(w http.ResponseWriter, r *http.Request) {
	ww := r.Context().Value(WorkingWeekCtx).(*domain.WorkingWeek)

	shiftID, err := strconv.ParseInt(chi.URLParam(r, "shiftID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "班次ID无效")
		return
	}

	idx := slices.IndexFunc(ww.Shifts, func(s domain.WorkingWeekShift) bool {
		return s.ID == shiftID
	})
	if idx < 0 {
		h.errorResponse(w, r, "班次不存在")
		return
	}
	shift := ww.Shifts[idx]

	if err := h.repository.DeleteWorkingWeekShift(ww, shiftID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	ww.Shifts = slices.Delete(ww.Shifts, idx, idx+1)

	h.invalidateWorkingWeek(r.Context(), ww.ID)

	week, err := utils.BuildWeek(ww)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.notifyShiftChanged(r.Context(), domain.ShiftEventRemoved, ww, shift, week.TotalDuration())

	h.successResponse(w, r, "删除班次成功", nil)
}
