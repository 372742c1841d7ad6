package domain

import (
	"time"
)

// WorkingWeekShift 中的 Weekday 与 time.Weekday 一致：0 表示周日，6 表示周六
type WorkingWeekShift struct {
	ID        int64  `json:"id"`
	Weekday   int32  `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"` // 允许 "24:00:00"，表示在午夜结束
}

type WorkingWeek struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Shifts      []WorkingWeekShift `json:"shifts"`
	CreatedAt   time.Time          `json:"createdAt"`
	Version     int32              `json:"version"`
}
