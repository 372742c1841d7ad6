package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ShiftEventAdded   = "shift_added"
	ShiftEventRemoved = "shift_removed"
)

// ShiftEvent 在班次增删后发布到消息队列
type ShiftEvent struct {
	ID            uuid.UUID        `json:"id"`
	Type          string           `json:"type"`
	WorkingWeekID int64            `json:"workingWeekID"`
	Shift         WorkingWeekShift `json:"shift"`
	OccurredAt    time.Time        `json:"occurredAt"`
}
