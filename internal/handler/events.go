package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/domain"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/utils"
)

const (
	ShiftEventQueue = "shift_events"
	EmailQueue      = "email_queue"
)

func (h *Handler) publish(ctx context.Context, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mqChannel.PublishWithContext(
		ctx,
		"",
		queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// notifyShiftChanged 发布班次变更事件，并在配置了收件人时发送通知邮件。
// 数据库已经提交，发布失败只记录日志。
func (h *Handler) notifyShiftChanged(ctx context.Context, eventType string, ww *domain.WorkingWeek, shift domain.WorkingWeekShift, weeklyDuration time.Duration) {
	if h.mqChannel == nil {
		slog.Warn("消息队列未连接，跳过班次变更通知", "workingWeekID", ww.ID, "type", eventType)
		return
	}

	event := domain.ShiftEvent{
		ID:            uuid.New(),
		Type:          eventType,
		WorkingWeekID: ww.ID,
		Shift:         shift,
		OccurredAt:    time.Now(),
	}
	if err := h.publish(ctx, ShiftEventQueue, event); err != nil {
		slog.Error("发布班次变更事件失败", "eventID", event.ID, "error", err)
	}

	if h.config.Email.NotifyTo == "" {
		return
	}

	action := "新增"
	if eventType == domain.ShiftEventRemoved {
		action = "删除"
	}

	mailMessage := domain.MailMessage{
		Type: "shift_changed",
		To:   h.config.Email.NotifyTo,
		Data: domain.ShiftChangedMailData{
			WorkingWeekName: ww.Name,
			Action:          action,
			Weekday:         utils.FormatWeekday(shift.Weekday),
			StartTime:       shift.StartTime,
			EndTime:         shift.EndTime,
			WeeklyDuration:  weeklyDuration.String(),
		},
	}
	if err := h.publish(ctx, EmailQueue, mailMessage); err != nil {
		slog.Error("发送班次变更邮件到消息队列失败", "eventID", event.ID, "error", err)
	}
}
