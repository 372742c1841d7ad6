package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/sysu-ecnc-dev/working-week/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// queuedMail 与 domain.MailMessage 对应，Data 按邮件类型延迟解析
type queuedMail struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

// buildMail 根据队列中的消息构建邮件
func buildMail(from string, body []byte) (*mail.Msg, error) {
	var queued queuedMail
	if err := json.Unmarshal(body, &queued); err != nil {
		return nil, fmt.Errorf("邮件信息反序列化失败: %w", err)
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := m.To(queued.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}

	switch queued.Type {
	case "shift_changed":
		var data domain.ShiftChangedMailData
		if err := json.Unmarshal(queued.Data, &data); err != nil {
			return nil, fmt.Errorf("邮件数据反序列化失败: %w", err)
		}
		if err := m.SetBodyHTMLTemplate(templates.Lookup("shift_changed_email.html"), data); err != nil {
			return nil, fmt.Errorf("无法设置邮件正文: %w", err)
		}
		m.Subject(fmt.Sprintf("ECNC 工作周 - %s 班次变更", data.WorkingWeekName))
	default:
		return nil, fmt.Errorf("不支持的邮件类型 %q", queued.Type)
	}

	return m, nil
}
