package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/config"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/handler"
	"github.com/wneessen/go-mail"
)

// newMailClient 创建邮件客户端并确认能连上 SMTP 服务器
func newMailClient(cfg *config.Config) (*mail.Client, error) {
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("无法创建邮件客户端: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(ctx); err != nil {
		return nil, err
	}

	return client, nil
}

type emailQueue struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	deliveries <-chan amqp.Delivery
}

// openEmailQueue 连接 RabbitMQ 并开始消费邮件队列，消息需要手动确认
func openEmailQueue(cfg *config.Config) (*emailQueue, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		return nil, fmt.Errorf("无法连接到 RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("无法创建通道: %w", err)
	}

	// 持久化、不自动删除、不独占
	q, err := ch.QueueDeclare(handler.EmailQueue, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("无法声明队列: %w", err)
	}

	// 消费者标识由 RabbitMQ 分配，关闭自动确认
	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("无法消费消息: %w", err)
	}

	return &emailQueue{conn: conn, ch: ch, deliveries: deliveries}, nil
}

func (q *emailQueue) Close() {
	q.ch.Close()
	q.conn.Close()
}

type mailSender interface {
	DialAndSend(messages ...*mail.Msg) error
}

type outcome int

const (
	outcomeAck     outcome = iota
	outcomeDiscard         // 消息本身有问题，重试也没用
	outcomeRequeue         // 发送失败，重新入队
)

type worker struct {
	logger *slog.Logger
	sender mailSender
	from   string
}

func (w *worker) run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-deliveries:
			if !ok {
				w.logger.Error("邮件队列已关闭")
				return
			}
			w.settle(msg, w.handle(msg.Body))
		}
	}
}

func (w *worker) handle(body []byte) outcome {
	w.logger.Info("收到消息", slog.String("message", string(body)))

	m, err := buildMail(w.from, body)
	if err != nil {
		w.logger.Error("无法构建邮件", slog.String("error", err.Error()))
		return outcomeDiscard
	}

	if err := w.sender.DialAndSend(m); err != nil {
		w.logger.Error("邮件发送失败", slog.String("error", err.Error()))
		return outcomeRequeue
	}

	return outcomeAck
}

func (w *worker) settle(msg amqp.Delivery, o outcome) {
	var err error
	switch o {
	case outcomeAck:
		err = msg.Ack(false)
	case outcomeDiscard:
		err = msg.Nack(false, false)
	case outcomeRequeue:
		err = msg.Nack(false, true)
	}
	if err != nil {
		w.logger.Error("无法确认消息", slog.String("error", err.Error()))
	}
}
