package main

import (
	"context"
	"encoding/gob"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sysu-ecnc-dev/working-week/backend/internal/config"
	"github.com/wneessen/go-mail"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		return
	}

	client, err := newMailClient(cfg)
	if err != nil {
		logger.Error("无法连接到邮件服务器", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// 令 gob 注册 mail.Msg 类型，方便后续的解码
	gob.Register(mail.NewMsg())

	queue, err := openEmailQueue(cfg)
	if err != nil {
		logger.Error("无法订阅邮件队列", slog.String("error", err.Error()))
		return
	}
	defer queue.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	w := &worker{
		logger: logger,
		sender: client,
		from:   cfg.Email.SMTP.Username,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.run(ctx, queue.deliveries)
	}()

	logger.Info("等待消息...（按 CTRL+C 退出）")
	<-sigChan

	logger.Info("正在关闭 mail worker...")
	cancel()
	wg.Wait()
	logger.Info("mail worker 已成功关闭")
}
