package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/working-week/backend/internal/config"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/handler"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/repository"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/seed"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/utils"
	"github.com/sysu-ecnc-dev/working-week/backend/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入真实工作周, 2: 插入随机工作周, 3: 签发管理员令牌)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 签发令牌不需要数据库
	if op == 3 {
		expiration := time.Now().Add(time.Duration(cfg.JWT.Expiration) * time.Hour)
		token, err := handler.IssueToken(cfg.JWT.Secret, cfg.Admin.Username, expiration)
		if err != nil {
			logger.Error("无法签发令牌", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	if err := migrations.Up(dbpool); err != nil {
		logger.Error("无法执行数据库迁移", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		seed.SeedRealData(repo)
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的工作周数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				ww := utils.GenerateRandomWorkingWeek()
				if err := repo.CreateWorkingWeek(ww); err != nil {
					slog.Error("无法插入工作周", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入工作周成功", slog.Int("count", n-cnt))
		}
	default:
		slog.Error("指定的操作非法")
	}
}
