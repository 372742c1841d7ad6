package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/domain"
)

func workingWeekCacheKey(id int64) string {
	return fmt.Sprintf("working_week_%d", id)
}

// 缓存只是加速读取，redis 出错时退回数据库，不影响请求
func (h *Handler) getCachedWorkingWeek(ctx context.Context, id int64) (*domain.WorkingWeek, bool) {
	if h.redisClient == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	data, err := h.redisClient.Get(ctx, workingWeekCacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("读取工作周缓存失败", "id", id, "error", err)
		}
		return nil, false
	}

	ww := &domain.WorkingWeek{}
	if err := json.Unmarshal(data, ww); err != nil {
		slog.Warn("工作周缓存内容无效", "id", id, "error", err)
		return nil, false
	}

	return ww, true
}

func (h *Handler) cacheWorkingWeek(ctx context.Context, ww *domain.WorkingWeek) {
	if h.redisClient == nil {
		return
	}

	data, err := json.Marshal(ww)
	if err != nil {
		slog.Warn("序列化工作周失败", "id", ww.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	expiration := time.Duration(h.config.Redis.CacheExpiration) * time.Second
	if err := h.redisClient.Set(ctx, workingWeekCacheKey(ww.ID), data, expiration).Err(); err != nil {
		slog.Warn("写入工作周缓存失败", "id", ww.ID, "error", err)
	}
}

func (h *Handler) invalidateWorkingWeek(ctx context.Context, id int64) {
	if h.redisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, workingWeekCacheKey(id)).Err(); err != nil {
		slog.Warn("删除工作周缓存失败", "id", id, "error", err)
	}
}
