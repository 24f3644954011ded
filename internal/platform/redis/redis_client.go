// Package redis はRedisクライアントの生成を提供します。
package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options はRedis接続設定です。
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Pinger は接続確認に使うメソッドだけを持つインターフェースです。
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// NewRedisClient はクライアントを生成し、疎通を確認します。
// 疎通できない場合はクライアントを閉じてエラーを返します。
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := Ping(ctx, rdb); err != nil {
		slog.Error("Redis connection failed", "address", opts.Addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", opts.Addr)
	return rdb, nil
}

// Ping は3秒以内に応答があるかを確認します。
func Ping(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return p.Ping(ctx).Err()
}
