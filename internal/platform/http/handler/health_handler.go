// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check は依存サービス1つ分の疎通確認です。
// Requiredがfalseの依存（キャッシュなど）は失敗しても503にしません。
type Check struct {
	Name     string
	Required bool
	Ping     func(ctx context.Context) error
}

// Health は /healthz エンドポイントを処理します。
type Health struct {
	checks  []Check
	timeout time.Duration
}

// NewHealth は指定された依存を確認するHealthを作成します。
func NewHealth(checks ...Check) *Health {
	return &Health{checks: checks, timeout: 2 * time.Second}
}

// Handle はHTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func (h *Health) Handle(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	status, results := h.run(c.Request.Context())
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	if c.Request.Method == http.MethodHead {
		c.Status(code)
		return
	}
	body := gin.H{"status": status}
	if len(results) > 0 {
		body["checks"] = results
	}
	c.JSON(code, body)
}

func (h *Health) run(ctx context.Context) (string, map[string]string) {
	if len(h.checks) == 0 {
		return "ok", nil
	}
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	status := "ok"
	results := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		if err := chk.Ping(ctx); err != nil {
			results[chk.Name] = "down"
			if chk.Required {
				status = "unavailable"
			}
			continue
		}
		results[chk.Name] = "ok"
	}
	return status, results
}
