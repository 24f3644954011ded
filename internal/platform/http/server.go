// Package http はHTTPサーバー共通の設定を提供します。
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// NewServer はタイムアウトを明示したHTTPサーバーを作成します。
//
// 設定:
//   - ReadHeaderTimeout: ヘッダー受信の最大時間（Slowloris対策）
//   - ReadTimeout / WriteTimeout: PNG描画を含むリクエスト全体の上限
//   - IdleTimeout: keep-alive接続の維持期間
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}

// Serve はctxがキャンセルされるまでsrvを動かし、その後gracePeriod以内に停止します。
func Serve(ctx context.Context, srv *http.Server, gracePeriod time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracePeriod)
	defer cancel()
	slog.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
