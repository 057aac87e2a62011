package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// StopWithTimeout 收到中断信号后执行 fn，fn 需在 timeout 内结束
func StopWithTimeout(timeout time.Duration, fn func(ctx context.Context) error) error {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done
	return Shutdown(timeout, fn)
}

// Shutdown 以超时上下文执行 fn
func Shutdown(timeout time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fn(ctx)
}
