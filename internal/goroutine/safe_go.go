package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/starwars-backend/internal/logger"
)

// SafeGo запускает горутину, panic внутри неё логируется и не роняет процесс.
// name попадает в лог, чтобы было видно, какая из фоновых задач упала.
func SafeGo(ctx context.Context, name string, fn func(context.Context)) {
	go func() {
		defer Recover(ctx, name)
		fn(ctx)
	}()
}

// Recover перехватывает panic, вызывать через defer.
func Recover(ctx context.Context, name string) {
	if r := recover(); r != nil {
		logger.FromContext(ctx).WithFields(logrus.Fields{
			"goroutine": name,
			"panic":     r,
			"stack":     string(debug.Stack()),
		}).Error("panic in goroutine")
	}
}
