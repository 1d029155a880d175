package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ignatzorin/starwars-backend/internal/goroutine"
)

// serve обслуживает ln, пока не отменён ctx, затем останавливает сервер
// и возвращается только после того, как Shutdown дождался текущих запросов.
func serve(ctx context.Context, server *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	var shutdownErr error
	done := make(chan struct{})

	goroutine.SafeGo(ctx, "http-shutdown", func(ctx context.Context) {
		defer close(done)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr = server.Shutdown(shutdownCtx)
	})

	if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	<-done
	if shutdownErr != nil {
		return fmt.Errorf("http shutdown: %w", shutdownErr)
	}
	return nil
}
