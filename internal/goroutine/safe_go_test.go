package goroutine

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/starwars-backend/internal/logger"
)

func TestSafeGo_RecoversPanic(t *testing.T) {
	logger.Init("error")
	logger.Log.SetOutput(io.Discard)
	hook := test.NewLocal(logger.Log)

	done := make(chan struct{})
	SafeGo(context.Background(), "shutdown-watcher", func(context.Context) {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not finish")
	}

	assert.Eventually(t, func() bool {
		entry := hook.LastEntry()
		return entry != nil && entry.Data["goroutine"] == "shutdown-watcher"
	}, time.Second, 10*time.Millisecond)
}

func TestSafeGo_PassesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan error, 1)

	SafeGo(ctx, "waiter", func(ctx context.Context) {
		<-ctx.Done()
		got <- ctx.Err()
	})
	cancel()

	select {
	case err := <-got:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("context was not propagated")
	}
}
