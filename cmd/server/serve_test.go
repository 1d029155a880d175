package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowServer держит запрос, пока тест не закроет release.
func slowServer(t *testing.T) (*http.Server, net.Listener, chan struct{}, chan struct{}) {
	t.Helper()
	entered := make(chan struct{})
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusOK)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return &http.Server{Handler: mux}, ln, entered, release
}

func TestServe_WaitsForInFlightRequest(t *testing.T) {
	server, ln, entered, release := slowServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	served := make(chan error, 1)
	go func() { served <- serve(ctx, server, ln, 5*time.Second) }()

	responses := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err != nil {
			responses <- 0
			return
		}
		resp.Body.Close()
		responses <- resp.StatusCode
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("request did not reach the handler")
	}

	cancel()

	// Пока запрос не завершён, serve не должен возвращаться.
	assert.Never(t, func() bool { return len(served) > 0 }, 200*time.Millisecond, 10*time.Millisecond)

	close(release)

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after the request finished")
	}
	assert.Equal(t, http.StatusOK, <-responses)
}

func TestServe_ShutdownTimeout(t *testing.T) {
	server, ln, entered, release := slowServer(t)
	defer close(release)
	ctx, cancel := context.WithCancel(context.Background())

	served := make(chan error, 1)
	go func() { served <- serve(ctx, server, ln, 50*time.Millisecond) }()
	go func() {
		if resp, err := http.Get("http://" + ln.Addr().String() + "/slow"); err == nil {
			resp.Body.Close()
		}
	}()

	<-entered
	cancel()

	select {
	case err := <-served:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("serve ignored the shutdown timeout")
	}
}

func TestServe_ListenerError(t *testing.T) {
	server, ln, _, release := slowServer(t)
	defer close(release)
	require.NoError(t, ln.Close())

	err := serve(context.Background(), server, ln, time.Second)

	assert.Error(t, err)
}
