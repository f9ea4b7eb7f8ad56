package lifecycle

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farminventory/internal/pkg/logger"
)

func newServer(addr string) *http.Server {
	return &http.Server{Addr: addr, Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
}

func runUntilCancelled(t *testing.T, s *Supervisor) int {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case code := <-done:
		return code
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
		return -1
	}
}

func TestRun_CleanShutdownClosesInReverseOrder(t *testing.T) {
	s := New(newServer("127.0.0.1:0"), logger.Nop(), time.Second)
	var mu sync.Mutex
	var order []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}
	s.OnShutdown("tracing", false, record("tracing"))
	s.OnShutdown("mongodb", true, record("mongodb"))

	code := runUntilCancelled(t, s)

	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"mongodb", "tracing"}, order)
}

func TestRun_CriticalCloseFailureExitsOne(t *testing.T) {
	s := New(newServer("127.0.0.1:0"), logger.Nop(), time.Second)
	s.OnShutdown("mongodb", true, func(context.Context) error { return errors.New("close failed") })

	assert.Equal(t, 1, runUntilCancelled(t, s))
}

func TestRun_NonCriticalCloseFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	s := New(newServer("127.0.0.1:0"), logger.NewWithWriter("info", &buf), time.Second)
	s.OnShutdown("redis", false, func(context.Context) error { return errors.New("redis gone") })

	assert.Equal(t, 0, runUntilCancelled(t, s))
	assert.Contains(t, buf.String(), "redis gone")
}

func TestRun_ListenFailureExitsOne(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	closed := false
	s := New(newServer(taken.Addr().String()), logger.Nop(), time.Second)
	s.OnShutdown("mongodb", true, func(context.Context) error { closed = true; return nil })

	assert.Equal(t, 1, s.Run(context.Background()))
	assert.True(t, closed, "resources are still released")
}

func TestGo_RecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	log := logger.NewWithWriter("error", &syncWriter{mu: &mu, w: &buf})
	s := New(newServer("127.0.0.1:0"), log, time.Second)

	done := make(chan struct{})
	s.Go(context.Background(), "boom", func(context.Context) {
		defer close(done)
		panic("background kaboom")
	})
	<-done

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return bytes.Contains(buf.Bytes(), []byte("background kaboom"))
	}, time.Second, 10*time.Millisecond)
}

type syncWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
