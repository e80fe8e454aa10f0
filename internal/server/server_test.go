package server

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/shipping-http/internal/handler"
	"github.com/Brownie44l1/shipping-http/internal/request"
	"github.com/Brownie44l1/shipping-http/internal/response"
	"github.com/Brownie44l1/shipping-http/internal/router"
	"github.com/Brownie44l1/shipping-http/internal/store"
)

func startServer(t *testing.T, static handler.Handler) *Server {
	t.Helper()

	if static == nil {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>home</h1>"), 0o644))
		static = handler.NewStatic(handler.DirFiles{Root: root})
	}
	orders := store.NewOrders([]store.OrderStatus{
		{OrderID: 1, OrderDate: "21 Jan 2020", OrderStatus: "Delivered"},
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.ReadTimeout = 2 * time.Second
	cfg.WriteTimeout = 2 * time.Second

	srv := New(cfg, router.New(static, handler.NewAPI(orders)), NullLogger())

	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		assert.NoError(t, srv.Shutdown(ctx))
		assert.ErrorIs(t, <-served, ErrServerClosed)
	})

	require.Eventually(t, func() bool { return srv.Addr() != nil }, time.Second, 5*time.Millisecond)
	return srv
}

func exchange(addr, raw string) (string, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(raw)); err != nil {
		return "", err
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	data, err := io.ReadAll(conn)
	return string(data), err
}

func roundTrip(t *testing.T, srv *Server, raw string) string {
	t.Helper()

	got, err := exchange(srv.Addr().String(), raw)
	require.NoError(t, err)
	return got
}

func TestServeStatic(t *testing.T) {
	srv := startServer(t, nil)

	got := roundTrip(t, srv, "GET / HTTP/1.1\r\nHost: localhost:3000\r\n\r\n")
	assert.Equal(t,
		"HTTP/1.1 200 OK\r\nContent-Type: text/html\r\nContent-Length: 13\r\n\r\n<h1>home</h1>",
		got)

	got = roundTrip(t, srv, "GET /missing.css HTTP/1.1\r\n\r\n")
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\nContent-Type: text/html\r\nContent-Length: 0\r\n\r\n", got)
}

func TestServeAPI(t *testing.T) {
	srv := startServer(t, nil)

	got := roundTrip(t, srv, "GET /api/shipping/orders HTTP/1.1\r\nHost: localhost:3000\r\n\r\n")
	require.True(t, strings.HasPrefix(got, "HTTP/1.1 200 OK\r\n"), got)
	assert.Contains(t, got, "Content-Type: application/json\r\n")

	_, body, found := strings.Cut(got, "\r\n\r\n")
	require.True(t, found)
	assert.JSONEq(t, `[{"order_id":1,"order_date":"21 Jan 2020","order_status":"Delivered"}]`, body)
}

func TestServeNonGET(t *testing.T) {
	srv := startServer(t, nil)

	got := roundTrip(t, srv, "POST /api/shipping/orders HTTP/1.1\r\n\r\n{}")
	assert.True(t, strings.HasPrefix(got, "HTTP/1.1 404 Not Found\r\n"), got)
	assert.True(t, strings.HasSuffix(got, handler.NotFoundPage))
}

func TestServeMalformed(t *testing.T) {
	srv := startServer(t, nil)

	got := roundTrip(t, srv, "GET HTTP\r\n\r\n")
	assert.Equal(t,
		"HTTP/1.1 400 Bad Request\r\nContent-Type: text/html\r\nContent-Length: 11\r\n\r\nBad Request",
		got)

	// The server keeps serving afterwards
	got = roundTrip(t, srv, "GET / HTTP/1.1\r\n\r\n")
	assert.True(t, strings.HasPrefix(got, "HTTP/1.1 200 OK\r\n"))

	assert.Eventually(t, func() bool {
		return srv.Stats().RequestsTotal == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), srv.Stats().BadRequests)
}

func TestServeEmptyConnection(t *testing.T) {
	srv := startServer(t, nil)

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	conn.Close()

	got := roundTrip(t, srv, "GET / HTTP/1.1\r\n\r\n")
	assert.True(t, strings.HasPrefix(got, "HTTP/1.1 200 OK\r\n"))
}

func TestServePanicRecovered(t *testing.T) {
	boom := handler.HandlerFunc(func(*request.Request) *response.Response {
		panic("boom")
	})
	srv := startServer(t, boom)

	got := roundTrip(t, srv, "GET /anything HTTP/1.1\r\n\r\n")
	assert.True(t, strings.HasPrefix(got, "HTTP/1.1 500 Internal Server Error\r\n"), got)

	assert.Eventually(t, func() bool {
		return srv.Stats().ServerErrors == 1
	}, time.Second, 5*time.Millisecond)
}

func TestServeConcurrent(t *testing.T) {
	srv := startServer(t, nil)

	addr := srv.Addr().String()

	var wg sync.WaitGroup
	results := make([]string, 20)
	errs := make([]error, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = exchange(addr, "GET /api/shipping/orders/1 HTTP/1.1\r\n\r\n")
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		require.NoError(t, errs[i])
		assert.True(t, strings.HasPrefix(got, "HTTP/1.1 200 OK\r\n"), got)
	}
}

func TestShutdownIdempotent(t *testing.T) {
	srv := New(DefaultConfig(), router.New(handler.NotFound{}, handler.NotFound{}), NullLogger())
	assert.Nil(t, srv.Addr())
	assert.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestServeAfterShutdown(t *testing.T) {
	srv := New(DefaultConfig(), router.New(handler.NotFound{}, handler.NotFound{}), NullLogger())
	require.NoError(t, srv.Shutdown(context.Background()))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	select {
	case err := <-served:
		assert.ErrorIs(t, err, ErrServerClosed)
	case <-time.After(2 * time.Second):
		ln.Close()
		t.Fatal("Serve kept accepting after Shutdown")
	}

	// The listener was released
	_, err = net.Dial("tcp", ln.Addr().String())
	assert.Error(t, err)
	assert.Nil(t, srv.Addr())
}

func TestBufferPool(t *testing.T) {
	buf := GetBuffer(1024)
	assert.Len(t, buf, 1024)
	PutBuffer(buf)

	buf = GetBuffer(100)
	assert.Len(t, buf, 100)
	assert.Equal(t, smallBufferSize, cap(buf))
	PutBuffer(buf)

	buf = GetBuffer(4096)
	assert.Equal(t, largeBufferSize, cap(buf))
	PutBuffer(buf)

	buf = GetBuffer(1 << 16)
	assert.Len(t, buf, 1<<16)
	PutBuffer(buf)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest(response.StatusOK, 10*time.Millisecond)
	m.RecordRequest(response.StatusNotFound, 20*time.Millisecond)
	m.RecordRequest(response.StatusInternalServerError, 30*time.Millisecond)
	m.RecordRequest(response.StatusBadRequest, 20*time.Millisecond)
	m.RecordRequest("999", 20*time.Millisecond)

	s := m.Snapshot()
	assert.Equal(t, int64(5), s.RequestsTotal)
	assert.Equal(t, int64(1), s.Served)
	assert.Equal(t, int64(1), s.BadRequests)
	assert.Equal(t, int64(2), s.NotFound)
	assert.Equal(t, int64(1), s.ServerErrors)
	assert.Equal(t, 20*time.Millisecond, s.AverageLatency)
	assert.Equal(t, 30*time.Millisecond, s.MaxLatency)
}

func TestLogger(t *testing.T) {
	var sb strings.Builder
	log := NewLogger(&sb, false, false)
	log.Debug().Msg("hidden")
	LogStats(log, MetricsSnapshot{RequestsTotal: 7})

	out := sb.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"requests_total":7`)
	assert.Contains(t, out, `"message":"server stats"`)
}
