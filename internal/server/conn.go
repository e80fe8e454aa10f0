package server

import (
	"fmt"
	"net"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Brownie44l1/shipping-http/internal/request"
	"github.com/Brownie44l1/shipping-http/internal/response"
)

// serveConn handles the single request on a connection, then closes it.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	start := time.Now()
	s.metrics.ActiveConnections.Add(1)
	defer s.metrics.ActiveConnections.Add(-1)

	log := s.Logger.With().
		Str("conn_id", uuid.NewString()).
		Str("client_ip", clientIP(conn)).
		Logger()

	if s.cfg.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}

	buf := GetBuffer(s.cfg.ReadBufferSize)
	defer PutBuffer(buf)

	raw, err := request.ReadMessage(conn, buf)
	if err != nil {
		// Nothing usable arrived; there is no one to answer.
		log.Debug().Err(err).Msg("connection dropped before request")
		return
	}

	if s.cfg.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}

	resp, werr := s.handleRequest(conn, raw, log)

	duration := time.Since(start)
	if resp != nil {
		s.metrics.RecordRequest(resp.StatusCode, duration)
	}

	if werr != nil {
		log.Error().Err(werr).Msg("write response failed")
		return
	}

	event := log.Info()
	if !resp.StatusCode.IsSuccess() {
		event = log.Warn()
	}
	event.
		Str("status", string(resp.StatusCode)).
		Int("read_bytes", len(raw)).
		Int("bytes", resp.ContentLength()).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("request handled")
}

// handleRequest decodes and routes raw with panic recovery. A panicking
// handler is answered with a 500.
func (s *Server) handleRequest(conn net.Conn, raw []byte, log zerolog.Logger) (resp *response.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("error", fmt.Sprint(r)).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered")
			resp = response.Error(response.StatusInternalServerError, "")
			_, err = resp.WriteTo(conn)
		}
	}()

	return s.router.Serve(raw, conn)
}

func clientIP(conn net.Conn) string {
	addr := conn.RemoteAddr()
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
