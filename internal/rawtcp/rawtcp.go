// Package rawtcp has the byte-forwarding connection handlers used by the
// tcplistener command: an echo loop, a greeter and a one-shot client.
// None of them parses HTTP.
package rawtcp

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// ReadSize is how much a handler reads from a connection in one go.
const ReadSize = 1024

// ConnHandler handles one accepted connection.
type ConnHandler func(rw io.ReadWriter) error

// Echo writes back whatever one read returns.
func Echo(rw io.ReadWriter) error {
	buf := make([]byte, ReadSize)
	n, err := rw.Read(buf)
	if n == 0 {
		return err
	}
	_, err = rw.Write(buf[:n])
	return err
}

// Greet reads one message and answers "Hello, <message>" with the message
// trimmed of surrounding whitespace.
func Greet(rw io.ReadWriter) error {
	buf := make([]byte, ReadSize)
	n, err := rw.Read(buf)
	if n == 0 {
		return err
	}
	text, _, terr := transform.String(runes.ReplaceIllFormed(), string(buf[:n]))
	if terr != nil {
		return terr
	}
	name := strings.TrimSpace(text)
	_, err = fmt.Fprintf(rw, "Hello, %s", name)
	return err
}

// Serve accepts on ln and runs h on each connection in turn, closing it
// afterwards. It returns when Accept fails.
func Serve(ln net.Listener, h ConnHandler, log zerolog.Logger) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("new connection established")

		if err := h(conn); err != nil && err != io.EOF {
			log.Error().Err(err).Msg("connection failed")
		}
		conn.Close()
	}
}

// Call dials addr, sends msg and waits for exactly replySize bytes back.
// A peer that closes early yields io.ErrUnexpectedEOF.
func Call(addr string, msg []byte, replySize int, timeout time.Duration) ([]byte, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if timeout > 0 {
		conn.SetDeadline(time.Now().Add(timeout))
	}

	if _, err := conn.Write(msg); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	reply := make([]byte, replySize)
	if _, err := io.ReadFull(conn, reply); err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	return reply, nil
}
