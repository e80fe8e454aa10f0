package main

import (
	"flag"
	"net"
	"os"
	"time"

	"github.com/Brownie44l1/shipping-http/internal/rawtcp"
	"github.com/Brownie44l1/shipping-http/internal/server"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:3000", "listen address, or the server address with -client")
	greet := flag.Bool("greet", false, `answer "Hello, <input>" instead of echoing`)
	client := flag.Bool("client", false, "send -message to -addr and print the reply instead of listening")
	message := flag.String("message", "Hello", "message sent in client mode")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := server.NewLogger(os.Stdout, *debug, true)

	if *client {
		reply, err := rawtcp.Call(*addr, []byte(*message), len(*message), 5*time.Second)
		if err != nil {
			logger.Fatal().Err(err).Str("addr", *addr).Msg("call failed")
		}
		logger.Info().Str("reply", string(reply)).Msg("got response from server")
		return
	}

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Fatal().Err(err).Msg("listen failed")
	}
	defer listener.Close()

	h, mode := rawtcp.Echo, "echo"
	if *greet {
		h, mode = rawtcp.Greet, "greet"
	}
	logger.Info().Str("addr", *addr).Str("mode", mode).Msg("server is running")

	if err := rawtcp.Serve(listener, h, logger); err != nil {
		logger.Error().Err(err).Msg("accept failed")
	}
}
