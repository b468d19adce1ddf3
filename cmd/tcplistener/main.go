// tcplistener prints every request it receives, as parsed by the server's
// request reader, and answers each one with a short plain-text response.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/Brownie44l1/httpd/internal/request"
	"github.com/Brownie44l1/httpd/internal/response"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:42069", "listen address")
	flag.Parse()

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "listen:", err)
		os.Exit(1)
	}
	defer listener.Close()
	fmt.Println("Listening on", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			fmt.Println("Accept error:", err)
			continue
		}

		go handleConnection(conn)
	}
}

func handleConnection(conn net.Conn) {
	defer conn.Close()

	br := bufio.NewReader(conn)
	for {
		req, err := request.ParseRequest(br)
		if err != nil {
			if !errors.Is(err, request.ErrConnectionClosed) {
				fmt.Println("Parse error:", err)
			}
			return
		}
		dump(os.Stdout, req)

		resp := response.Text(response.StatusOK, "Hello from your HTTP server!\n")
		if req.WantsClose() {
			resp.Headers.Set("Connection", "close")
		}
		if _, err := resp.WriteTo(conn); err != nil || req.WantsClose() {
			return
		}
	}
}

func dump(w io.Writer, req *request.Request) {
	fmt.Fprintln(w, "Request Line")
	fmt.Fprintf(w, "Method: %s\n", req.Method)
	fmt.Fprintf(w, "Path: %s\n", req.Path)
	fmt.Fprintf(w, "Version: %s\n", req.Version)

	fmt.Fprintln(w, "Headers")
	for _, name := range req.Headers.Keys() {
		fmt.Fprintf(w, "%s: %s\n", name, req.Header(name))
	}
	fmt.Fprintln(w, "Body")
	fmt.Fprintf(w, "%s\n", req.Body)
}
