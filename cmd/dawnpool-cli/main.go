package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dawnzzz/dawnpool/logger"
	"github.com/dawnzzz/dawnpool/redis/client"
)

var (
	host      string
	port      int
	keepalive int
)

func main() {
	flag.StringVar(&host, "h", "localhost", "the host of dawnpool server")
	flag.IntVar(&port, "p", 6179, "the port of dawnpool server")
	flag.IntVar(&keepalive, "keepalive", 0, "heartbeat timeout in seconds, 0 disables heartbeat")
	flag.Parse()

	addr := fmt.Sprintf("%v:%v", host, port)

	c, err := client.MakeClient(addr, keepalive)
	if err != nil {
		logger.Fatalf("make client err, %v", err)
	}
	c.Start()
	defer c.Close()

	c.RunCmdLine(os.Stdin, os.Stdout)
}
