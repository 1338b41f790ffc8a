package client

import (
	"bytes"
	"net"
	"strings"
	"testing"

	"github.com/dawnzzz/dawnpool/redis/parser"
	"github.com/dawnzzz/dawnpool/redis/protocol/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoServer 把收到的第一个参数以外的参数原样返回，PING 返回 PONG
func echoServer(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				for payload := range parser.ParseStream(conn) {
					if payload.Err != nil {
						return
					}
					args := payload.Data.(*reply.MultiBulkStringReply).Args
					var r []byte
					switch strings.ToLower(string(args[0])) {
					case "ping":
						r = reply.MakePongStatusReply().ToBytes()
					case "select":
						r = reply.MakeOkReply().ToBytes()
					default:
						r = reply.MakeMultiBulkStringReply(args[1:]).ToBytes()
					}
					if _, err := conn.Write(r); err != nil {
						return
					}
				}
			}(conn)
		}
	}()

	return listener.Addr().String()
}

func TestClientSend(t *testing.T) {
	c, err := MakeClient(echoServer(t), 0)
	require.NoError(t, err)
	c.Start()
	defer c.Close()

	assert.Equal(t, "+PONG\r\n", string(c.Send([][]byte{[]byte("PING")}).ToBytes()))

	for i := 0; i < 100; i++ {
		member := []byte{byte('a' + i%26)}
		r := c.Send([][]byte{[]byte("ECHO"), member})
		multi, ok := r.(*reply.MultiBulkStringReply)
		require.True(t, ok, r.DataString())
		assert.Equal(t, member, multi.Args[0])
	}
}

func TestClientClose(t *testing.T) {
	c, err := MakeClient(echoServer(t), 1)
	require.NoError(t, err)
	c.Start()

	c.Close()
	c.Close()
	assert.True(t, c.StatusClosed())
	assert.True(t, reply.IsErrorReply(c.Send([][]byte{[]byte("PING")})))
}

func TestMakeClientDialError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	_, err = MakeClient(addr, 0)
	assert.Error(t, err)
}

func TestRunCmdLine(t *testing.T) {
	c, err := MakeClient(echoServer(t), 0)
	require.NoError(t, err)
	c.Start()
	defer c.Close()

	var out bytes.Buffer
	c.RunCmdLine(strings.NewReader("ping\n\nselect 2\necho x\nexit\nping\n"), &out)

	output := out.String()
	assert.Contains(t, output, "PONG")
	assert.Contains(t, output, "[2]>")
	assert.Contains(t, output, `1) "x"`)
	assert.True(t, strings.HasSuffix(output, "bye bye\n"))
	assert.Equal(t, 1, strings.Count(output, "PONG"))
}
