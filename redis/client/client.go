package client

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dawnzzz/dawnpool/interface/redis"
	"github.com/dawnzzz/dawnpool/lib/sync/wait"
	"github.com/dawnzzz/dawnpool/logger"
	"github.com/dawnzzz/dawnpool/redis/parser"
	"github.com/dawnzzz/dawnpool/redis/protocol/reply"
	"github.com/pkg/errors"
)

const (
	created = iota
	running
	closed
)

// Client 流水线式的客户端，写协程发送请求，读协程按顺序匹配响应
type Client struct {
	conn        net.Conn      // 与服务器的tcp连接
	connMu      sync.Mutex    // 发送请求与重连互斥
	pendingReqs chan *request // 等待发送的请求
	waitingReqs chan *request // 等待服务器响应的请求
	ticker      *time.Ticker  // 发送心跳的计时器
	closing     chan struct{}
	addr        string

	curDBIndex int // 当前数据库

	mu      sync.RWMutex
	status  int // 客户端状态（创建/运行/关闭）
	working sync.WaitGroup

	keepalive time.Duration // 心跳间隔的两倍
}

type request struct {
	args      [][]byte    // 上行参数
	reply     redis.Reply // 收到的返回值
	heartbeat bool        // 标记是否是心跳请求
	waiting   *wait.Wait  // 调用协程发送请求后通过 waitgroup 等待请求异步处理完成
	err       error
}

const (
	chanSize = 256
	maxWait  = 3 * time.Second
)

// MakeClient 连接服务器，keepalive 为心跳超时时间（秒），0 表示不发送心跳
func MakeClient(addr string, keepalive int) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", addr)
	}

	return &Client{
		conn:        conn,
		pendingReqs: make(chan *request, chanSize),
		waitingReqs: make(chan *request, chanSize),
		closing:     make(chan struct{}),
		addr:        addr,
		status:      created,
		keepalive:   time.Second * time.Duration(keepalive),
	}, nil
}

// Start starts asynchronous goroutines
func (client *Client) Start() {
	client.mu.Lock()
	client.status = running
	client.mu.Unlock()

	go client.handleWrite()
	go client.handleRead(client.conn)

	if client.keepalive > 0 {
		client.ticker = time.NewTicker(client.keepalive / 2)
		go client.heartbeat()
	}
}

// Close stops asynchronous goroutines and close connection
func (client *Client) Close() {
	client.mu.Lock()
	if client.status == closed {
		client.mu.Unlock()
		return
	}
	client.status = closed
	client.mu.Unlock()

	close(client.closing)
	if client.ticker != nil {
		client.ticker.Stop()
	}

	// 等待正在发送的请求结束，之后不会再有新的请求
	client.working.Wait()
	close(client.pendingReqs)

	client.connMu.Lock()
	_ = client.conn.Close()
	client.connMu.Unlock()
}

func (client *Client) StatusClosed() bool {
	client.mu.RLock()
	defer client.mu.RUnlock()
	return client.status == closed
}

// Send sends a request to server and waits for its reply
func (client *Client) Send(args [][]byte) redis.Reply {
	req := &request{
		args:    args,
		waiting: &wait.Wait{},
	}
	if err := client.enqueue(req); err != nil {
		return reply.MakeErrReply(err.Error())
	}
	defer client.working.Done()

	if req.waiting.WaitWithTimeout(maxWait) {
		return reply.MakeErrReply("server time out")
	}
	if req.err != nil {
		return reply.MakeErrReply("request failed: " + req.err.Error())
	}

	if !reply.IsErrorReply(req.reply) && strings.EqualFold(string(args[0]), "select") && len(args) > 1 {
		curDBIndex, _ := strconv.Atoi(string(args[1]))
		client.curDBIndex = curDBIndex
	}

	return req.reply
}

// enqueue 成功时 working 计数加一，调用方负责 Done
func (client *Client) enqueue(req *request) error {
	client.mu.RLock()
	defer client.mu.RUnlock()
	if client.status != running {
		return errors.New("client closed")
	}

	req.waiting.Add(1)
	client.working.Add(1)
	client.pendingReqs <- req
	return nil
}

func (client *Client) handleWrite() {
	for req := range client.pendingReqs {
		client.doRequest(req)
	}
}

func (client *Client) doRequest(req *request) {
	bytes := reply.MakeMultiBulkStringReply(req.args).ToBytes()

	client.connMu.Lock()
	defer client.connMu.Unlock()

	// 最多失败重试3次
	var err error
	for i := 0; i < 3; i++ {
		_, err = client.conn.Write(bytes)
		if err == nil || (!strings.Contains(err.Error(), "timeout") && // only retry timeout
			!strings.Contains(err.Error(), "deadline exceeded")) {
			break
		}
	}

	if err == nil {
		client.waitingReqs <- req
	} else {
		req.err = err
		req.waiting.Done()
	}
}

func (client *Client) handleRead(conn net.Conn) {
	for payload := range parser.ParseStream(conn) {
		if payload.Err != nil {
			if client.StatusClosed() {
				return
			}
			client.reconnect()
			return
		}
		client.finishRequest(payload.Data)
	}
}

func (client *Client) finishRequest(r redis.Reply) {
	defer func() {
		if err := recover(); err != nil {
			logger.Error(err, string(debug.Stack()))
		}
	}()

	select {
	case req := <-client.waitingReqs:
		req.reply = r
		req.waiting.Done()
	default:
		logger.Warn("drop reply without request: ", r.DataString())
	}
}

// reconnect 关闭旧连接，让等待中的请求失败，然后重新连接
func (client *Client) reconnect() {
	logger.Info("reconnect with: " + client.addr)

	client.connMu.Lock()
	_ = client.conn.Close() // ignore possible errors from repeated closes

	for drained := false; !drained; {
		select {
		case req := <-client.waitingReqs:
			req.err = errors.New("connection closed")
			req.waiting.Done()
		default:
			drained = true
		}
	}

	var conn net.Conn
	for i := 0; i < 3; i++ {
		var err error
		conn, err = net.Dial("tcp", client.addr)
		if err == nil {
			break
		}
		logger.Error("reconnect error: " + err.Error())
		time.Sleep(time.Second)
	}
	if conn == nil { // reach max retry, abort
		client.connMu.Unlock()
		client.Close()
		return
	}
	client.conn = conn
	client.connMu.Unlock()

	go client.handleRead(conn)
}

func (client *Client) heartbeat() {
	for {
		select {
		case <-client.ticker.C:
			client.doHeartbeat()
		case <-client.closing:
			return
		}
	}
}

func (client *Client) doHeartbeat() {
	req := &request{
		args:      [][]byte{[]byte("PING")},
		heartbeat: true,
		waiting:   &wait.Wait{},
	}
	if err := client.enqueue(req); err != nil {
		return
	}
	defer client.working.Done()
	req.waiting.WaitWithTimeout(maxWait)
}

// RunCmdLine 交互式命令行，从 in 读取命令，结果写到 out，输入 exit 退出
func (client *Client) RunCmdLine(in io.Reader, out io.Writer) {
	reader := bufio.NewReader(in)
	for {
		if client.StatusClosed() {
			fmt.Fprintf(out, "server is closed. exiting...\nbye bye\n")
			return
		}

		if client.curDBIndex == 0 {
			fmt.Fprintf(out, "%s>", client.addr)
		} else {
			fmt.Fprintf(out, "%s[%d]>", client.addr, client.curDBIndex)
		}

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if err != io.EOF {
				fmt.Fprintf(out, "%v\n", err)
			}
			return
		}
		line = strings.TrimRight(line, "\r\n")

		if strings.EqualFold(line, "exit") {
			fmt.Fprintf(out, "bye bye\n")
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		args := make([][]byte, len(fields))
		for i, field := range fields {
			args[i] = []byte(field)
		}

		fmt.Fprintln(out, client.Send(args).DataString())
	}
}
