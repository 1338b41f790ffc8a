package server

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/dawnzzz/dawnpool/config"
	database2 "github.com/dawnzzz/dawnpool/database"
	"github.com/dawnzzz/dawnpool/interface/database"
	"github.com/dawnzzz/dawnpool/lib/sync/atomic"
	"github.com/dawnzzz/dawnpool/logger"
	"github.com/dawnzzz/dawnpool/redis/connection"
	"github.com/dawnzzz/dawnpool/redis/parser"
	"github.com/dawnzzz/dawnpool/redis/protocol/reply"
)

var (
	unknownErrReplyBytes = []byte("-ERR unknown\r\n")
)

type Handler struct {
	activeConn  sync.Map // value记录activeConn的心跳
	db          database.DB
	closing     atomic.Boolean // refusing new client and new request
	closingChan chan struct{}  // 停止心跳检查计时器
}

// MakeHandler creates a Handler instance
func MakeHandler() *Handler {
	return MakeHandlerWithDB(database2.NewStandaloneServer(), config.Properties.Keepalive)
}

// MakeHandlerWithDB creates a Handler serving the given db
// keepalive 秒内没有收到请求的客户端会被关闭，0 表示不检查
func MakeHandlerWithDB(db database.DB, keepalive int) *Handler {
	h := &Handler{
		db:          db,
		closingChan: make(chan struct{}),
	}

	if keepalive > 0 {
		go h.checkActiveHeartbeat(time.Duration(keepalive) * time.Second)
	}

	return h
}

// closeClient 心跳超时和读错误都可能关闭连接，只有第一次生效
func (h *Handler) closeClient(client *connection.Connection) {
	if _, loaded := h.activeConn.LoadAndDelete(client); !loaded {
		return
	}
	_ = client.Close()
	h.db.AfterClientClose(client)
}

// touch 刷新心跳时间，已经被关闭的连接不会重新加入
func (h *Handler) touch(client *connection.Connection) {
	if last, ok := h.activeConn.Load(client); ok {
		h.activeConn.CompareAndSwap(client, last, time.Now())
	}
}

func isClosedErr(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) ||
		strings.Contains(err.Error(), "use of closed network connection")
}

func (h *Handler) Handle(ctx context.Context, conn net.Conn) {
	if h.closing.Get() {
		// closing handler refuse new connection
		_ = conn.Close()
		return
	}

	client := connection.NewConn(conn)
	log := logger.WithField("conn", client.ID().String())
	h.activeConn.Store(client, time.Now())

	ch := parser.ParseStream(conn)
	for payload := range ch {
		if payload.Err != nil {
			if isClosedErr(payload.Err) {
				h.closeClient(client)
				log.Info("connection closed: ", client.RemoteAddr())
				return
			}
			// protocol err
			errReply := reply.MakeErrReply(payload.Err.Error())
			if _, err := client.Write(errReply.ToBytes()); err != nil {
				h.closeClient(client)
				log.Info("connection closed: ", client.RemoteAddr())
				return
			}
			continue
		}
		if payload.Data == nil {
			log.Error("empty payload")
			continue
		}
		r, ok := payload.Data.(*reply.MultiBulkStringReply)
		if !ok || len(r.Args) == 0 {
			log.Error("require multi bulk protocol")
			continue
		}

		h.touch(client)

		result := h.db.Exec(client, r.Args)
		if result != nil {
			_, _ = client.Write(result.ToBytes())
		} else {
			_, _ = client.Write(unknownErrReplyBytes)
		}
	}

	// 解析因为协议错误结束
	h.closeClient(client)
	log.Info("connection closed: ", client.RemoteAddr())
}

func (h *Handler) Close() error {
	if h.closing.Get() {
		return nil
	}
	logger.Info("handler shutting down...")
	h.closing.Set(true)
	close(h.closingChan)

	var wg sync.WaitGroup
	h.activeConn.Range(func(key interface{}, val interface{}) bool { // close all active conn
		client := key.(*connection.Connection)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = client.Close()
		}()
		return true
	})
	wg.Wait()

	h.db.Close()
	return nil
}

func (h *Handler) checkActiveHeartbeat(keepalive time.Duration) {
	ticker := time.NewTicker(keepalive / 2) // 每keepalive/2检查一次客户端的心跳
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			h.activeConn.Range(func(key, value any) bool {
				if time.Now().After(value.(time.Time).Add(keepalive)) {
					// 心跳超时，关闭连接
					client := key.(*connection.Connection)
					logger.Infof("client %s heartbeat timeout", client.Name())
					h.closeClient(client)
				}
				return true
			})
		case <-h.closingChan:
			return
		}
	}
}
