package tcp

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dawnzzz/dawnpool/config"
	"github.com/dawnzzz/dawnpool/interface/tcp"
	"github.com/dawnzzz/dawnpool/logger"
	"github.com/pkg/errors"
)

// ListenAndServeWithSignal 服务器开启监听,并且使用 signal 作为结束信号
func ListenAndServeWithSignal(handler tcp.Handler) error {
	closeChan := make(chan struct{})
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		logger.Infof("received signal %v", sig)
		close(closeChan)
	}()

	address := fmt.Sprintf("%v:%v", config.Properties.Bind, config.Properties.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", address)
	}

	logger.Infoln("tcp server is listening at:", address)
	ListenAndServe(listener, handler, closeChan)

	return nil
}

// ListenAndServe TCP 服务器应用层服务，closeChan 关闭或者 Accept 出错时停止服务
func ListenAndServe(listener net.Listener, handler tcp.Handler, closeChan <-chan struct{}) {
	// 开启一个协程检查退出信号
	errCh := make(chan struct{})
	go func() {
		select {
		case <-closeChan:
		case <-errCh:
		}
		logger.Info("server shutting down...")
		_ = listener.Close()
		_ = handler.Close()
	}()

	defer func() {
		if err := recover(); err != nil {
			logger.Error("tcp server panic: ", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for {
		conn, err := listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				logger.Error("accept err: ", err)
			}
			close(errCh)
			break
		}
		// 来了一个请求，开启协程处理请求
		logger.Debug("accept a conn from: ", conn.RemoteAddr().String())
		wg.Add(1)
		go func() {
			defer wg.Done()
			handler.Handle(ctx, conn)
		}()
	}

	// 等待所有请求处理完成
	wg.Wait()
}
