package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strconv"

	"github.com/dawnzzz/dawnpool/interface/redis"
	"github.com/dawnzzz/dawnpool/logger"
	"github.com/dawnzzz/dawnpool/redis/protocol/reply"
)

const (
	maxBulkLen  = 512 * 1024 * 1024 // 单个 bulk string 最长 512MB
	maxArrayLen = 1024 * 1024       // multi bulk 最多 1M 个元素
)

var errTooLarge = errors.New("protocol error: invalid length")

// Payload stores redis.Reply or error
type Payload struct {
	Data redis.Reply
	Err  error
}

// ParseStream 异步解析 reader 中的数据，结果通过 channel 返回
// 遇到 IO 错误或者长度超出限制时发送错误并关闭 channel，其他协议错误不会中断解析
func ParseStream(reader io.Reader) <-chan *Payload {
	ch := make(chan *Payload)
	go parse(reader, ch)
	return ch
}

func parse(rawReader io.Reader, ch chan<- *Payload) {
	defer func() {
		if err := recover(); err != nil {
			logger.Error(err, string(debug.Stack()))
			ch <- &Payload{Err: fmt.Errorf("protocol error: %v", err)}
			close(ch)
		}
	}()

	reader := bufio.NewReader(rawReader)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			ch <- &Payload{Err: err}
			close(ch)
			return
		}
		length := len(line)
		if length <= 2 || line[length-2] != '\r' {
			// 必须以 \r\n 结尾，空行直接忽略
			continue
		}
		line = bytes.TrimSuffix(line, []byte{'\r', '\n'})

		switch line[0] {
		case '+':
			ch <- &Payload{
				Data: reply.MakeStatusReply(string(line[1:])),
			}
		case '-':
			ch <- &Payload{
				Data: reply.MakeErrReply(string(line[1:])),
			}
		case ':':
			value, err := strconv.ParseInt(string(line[1:]), 10, 64)
			if err != nil {
				protocolError(ch, "illegal number "+string(line[1:]))
				continue
			}
			ch <- &Payload{
				Data: reply.MakeIntReply(value),
			}
		case '$':
			if err = parseBulkString(line, reader, ch); err != nil {
				ch <- &Payload{Err: err}
				close(ch)
				return
			}
		case '*':
			if err = parseArray(line, reader, ch); err != nil {
				ch <- &Payload{Err: err}
				close(ch)
				return
			}
		default:
			// inline 命令，例如 telnet 中直接输入 PING
			args := bytes.Fields(line)
			if len(args) == 0 {
				continue
			}
			ch <- &Payload{
				Data: reply.MakeMultiBulkStringReply(args),
			}
		}
	}
}

func parseBulkString(header []byte, reader *bufio.Reader, ch chan<- *Payload) error {
	strLen, err := strconv.ParseInt(string(header[1:]), 10, 64)
	if err != nil || strLen < -1 {
		protocolError(ch, "illegal bulk string header: "+string(header))
		return nil
	} else if strLen > maxBulkLen {
		// 无法跳过后面的数据，只能结束解析
		return errTooLarge
	} else if strLen == -1 {
		ch <- &Payload{
			Data: reply.MakeNullBulkStringReply(),
		}
		return nil
	}

	body := make([]byte, strLen+2) // 2 为 CRLF 的长度
	if _, err = io.ReadFull(reader, body); err != nil {
		return err
	}

	ch <- &Payload{
		Data: reply.MakeBulkStringReply(body[:len(body)-2]),
	}
	return nil
}

func parseArray(header []byte, reader *bufio.Reader, ch chan<- *Payload) error {
	nStrs, err := strconv.ParseInt(string(header[1:]), 10, 64)
	if err != nil || nStrs < -1 {
		protocolError(ch, "illegal array header "+string(header[1:]))
		return nil
	} else if nStrs > maxArrayLen {
		return errTooLarge
	} else if nStrs <= 0 {
		ch <- &Payload{
			Data: reply.MakeEmptyMultiBulkStringReply(),
		}
		return nil
	}

	lines := make([][]byte, 0, nStrs)
	for i := int64(0); i < nStrs; i++ {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return err
		}

		length := len(line)
		if length < 4 || line[length-2] != '\r' || line[0] != '$' {
			protocolError(ch, "illegal bulk string header "+string(line))
			return nil
		}
		strLen, err := strconv.ParseInt(string(line[1:length-2]), 10, 64)
		if err != nil || strLen < -1 {
			protocolError(ch, "illegal bulk string length "+string(line))
			return nil
		} else if strLen > maxBulkLen {
			return errTooLarge
		} else if strLen == -1 {
			lines = append(lines, nil)
			continue
		}

		body := make([]byte, strLen+2)
		if _, err := io.ReadFull(reader, body); err != nil {
			return err
		}
		lines = append(lines, body[:len(body)-2])
	}

	ch <- &Payload{
		Data: reply.MakeMultiBulkStringReply(lines),
	}
	return nil
}

func protocolError(ch chan<- *Payload, msg string) {
	ch <- &Payload{Err: errors.New("protocol error: " + msg)}
}
