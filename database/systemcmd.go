package database

import (
	"strconv"

	"github.com/dawnzzz/dawnpool/config"
	"github.com/dawnzzz/dawnpool/interface/redis"
	"github.com/dawnzzz/dawnpool/redis/protocol/reply"
)

// Ping 没有参数时返回 PONG，否则原样返回参数
func Ping(args [][]byte) redis.Reply {
	switch len(args) {
	case 0:
		return reply.MakePongStatusReply()
	case 1:
		return reply.MakeBulkStringReply(args[0])
	}
	return reply.MakeArgNumErrReply("ping")
}

// Auth validate client's password
func Auth(c redis.Connection, args [][]byte) redis.Reply {
	if len(args) != 1 {
		return reply.MakeArgNumErrReply("auth")
	}
	if config.Properties.Password == "" {
		return reply.MakeErrReply("ERR Client sent AUTH, but no password is set")
	}
	passwd := string(args[0])
	c.SetPassword(passwd)
	if config.Properties.Password != passwd {
		return reply.MakeErrReply("ERR invalid password")
	}
	return reply.MakeOkReply()
}

func isAuthenticated(c redis.Connection) bool {
	if config.Properties.Password == "" {
		return true
	}
	return c.GetPassword() == config.Properties.Password
}

func SelectDB(c redis.Connection, args [][]byte, dbNum int) redis.Reply {
	if len(args) != 1 {
		return reply.MakeArgNumErrReply("select")
	}

	dbIndex, err := strconv.Atoi(string(args[0]))
	if err != nil {
		return reply.MakeErrReply("ERR select db index is not an integer")
	}
	if dbIndex < 0 || dbIndex >= dbNum {
		return reply.MakeErrReply("ERR DB index is out of range")
	}

	c.SelectDB(dbIndex)
	return reply.MakeOkReply()
}

// DBSize 返回当前数据库 key 的数量
func DBSize(s *Server, c redis.Connection, args [][]byte) redis.Reply {
	if len(args) != 0 {
		return reply.MakeArgNumErrReply("dbsize")
	}

	db, errReply := s.selectDB(c.GetDBIndex())
	if errReply != nil {
		return errReply
	}
	return reply.MakeIntReply(int64(db.Len()))
}

// FlushDB 清空当前数据库
func FlushDB(s *Server, c redis.Connection, args [][]byte) redis.Reply {
	if len(args) != 0 {
		return reply.MakeArgNumErrReply("flushdb")
	}

	db, errReply := s.selectDB(c.GetDBIndex())
	if errReply != nil {
		return errReply
	}
	db.Flush()
	return reply.MakeOkReply()
}

// FlushAll 用新的数据库替换所有数据库
func FlushAll(s *Server, args [][]byte) redis.Reply {
	if len(args) != 0 {
		return reply.MakeArgNumErrReply("flushall")
	}

	for i, holder := range s.dbSet {
		holder.Store(s.makeDB(i))
	}
	return reply.MakeOkReply()
}
