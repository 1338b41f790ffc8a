package database

import "github.com/dawnzzz/dawnpool/interface/redis"

// CmdLine is alias for [][]byte, represents a command line
type CmdLine = [][]byte

// DB is the interface for the pool server engine
type DB interface {
	Exec(client redis.Connection, cmdLine CmdLine) redis.Reply
	AfterClientClose(c redis.Connection)
	Close()
}

// DataEntity stores data bound to a key, a pool is a *set.RandomSet[string]
type DataEntity struct {
	Data interface{}
}
