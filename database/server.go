package database

import (
	"runtime/debug"
	"strings"
	"sync/atomic"

	"github.com/dawnzzz/dawnpool/config"
	_ "github.com/dawnzzz/dawnpool/database/commands"
	"github.com/dawnzzz/dawnpool/database/engine"
	"github.com/dawnzzz/dawnpool/interface/redis"
	"github.com/dawnzzz/dawnpool/logger"
	"github.com/dawnzzz/dawnpool/redis/protocol/reply"
)

// Server is a pool server holding several databases
type Server struct {
	dbSet []*atomic.Value // *engine.DB
	seed  uint64
}

// NewStandaloneServer creates a server according to config.Properties
func NewStandaloneServer() *Server {
	databases := config.Properties.Databases
	if databases <= 0 {
		databases = 16 // default is 16
	}

	server := &Server{
		dbSet: make([]*atomic.Value, databases),
		seed:  config.Properties.RandomSeed,
	}
	for i := range server.dbSet {
		holder := &atomic.Value{}
		holder.Store(server.makeDB(i))
		server.dbSet[i] = holder
	}

	return server
}

func (s *Server) makeDB(index int) *engine.DB {
	seed := s.seed
	if seed != 0 {
		// 每个数据库使用不同的种子
		seed += uint64(index)
	}
	db := engine.MakeDB(seed)
	db.SetIndex(index)
	return db
}

// Exec executes command line, panics in executor are turned into error replies
func (s *Server) Exec(client redis.Connection, cmdLine [][]byte) (result redis.Reply) {
	defer func() {
		if err := recover(); err != nil {
			logger.Errorf("exec %q panic: %v\n%s", cmdLine[0], err, debug.Stack())
			result = reply.MakeErrReply("ERR unknown")
		}
	}()

	cmdName := strings.ToLower(string(cmdLine[0]))
	if cmdName == "ping" {
		logger.Debugf("received heart beat from %v", client.Name())
		return Ping(cmdLine[1:])
	}
	if cmdName == "auth" {
		return Auth(client, cmdLine[1:])
	}
	if !isAuthenticated(client) {
		return reply.MakeErrReply("NOAUTH Authentication required")
	}

	switch cmdName {
	case "select":
		return SelectDB(client, cmdLine[1:], len(s.dbSet))
	case "dbsize":
		return DBSize(s, client, cmdLine[1:])
	case "flushdb":
		return FlushDB(s, client, cmdLine[1:])
	case "flushall":
		return FlushAll(s, cmdLine[1:])
	}

	// normal commands
	selectedDB, errReply := s.selectDB(client.GetDBIndex())
	if errReply != nil {
		return errReply
	}
	return selectedDB.Exec(client, cmdLine)
}

func (s *Server) selectDB(dbIndex int) (*engine.DB, *reply.StandardErrReply) {
	if dbIndex >= len(s.dbSet) || dbIndex < 0 {
		return nil, reply.MakeErrReply("ERR DB index is out of range")
	}
	return s.dbSet[dbIndex].Load().(*engine.DB), nil
}

func (s *Server) AfterClientClose(c redis.Connection) {
	logger.Debugf("client %s closed", c.Name())
}

func (s *Server) Close() {
	logger.Info("pool server closed")
}
