package engine

import (
	"strings"

	"github.com/dawnzzz/dawnpool/datastruct/dict"
	"github.com/dawnzzz/dawnpool/datastruct/lock"
	"github.com/dawnzzz/dawnpool/datastruct/set"
	"github.com/dawnzzz/dawnpool/interface/database"
	"github.com/dawnzzz/dawnpool/interface/redis"
	"github.com/dawnzzz/dawnpool/logger"
	"github.com/dawnzzz/dawnpool/redis/protocol/reply"
)

const (
	dataDictSize = 1 << 16
	lockSize     = 1024
)

// DB 单个数据库，保存 key 到候选池的映射
type DB struct {
	index  int // 数据库号
	data   dict.Dict[*database.DataEntity]
	locker *lock.Locks
	rnd    *lockedRand // 所有命令共用的随机数源
}

// MakeDB 创建数据库，seed 为 0 时使用当前时间作为随机数种子
func MakeDB(seed uint64) *DB {
	return &DB{
		data:   dict.MakeConcurrentDict[*database.DataEntity](dataDictSize),
		locker: lock.Make(lockSize),
		rnd:    newLockedRand(seed),
	}
}

// Exec executes command within one database
func (db *DB) Exec(c redis.Connection, cmdLine [][]byte) redis.Reply {
	cmdName := strings.ToLower(string(cmdLine[0]))
	cmd, ok := cmdTable[cmdName]
	if !ok {
		return reply.MakeErrReply("ERR unknown command '" + cmdName + "'")
	}
	if !validateArity(cmd.arity, cmdLine) {
		return reply.MakeArgNumErrReply(cmdName)
	}

	// 执行前的加锁
	write, read := GetWriteReadKeys(cmdLine)
	db.locker.RWLocks(write, read)
	defer db.locker.RWUnLocks(write, read)

	logger.Debugf("db %d exec %s from %s", db.index, cmdName, c.Name())
	return cmd.executor(db, cmdLine[1:])
}

// 验证参数数量是否正确
func validateArity(arity int, cmdArgs [][]byte) bool {
	argNum := len(cmdArgs)
	if arity >= 0 {
		return argNum == arity
	}
	return argNum >= -arity
}

func (db *DB) GetIndex() int {
	return db.index
}

func (db *DB) SetIndex(index int) {
	if index > 0 {
		db.index = index
	}
}

// Rand 返回数据库的随机数源，可以并发使用
func (db *DB) Rand() set.Intner {
	return db.rnd
}

// Len 返回 key 的数量
func (db *DB) Len() int {
	return db.data.Len()
}

// Flush Warning! clean all db data
func (db *DB) Flush() {
	db.data.Clear()
}
