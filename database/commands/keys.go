package commands

import (
	"github.com/dawnzzz/dawnpool/database/engine"
	"github.com/dawnzzz/dawnpool/datastruct/set"
	"github.com/dawnzzz/dawnpool/interface/redis"
	"github.com/dawnzzz/dawnpool/redis/protocol/reply"
)

// execDel 删除 key，返回删除的数量
func execDel(db *engine.DB, args [][]byte) redis.Reply {
	keys := make([]string, len(args))
	for i, arg := range args {
		keys[i] = string(arg)
	}

	return reply.MakeIntReply(int64(db.Removes(keys...)))
}

// execExists 返回存在的 key 的数量，重复的 key 重复计数
func execExists(db *engine.DB, args [][]byte) redis.Reply {
	count := int64(0)
	for _, arg := range args {
		if _, exists := db.GetEntity(string(arg)); exists {
			count++
		}
	}

	return reply.MakeIntReply(count)
}

func execType(db *engine.DB, args [][]byte) redis.Reply {
	entity, exists := db.GetEntity(string(args[0]))
	if !exists {
		return reply.MakeStatusReply("none")
	}

	switch entity.Data.(type) {
	case *set.RandomSet[string]:
		return reply.MakeStatusReply("set")
	}
	return reply.MakeErrReply("ERR unknown type")
}

func init() {
	engine.RegisterCommand("Del", execDel, writeAllKeys, -2)
	engine.RegisterCommand("Exists", execExists, readAllKeys, -2)
	engine.RegisterCommand("Type", execType, readFirstKey, 2)
}
