package commands

import (
	"strconv"

	"github.com/dawnzzz/dawnpool/database/engine"
	"github.com/dawnzzz/dawnpool/datastruct/set"
	"github.com/dawnzzz/dawnpool/interface/database"
	"github.com/dawnzzz/dawnpool/interface/redis"
	"github.com/dawnzzz/dawnpool/redis/protocol/reply"
)

func execSAdd(db *engine.DB, args [][]byte) redis.Reply {
	key := string(args[0])
	pool, _, errReply := getOrInitSet(db, key)
	if errReply != nil {
		return errReply
	}

	count := 0
	for _, arg := range args[1:] {
		if pool.Add(string(arg)) {
			count++
		}
	}

	return reply.MakeIntReply(int64(count))
}

func execSRem(db *engine.DB, args [][]byte) redis.Reply {
	key := string(args[0])
	pool, errReply := getAsSet(db, key)
	if errReply != nil {
		return errReply
	}
	if pool == nil {
		return reply.MakeIntReply(0)
	}

	count := 0
	for _, arg := range args[1:] {
		if pool.Remove(string(arg)) {
			count++
		}
	}
	removeIfEmpty(db, key, pool)

	return reply.MakeIntReply(int64(count))
}

func execSCard(db *engine.DB, args [][]byte) redis.Reply {
	pool, errReply := getAsSet(db, string(args[0]))
	if errReply != nil {
		return errReply
	}
	if pool == nil {
		return reply.MakeIntReply(0)
	}

	return reply.MakeIntReply(int64(pool.Len()))
}

func execSIsMember(db *engine.DB, args [][]byte) redis.Reply {
	pool, errReply := getAsSet(db, string(args[0]))
	if errReply != nil {
		return errReply
	}

	if pool != nil && pool.Has(string(args[1])) {
		return reply.MakeIntReply(1)
	}
	return reply.MakeIntReply(0)
}

func execSMembers(db *engine.DB, args [][]byte) redis.Reply {
	pool, errReply := getAsSet(db, string(args[0]))
	if errReply != nil {
		return errReply
	}
	if pool == nil {
		return reply.MakeEmptyMultiBulkStringReply()
	}

	return reply.MakeStringsReply(pool.ToSlice())
}

// execSPop 随机删除并返回成员，相当于不放回抽样
func execSPop(db *engine.DB, args [][]byte) redis.Reply {
	if len(args) > 2 {
		return reply.MakeSyntaxErrReply()
	}

	key := string(args[0])
	withCount := len(args) == 2
	count := 1
	if withCount {
		var err error
		count, err = strconv.Atoi(string(args[1]))
		if err != nil {
			return reply.MakeNotIntegerErrReply()
		}
		if count < 0 {
			return reply.MakeErrReply("ERR value is out of range, must be positive")
		}
	}

	pool, errReply := getAsSet(db, key)
	if errReply != nil {
		return errReply
	}

	if !withCount {
		if pool == nil {
			return reply.MakeNullBulkStringReply()
		}
		member, _ := pool.PollRandom(db.Rand())
		removeIfEmpty(db, key, pool)
		return reply.MakeBulkStringReply([]byte(member))
	}

	if pool == nil || count == 0 {
		return reply.MakeEmptyMultiBulkStringReply()
	}

	rnd := db.Rand()
	members := make([]string, 0, min(count, pool.Len()))
	for len(members) < count {
		member, ok := pool.PollRandom(rnd)
		if !ok {
			break
		}
		members = append(members, member)
	}
	removeIfEmpty(db, key, pool)

	return reply.MakeStringsReply(members)
}

// SRANDMEMBER 负数 count 允许的最大绝对值
const maxRandomMembers = 1 << 20

// execSRandMember 随机返回成员但不删除
// count 为正数时返回不重复的成员，为负数时返回 |count| 个可能重复的成员
func execSRandMember(db *engine.DB, args [][]byte) redis.Reply {
	if len(args) > 2 {
		return reply.MakeSyntaxErrReply()
	}

	pool, errReply := getAsSet(db, string(args[0]))
	if errReply != nil {
		return errReply
	}

	if len(args) == 1 {
		if pool == nil {
			return reply.MakeNullBulkStringReply()
		}
		member, _ := pool.RandomMember(db.Rand())
		return reply.MakeBulkStringReply([]byte(member))
	}

	count, err := strconv.ParseInt(string(args[1]), 10, 64)
	if err != nil {
		return reply.MakeNotIntegerErrReply()
	}
	if count < -maxRandomMembers {
		return reply.MakeErrReply("ERR value is out of range")
	}
	if pool == nil || count == 0 {
		return reply.MakeEmptyMultiBulkStringReply()
	}

	if count > 0 {
		// 不重复的成员最多 pool.Len() 个
		limit := pool.Len()
		if count < int64(limit) {
			limit = int(count)
		}
		return reply.MakeStringsReply(pool.RandomDistinctMembers(db.Rand(), limit))
	}
	return reply.MakeStringsReply(pool.RandomMembers(db.Rand(), int(-count)))
}

// execSMove 把 member 从 source 移动到 destination
func execSMove(db *engine.DB, args [][]byte) redis.Reply {
	srcKey, destKey, member := string(args[0]), string(args[1]), string(args[2])

	src, errReply := getAsSet(db, srcKey)
	if errReply != nil {
		return errReply
	}
	dest, errReply := getAsSet(db, destKey)
	if errReply != nil {
		return errReply
	}

	if src == nil || !src.Has(member) {
		return reply.MakeIntReply(0)
	}
	if srcKey == destKey {
		return reply.MakeIntReply(1)
	}

	src.Remove(member)
	removeIfEmpty(db, srcKey, src)

	if dest == nil {
		dest, _, _ = getOrInitSet(db, destKey)
	}
	dest.Add(member)

	return reply.MakeIntReply(1)
}

// execSInter 返回交集，任意一个 key 不存在时结果为空
func execSInter(db *engine.DB, args [][]byte) redis.Reply {
	var result set.Set[string]
	for _, arg := range args {
		pool, errReply := getAsSet(db, string(arg))
		if errReply != nil {
			return errReply
		}
		if pool == nil {
			return reply.MakeEmptyMultiBulkStringReply()
		}

		if result == nil {
			result = pool
			continue
		}
		result = pool.Intersect(result)
	}

	return reply.MakeStringsReply(result.ToSlice())
}

// execSUnion 返回并集
func execSUnion(db *engine.DB, args [][]byte) redis.Reply {
	var result set.Set[string] = set.MakeRandomSet[string]()
	for _, arg := range args {
		pool, errReply := getAsSet(db, string(arg))
		if errReply != nil {
			return errReply
		}
		if pool == nil {
			continue
		}

		result = pool.Union(result)
	}

	return reply.MakeStringsReply(result.ToSlice())
}

// execSDiff 返回第一个集合中独有的成员
func execSDiff(db *engine.DB, args [][]byte) redis.Reply {
	first, errReply := getAsSet(db, string(args[0]))
	if errReply != nil {
		return errReply
	}
	if first == nil {
		return reply.MakeEmptyMultiBulkStringReply()
	}

	var result set.Set[string] = first
	for _, arg := range args[1:] {
		pool, errReply := getAsSet(db, string(arg))
		if errReply != nil {
			return errReply
		}
		if pool == nil {
			continue
		}

		result = result.Diff(pool)
	}

	return reply.MakeStringsReply(result.ToSlice())
}

func getAsSet(db *engine.DB, key string) (*set.RandomSet[string], reply.ErrorReply) {
	entity, exists := db.GetEntity(key)
	if !exists {
		return nil, nil
	}
	pool, ok := entity.Data.(*set.RandomSet[string])
	if !ok {
		return nil, &reply.WrongTypeErrReply{}
	}
	return pool, nil
}

func getOrInitSet(db *engine.DB, key string) (pool *set.RandomSet[string], inited bool, errReply reply.ErrorReply) {
	pool, errReply = getAsSet(db, key)
	if errReply != nil {
		return nil, false, errReply
	}
	if pool == nil {
		pool = set.MakeRandomSet[string]()
		inited = db.PutIfAbsent(key, &database.DataEntity{
			Data: pool,
		}) == 1
	}
	return pool, inited, nil
}

// 集合为空时删除 key
func removeIfEmpty(db *engine.DB, key string, pool *set.RandomSet[string]) {
	if pool.Len() == 0 {
		db.Remove(key)
	}
}

func init() {
	engine.RegisterCommand("SAdd", execSAdd, writeFirstKey, -3)
	engine.RegisterCommand("SRem", execSRem, writeFirstKey, -3)
	engine.RegisterCommand("SCard", execSCard, readFirstKey, 2)
	engine.RegisterCommand("SIsMember", execSIsMember, readFirstKey, 3)
	engine.RegisterCommand("SMembers", execSMembers, readFirstKey, 2)
	engine.RegisterCommand("SPop", execSPop, writeFirstKey, -2)
	engine.RegisterCommand("SRandMember", execSRandMember, readFirstKey, -2)
	engine.RegisterCommand("SMove", execSMove, prepareSMove, 4)
	engine.RegisterCommand("SInter", execSInter, readAllKeys, -2)
	engine.RegisterCommand("SUnion", execSUnion, readAllKeys, -2)
	engine.RegisterCommand("SDiff", execSDiff, readAllKeys, -2)
}
