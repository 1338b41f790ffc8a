package engine

import (
	"testing"

	"github.com/dawnzzz/dawnpool/interface/database"
	"github.com/dawnzzz/dawnpool/interface/redis"
	"github.com/dawnzzz/dawnpool/redis/connection"
	"github.com/dawnzzz/dawnpool/redis/protocol/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	k1        = "key1"
	v1        = &database.DataEntity{Data: "value1"}
	k2        = "key2"
	v2        = &database.DataEntity{Data: "value2"}
	v2Updated = &database.DataEntity{Data: "new value2"}
)

func TestDBDataAccess(t *testing.T) {
	db := MakeDB(1)

	assert.Equal(t, 1, db.PutEntity(k1, v1))
	e, ok := db.GetEntity(k1)
	require.True(t, ok)
	assert.Same(t, v1, e)

	assert.Equal(t, 0, db.PutIfAbsent(k1, &database.DataEntity{Data: "new value1"}))
	e, _ = db.GetEntity(k1)
	assert.Same(t, v1, e)

	db.PutEntity(k2, v2)
	db.PutEntity(k2, v2Updated)
	e, _ = db.GetEntity(k2)
	assert.Same(t, v2Updated, e)
	assert.Equal(t, 2, db.Len())

	assert.Equal(t, 1, db.Remove(k1))
	assert.Equal(t, 1, db.Removes(k1, k2, "missing"))
	assert.Equal(t, 0, db.Len())

	db.PutEntity(k1, v1)
	db.Flush()
	_, ok = db.GetEntity(k1)
	assert.False(t, ok)
}

func TestDBExec(t *testing.T) {
	RegisterCommand("echo-test", func(db *DB, args [][]byte) redis.Reply {
		return reply.MakeBulkStringReply(args[1])
	}, func(args [][]byte) ([]string, []string) {
		return nil, []string{string(args[0])}
	}, 3)

	db := MakeDB(1)
	c := connection.NewFakeConn()

	r := db.Exec(c, [][]byte{[]byte("ECHO-TEST"), []byte("k"), []byte("v")})
	assert.Equal(t, "$1\r\nv\r\n", string(r.ToBytes()))

	r = db.Exec(c, [][]byte{[]byte("echo-test"), []byte("k")})
	assert.True(t, reply.IsErrorReply(r))

	r = db.Exec(c, [][]byte{[]byte("nope")})
	assert.Equal(t, "-ERR unknown command 'nope'\r\n", string(r.ToBytes()))

	write, read := GetWriteReadKeys([][]byte{[]byte("echo-test"), []byte("k"), []byte("v")})
	assert.Empty(t, write)
	assert.Equal(t, []string{"k"}, read)
}

func TestValidateArity(t *testing.T) {
	args := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	assert.True(t, validateArity(3, args))
	assert.False(t, validateArity(2, args))
	assert.True(t, validateArity(-2, args))
	assert.False(t, validateArity(-4, args))
}

func TestLockedRandRange(t *testing.T) {
	rnd := MakeDB(9).Rand()
	for i := 0; i < 1000; i++ {
		n := rnd.Intn(7)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 7)
	}
}
