package reply

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplyToBytes(t *testing.T) {
	cases := []struct {
		name  string
		reply interface{ ToBytes() []byte }
		want  string
	}{
		{"status", MakeStatusReply("QUEUED"), "+QUEUED\r\n"},
		{"ok", MakeOkReply(), "+OK\r\n"},
		{"pong", MakePongStatusReply(), "+PONG\r\n"},
		{"int", MakeIntReply(-3), ":-3\r\n"},
		{"bulk", MakeBulkStringReply([]byte("pool")), "$4\r\npool\r\n"},
		{"empty bulk", MakeBulkStringReply([]byte{}), "$0\r\n\r\n"},
		{"nil bulk", MakeBulkStringReply(nil), "$-1\r\n"},
		{"null bulk", MakeNullBulkStringReply(), "$-1\r\n"},
		{"multi bulk", MakeStringsReply([]string{"a", "bc"}), "*2\r\n$1\r\na\r\n$2\r\nbc\r\n"},
		{"empty multi bulk", MakeEmptyMultiBulkStringReply(), "*0\r\n"},
		{"err", MakeErrReply("ERR boom"), "-ERR boom\r\n"},
		{"arg num", MakeArgNumErrReply("sadd"), "-ERR wrong number of arguments for 'sadd' command\r\n"},
		{"syntax", MakeSyntaxErrReply(), "-ERR syntax error\r\n"},
		{"wrong type", &WrongTypeErrReply{}, "-WRONGTYPE Operation against a key holding the wrong kind of value\r\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, string(c.reply.ToBytes()))
		})
	}
}

func TestReplyDataString(t *testing.T) {
	assert.Equal(t, "(integer) 2", MakeIntReply(2).DataString())
	assert.Equal(t, `"a"`, MakeBulkStringReply([]byte("a")).DataString())
	assert.Equal(t, "(nil)", MakeNullBulkStringReply().DataString())
	assert.Equal(t, "1) \"a\"\n2) \"b\"", MakeStringsReply([]string{"a", "b"}).DataString())
	assert.Equal(t, "(empty list or set)", MakeStringsReply(nil).DataString())
	assert.Equal(t, "(error) ERR boom", MakeErrReply("ERR boom").DataString())
}

func TestIsErrorReply(t *testing.T) {
	assert.True(t, IsErrorReply(MakeErrReply("ERR")))
	assert.True(t, IsErrorReply(&WrongTypeErrReply{}))
	assert.False(t, IsErrorReply(MakeOkReply()))
	assert.False(t, IsErrorReply(MakeIntReply(0)))
}
