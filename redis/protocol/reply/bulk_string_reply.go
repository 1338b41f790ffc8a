package reply

import (
	"strconv"
)

// BulkStringReply 二进制安全的字符串，nil 表示空字符串
type BulkStringReply struct {
	Arg []byte
}

func MakeBulkStringReply(arg []byte) *BulkStringReply {
	return &BulkStringReply{
		Arg: arg,
	}
}

func (r *BulkStringReply) ToBytes() []byte {
	if r.Arg == nil {
		return nullBulkBytes
	}

	buf := make([]byte, 0, len(r.Arg)+16)
	buf = append(buf, '$')
	buf = strconv.AppendInt(buf, int64(len(r.Arg)), 10)
	buf = append(buf, CRLF...)
	buf = append(buf, r.Arg...)
	buf = append(buf, CRLF...)
	return buf
}

func (r *BulkStringReply) DataString() string {
	if r.Arg == nil {
		return nilDataString
	}
	return strconv.Quote(string(r.Arg))
}

// NullBulkStringReply 是 $-1，比如 SPOP 一个不存在的 key
type NullBulkStringReply struct {
}

func MakeNullBulkStringReply() *NullBulkStringReply {
	return &NullBulkStringReply{}
}

func (r *NullBulkStringReply) ToBytes() []byte {
	return nullBulkBytes
}

func (r *NullBulkStringReply) DataString() string {
	return nilDataString
}
