package reply

import (
	"bytes"
	"strconv"
	"strings"
)

type MultiBulkStringReply struct {
	Args [][]byte
}

func MakeMultiBulkStringReply(args [][]byte) *MultiBulkStringReply {
	return &MultiBulkStringReply{
		Args: args,
	}
}

// MakeStringsReply 把字符串列表转换为 multi bulk
func MakeStringsReply(members []string) *MultiBulkStringReply {
	args := make([][]byte, len(members))
	for i, member := range members {
		args[i] = []byte(member)
	}

	return MakeMultiBulkStringReply(args)
}

func (r *MultiBulkStringReply) ToBytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("*" + strconv.Itoa(len(r.Args)) + CRLF)
	for _, arg := range r.Args {
		buf.Write(MakeBulkStringReply(arg).ToBytes())
	}

	return buf.Bytes()
}

func (r *MultiBulkStringReply) DataString() string {
	if len(r.Args) == 0 {
		return emptyListDataString
	}

	var builder strings.Builder
	for i, arg := range r.Args {
		builder.WriteString(strconv.Itoa(i+1) + ") ")
		builder.WriteString(MakeBulkStringReply(arg).DataString())
		if i != len(r.Args)-1 {
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

type EmptyMultiBulkStringReply struct {
}

func MakeEmptyMultiBulkStringReply() *EmptyMultiBulkStringReply {
	return &EmptyMultiBulkStringReply{}
}

func (r *EmptyMultiBulkStringReply) ToBytes() []byte {
	return emptyMultiBulkBytes
}

func (r *EmptyMultiBulkStringReply) DataString() string {
	return emptyListDataString
}
