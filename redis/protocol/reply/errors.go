package reply

// ErrorReply is an error and redis.Reply
type ErrorReply interface {
	Error() string
	ToBytes() []byte
	DataString() string
}

// StandardErrReply represents server error
type StandardErrReply struct {
	Status string
}

// MakeErrReply creates StandardErrReply
func MakeErrReply(status string) *StandardErrReply {
	return &StandardErrReply{
		Status: status,
	}
}

// IsErrorReply returns true if the given reply is error
func IsErrorReply(reply interface{ ToBytes() []byte }) bool {
	bs := reply.ToBytes()
	return len(bs) > 0 && bs[0] == '-'
}

func (r *StandardErrReply) ToBytes() []byte {
	return []byte("-" + r.Status + CRLF)
}

func (r *StandardErrReply) Error() string {
	return r.Status
}

func (r *StandardErrReply) DataString() string {
	return "(error) " + r.Status
}

/* ---- 常用的错误 ---- */

// WrongTypeErrReply represents operation against a key holding the wrong kind of value
type WrongTypeErrReply struct{}

var wrongTypeErrMsg = "WRONGTYPE Operation against a key holding the wrong kind of value"

func (r *WrongTypeErrReply) ToBytes() []byte {
	return []byte("-" + wrongTypeErrMsg + CRLF)
}

func (r *WrongTypeErrReply) Error() string {
	return wrongTypeErrMsg
}

func (r *WrongTypeErrReply) DataString() string {
	return "(error) " + wrongTypeErrMsg
}

// SyntaxErrReply represents meeting unexpected arguments
type SyntaxErrReply struct{}

var (
	syntaxErrMsg      = "ERR syntax error"
	theSyntaxErrReply = &SyntaxErrReply{}
)

func MakeSyntaxErrReply() *SyntaxErrReply {
	return theSyntaxErrReply
}

func (r *SyntaxErrReply) ToBytes() []byte {
	return []byte("-" + syntaxErrMsg + CRLF)
}

func (r *SyntaxErrReply) Error() string {
	return syntaxErrMsg
}

func (r *SyntaxErrReply) DataString() string {
	return "(error) " + syntaxErrMsg
}

// ArgNumErrReply represents wrong number of arguments for command
type ArgNumErrReply struct {
	Cmd string
}

func MakeArgNumErrReply(cmd string) *ArgNumErrReply {
	return &ArgNumErrReply{
		Cmd: cmd,
	}
}

func (r *ArgNumErrReply) Error() string {
	return "ERR wrong number of arguments for '" + r.Cmd + "' command"
}

func (r *ArgNumErrReply) ToBytes() []byte {
	return []byte("-" + r.Error() + CRLF)
}

func (r *ArgNumErrReply) DataString() string {
	return "(error) " + r.Error()
}

// MakeNotIntegerErrReply 参数不是整数或者越界
func MakeNotIntegerErrReply() *StandardErrReply {
	return MakeErrReply("ERR value is not an integer or out of range")
}
