package engine

import (
	"strings"

	"github.com/dawnzzz/dawnpool/interface/redis"
)

// ExecFunc is interface for command executor
// args don't include cmd line
type ExecFunc func(db *DB, args [][]byte) redis.Reply

// PreFunc returns related write keys and read keys
type PreFunc func(args [][]byte) ([]string, []string)

var cmdTable = make(map[string]*command)

type command struct {
	executor ExecFunc
	prepare  PreFunc // return related keys command
	arity    int     // allow number of args, arity < 0 means len(args) >= -arity
}

// RegisterCommand registers a new command
// arity means allowed number of cmdArgs, arity < 0 means len(args) >= -arity.
// for example: the arity of `scard` is 2, `sadd` is -3
func RegisterCommand(name string, executor ExecFunc, prepare PreFunc, arity int) {
	name = strings.ToLower(name)
	cmdTable[name] = &command{
		executor: executor,
		prepare:  prepare,
		arity:    arity,
	}
}

// GetWriteReadKeys 返回命令需要加写锁和读锁的 key
func GetWriteReadKeys(cmdLine [][]byte) ([]string, []string) {
	cmd, ok := cmdTable[strings.ToLower(string(cmdLine[0]))]
	if !ok {
		return nil, nil
	}

	return cmd.prepare(cmdLine[1:])
}
