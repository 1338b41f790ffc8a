package connection

import (
	"net"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dawnzzz/dawnpool/lib/sync/wait"
	"github.com/dawnzzz/dawnpool/logger"
	"github.com/pkg/errors"
)

var (
	idNode   *snowflake.Node
	idNodeMu sync.RWMutex
)

func init() {
	node, err := snowflake.NewNode(0)
	if err != nil {
		panic(err)
	}
	idNode = node
}

// SetupIDGenerator 设置生成连接 id 的 snowflake 节点号
func SetupIDGenerator(nodeID int64) error {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return errors.Wrapf(err, "create snowflake node %d", nodeID)
	}

	idNodeMu.Lock()
	idNode = node
	idNodeMu.Unlock()
	return nil
}

func nextID() snowflake.ID {
	idNodeMu.RLock()
	defer idNodeMu.RUnlock()
	return idNode.Generate()
}

// Connection represents a connection with a client
type Connection struct {
	conn net.Conn
	id   snowflake.ID

	// wait until finish sending data, used for graceful shutdown
	sendingData wait.Wait

	// lock while server sending response
	mu sync.Mutex

	// password may be changed by AUTH command during runtime, so store the password
	password string

	// selected db
	selectedDB int
}

// NewConn creates Connection instance
func NewConn(conn net.Conn) *Connection {
	c := &Connection{
		conn: conn,
		id:   nextID(),
	}
	logger.WithField("conn", c.id.String()).Debug("new connection from ", c.RemoteAddr())
	return c
}

// ID 返回连接 id
func (c *Connection) ID() snowflake.ID {
	return c.id
}

// RemoteAddr returns the remote network address
func (c *Connection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Write sends response to client over tcp connection
func (c *Connection) Write(bytes []byte) (int, error) {
	if len(bytes) == 0 {
		return 0, nil
	}

	c.sendingData.Add(1)
	defer c.sendingData.Done()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Write(bytes)
}

// Close disconnect with the client
func (c *Connection) Close() error {
	c.sendingData.WaitWithTimeout(10 * time.Second)
	return c.conn.Close()
}

func (c *Connection) SetPassword(password string) {
	c.password = password
}

func (c *Connection) GetPassword() string {
	return c.password
}

func (c *Connection) GetDBIndex() int {
	return c.selectedDB
}

func (c *Connection) SelectDB(i int) {
	c.selectedDB = i
}

func (c *Connection) Name() string {
	if c.conn != nil {
		return c.id.String() + "@" + c.RemoteAddr().String()
	}

	return c.id.String()
}
