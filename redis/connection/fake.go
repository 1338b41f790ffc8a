package connection

import (
	"bytes"
	"sync"
)

// FakeConn implements redis.Connection for tests and internal callers
type FakeConn struct {
	buf bytes.Buffer
	mu  sync.Mutex

	password   string
	selectedDB int
}

func NewFakeConn() *FakeConn {
	return &FakeConn{}
}

// Write writes data to buffer
func (c *FakeConn) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(b)
}

// Bytes returns written data and clears the buffer
func (c *FakeConn) Bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	data := append([]byte(nil), c.buf.Bytes()...)
	c.buf.Reset()
	return data
}

func (c *FakeConn) Close() error {
	return nil
}

func (c *FakeConn) SetPassword(password string) {
	c.password = password
}

func (c *FakeConn) GetPassword() string {
	return c.password
}

func (c *FakeConn) GetDBIndex() int {
	return c.selectedDB
}

func (c *FakeConn) SelectDB(i int) {
	c.selectedDB = i
}

func (c *FakeConn) Name() string {
	return "fake"
}
