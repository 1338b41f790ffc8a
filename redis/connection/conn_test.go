package connection

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionWriteAndClose(t *testing.T) {
	server, client := net.Pipe()
	c := NewConn(server)

	go func() {
		_, _ = c.Write([]byte("+PONG\r\n"))
	}()

	buf := make([]byte, 7)
	n, err := client.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "+PONG\r\n", string(buf[:n]))

	n, err = c.Write(nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)

	c.SelectDB(3)
	c.SetPassword("secret")
	assert.Equal(t, 3, c.GetDBIndex())
	assert.Equal(t, "secret", c.GetPassword())
	assert.Contains(t, c.Name(), c.ID().String())

	require.NoError(t, c.Close())
	_ = client.Close()
}

func TestConnectionIDsAreUnique(t *testing.T) {
	require.NoError(t, SetupIDGenerator(5))
	ids := make(map[int64]struct{})
	for i := 0; i < 1000; i++ {
		id := nextID()
		_, dup := ids[id.Int64()]
		require.False(t, dup)
		ids[id.Int64()] = struct{}{}
		assert.Equal(t, int64(5), id.Node())
	}
}

func TestSetupIDGeneratorRejectsBadNode(t *testing.T) {
	assert.Error(t, SetupIDGenerator(-1))
	assert.Error(t, SetupIDGenerator(1 << 10))
}
