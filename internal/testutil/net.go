package testutil

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

// FreePort asks the kernel for a currently free TCP port.
func FreePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}
