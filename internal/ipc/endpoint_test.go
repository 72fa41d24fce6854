package ipc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointListenAndDial(t *testing.T) {
	listener, err := NewEndpoint(" 127.0.0.1:0 ").Listen()
	require.NoError(t, err)
	defer listener.Close()

	endpoint := NewEndpoint(listener.Addr().String())
	assert.Equal(t, "tcp://"+listener.Addr().String(), endpoint.String())

	accepted := make(chan struct{})
	go func() {
		if conn, err := listener.Accept(); err == nil {
			conn.Close()
		}
		close(accepted)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := endpoint.DialContext(ctx)
	require.NoError(t, err)
	conn.Close()
	<-accepted
}
