package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/contextmenu/internal/ipc"
	"github.com/example/contextmenu/internal/protocol"
)

// Invoke sends req to the bridge at endpoint and returns its response. A
// classified failure arrives in Response.Error, not as the returned error.
func Invoke(ctx context.Context, endpoint ipc.Endpoint, req protocol.Request) (*protocol.Response, error) {
	conn, err := endpoint.DialContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpoint.String(), err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	var resp protocol.Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &resp, nil
}
