package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/example/contextmenu/internal/ipc"
	"github.com/example/contextmenu/internal/logging"
	"github.com/example/contextmenu/internal/protocol"
	"github.com/example/contextmenu/internal/security"
	"github.com/example/contextmenu/pkg/contextmenu"
)

const connectionTimeout = 30 * time.Second

// Server accepts invoke requests from the host shell over a loopback socket
// and forwards them to the gateway. Each connection carries one request.
type Server struct {
	gateway  *contextmenu.Gateway
	token    string
	endpoint ipc.Endpoint
}

// New constructs a Server. token must be non-empty.
func New(gateway *contextmenu.Gateway, endpoint ipc.Endpoint, token string) (*Server, error) {
	if gateway == nil {
		return nil, errors.New("bridge requires a gateway")
	}
	if token == "" {
		return nil, errors.New("bridge token could not be resolved; set CONTEXTMENU_BRIDGE_TOKEN or CONTEXTMENU_SECRET")
	}
	return &Server{gateway: gateway, token: token, endpoint: endpoint}, nil
}

// Endpoint exposes the listening endpoint for logging and diagnostics.
func (s *Server) Endpoint() string {
	return s.endpoint.String()
}

// Run binds the configured endpoint and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := s.endpoint.Listen()
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.endpoint.String(), err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is canceled. It closes the
// listener on return.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	defer listener.Close()

	log.Printf("context menu bridge listening on %s (backend %s)", listener.Addr(), s.gateway.Backend())

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				log.Println("context menu bridge shutting down")
				return context.Canceled
			default:
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				log.Printf("temporary accept error: %v", err)
				time.Sleep(250 * time.Millisecond)
				continue
			}
			return fmt.Errorf("accept connection: %w", err)
		}

		go s.handleConnection(ctx, conn)
	}
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(connectionTimeout))
	}

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	var req protocol.Request
	if err := decoder.Decode(&req); err != nil {
		_ = encoder.Encode(protocol.Response{Error: &protocol.Error{
			Kind:    protocol.KindBadRequest,
			Message: fmt.Sprintf("decode request: %v", err),
		}})
		return
	}

	if err := encoder.Encode(s.dispatch(ctx, req)); err != nil {
		logging.Debugf("bridge: failed to write response: %v", err)
	}
}

func (s *Server) dispatch(ctx context.Context, req protocol.Request) protocol.Response {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	resp := protocol.Response{ID: id}

	if !security.TokensMatch(req.Token, s.token) {
		logging.Debugf("bridge: rejected request %s with token %q", id, logging.MaskIdentifier(req.Token))
		resp.Error = &protocol.Error{Kind: protocol.KindUnauthorized, Message: "unauthorized"}
		return resp
	}

	switch protocol.NormalizeCommand(req.Command) {
	case protocol.CommandPing, protocol.CommandPopup:
		logging.Debugf("bridge: request %s command %s", id, req.Command)
		if err := s.gateway.Ping(ctx, req.Payload); err != nil {
			resp.Error = classify(err)
		}
	default:
		resp.Error = &protocol.Error{
			Kind:    protocol.KindUnknownCommand,
			Message: fmt.Sprintf("unknown command: %s", req.Command),
		}
	}
	return resp
}

func classify(err error) *protocol.Error {
	kind := contextmenu.Kind(err)
	if kind == "" {
		kind = contextmenu.KindPlatform
	}
	return &protocol.Error{Kind: kind, Message: err.Error()}
}
