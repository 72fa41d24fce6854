package protocol

import (
	"encoding/json"
	"strings"
)

const (
	// CommandPing shows a menu; it is the name the plugin registers.
	CommandPing = "ping"
	// CommandPopup is the name the frontend guest bindings invoke.
	CommandPopup = "popup"

	// PluginPrefix qualifies commands sent through the host shell.
	PluginPrefix = "plugin:context-menu|"
)

// Error kinds beyond the gateway's own taxonomy.
const (
	KindUnauthorized   = "unauthorized"
	KindUnknownCommand = "unknown_command"
	KindBadRequest     = "bad_request"
)

// Request is the invoke payload sent by the host shell to the bridge.
type Request struct {
	Token   string          `json:"token"`
	ID      string          `json:"id,omitempty"`
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is the reply emitted by the bridge. A nil Error means success.
type Response struct {
	ID    string `json:"id,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Error is a classified failure.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Kind + ": " + e.Message
}

// NormalizeCommand strips the plugin prefix and case from a command name.
func NormalizeCommand(command string) string {
	trimmed := strings.TrimSpace(command)
	trimmed = strings.TrimPrefix(trimmed, PluginPrefix)
	return strings.ToLower(trimmed)
}
