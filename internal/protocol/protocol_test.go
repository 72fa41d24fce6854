package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCommand(t *testing.T) {
	assert.Equal(t, CommandPopup, NormalizeCommand("plugin:context-menu|popup"))
	assert.Equal(t, CommandPing, NormalizeCommand(" PING "))
	assert.Equal(t, "plugin:other|popup", NormalizeCommand("plugin:other|popup"))
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	assert.Equal(t, "unauthorized: unauthorized", err.Error())
}
