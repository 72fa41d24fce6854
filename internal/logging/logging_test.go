package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskIdentifier(t *testing.T) {
	assert.Equal(t, "", MaskIdentifier("   "))
	assert.Equal(t, "****", MaskIdentifier("abc"))
	assert.Equal(t, "******cdef", MaskIdentifier("0123abcdef"))
}

func TestDescribePayload(t *testing.T) {
	assert.Equal(t, "(empty)", DescribePayload(nil))
	assert.Equal(t, `(utf-8, 11 bytes): {"items":1}`, DescribePayload([]byte(`{"items":1}`)))
	assert.Equal(t, "(base64, 2 bytes): //4=", DescribePayload([]byte{0xff, 0xfe}))

	long := strings.Repeat("a", maxPayloadPreview+10)
	out := DescribePayload([]byte(long))
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.Contains(t, out, "522 bytes")
}

func TestSetDebugToggles(t *testing.T) {
	t.Cleanup(func() { SetDebug(false) })

	SetDebug(true)
	assert.True(t, DebugEnabled())
	SetDebug(false)
	assert.False(t, DebugEnabled())
}
