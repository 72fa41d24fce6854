package logging

import (
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

const maxPayloadPreview = 512

var debugEnabled atomic.Bool

// EnableDebug turns on verbose debug logging.
func EnableDebug() {
	if debugEnabled.Swap(true) {
		return
	}
	log.Printf("[DEBUG] debug logging enabled")
}

// SetDebug switches debug logging on or off, typically after a config reload.
func SetDebug(enabled bool) {
	if enabled {
		EnableDebug()
		return
	}
	debugEnabled.Store(false)
}

// DebugEnabled reports whether debug logging is active.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf emits a formatted debug log message when debugging is enabled.
func Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	log.Printf("[DEBUG] "+format, args...)
}

// DescribePayload renders a request body for debug output. Long payloads are
// cut short and binary data is base64 encoded.
func DescribePayload(body []byte) string {
	if len(body) == 0 {
		return "(empty)"
	}

	preview := body
	suffix := ""
	if len(preview) > maxPayloadPreview {
		preview = preview[:maxPayloadPreview]
		suffix = "..."
	}

	if utf8.Valid(preview) {
		return fmt.Sprintf("(utf-8, %d bytes): %s%s", len(body), string(preview), suffix)
	}

	encoded := base64.StdEncoding.EncodeToString(preview)
	return fmt.Sprintf("(base64, %d bytes): %s%s", len(body), encoded, suffix)
}

// MaskIdentifier obscures sensitive identifiers leaving only the last four characters visible.
func MaskIdentifier(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(trimmed)-4) + trimmed[len(trimmed)-4:]
}
