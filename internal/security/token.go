package security

import (
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const bridgeTokenPrefix = "contextmenu-bridge|"

// CompiledSecret may be embedded at build time via -ldflags. When set it takes
// precedence over configured tokens and secrets.
var CompiledSecret string

// ResolveBridgeToken returns the token callers must present to the invoke
// bridge. An explicit token wins over one derived from secret.
func ResolveBridgeToken(token, secret string) string {
	if compiled := strings.TrimSpace(CompiledSecret); compiled != "" {
		return DeriveBridgeToken(compiled)
	}
	if token = strings.TrimSpace(token); token != "" {
		return token
	}
	return DeriveBridgeToken(secret)
}

// DeriveBridgeToken hashes the provided secret into a deterministic token.
func DeriveBridgeToken(secret string) string {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(bridgeTokenPrefix + secret))
	return hex.EncodeToString(sum[:])
}

// TokensMatch compares tokens in constant time. Empty tokens never match.
func TokensMatch(got, want string) bool {
	if got == "" || want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
