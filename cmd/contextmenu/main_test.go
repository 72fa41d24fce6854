package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.toml")
	cmd := newRootCommand("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestPopupTerminalFromStdin(t *testing.T) {
	out, err := runCLI(t, `{"items":[{"id":"a","label":"Copy"},{"id":"b","label":"Paste","enabled":false}]}`,
		"popup", "--backend", "terminal")
	require.NoError(t, err)
	assert.Contains(t, out, "Context menu at cursor")
	assert.Contains(t, out, "Paste (disabled)")
}

func TestPopupFromFileWithStubBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items":[{"id":"a","label":"Copy"}],"x":1,"y":2}`), 0o600))

	out, err := runCLI(t, "", "popup", "--file", path)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPopupReportsDeserializationKind(t *testing.T) {
	_, err := runCLI(t, `{"items":[{"id":"a"}]}`, "popup", "--backend", "terminal")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "deserialization error:"), err.Error())
}

func TestPopupRejectsUnknownBackend(t *testing.T) {
	_, err := runCLI(t, `{"items":[]}`, "popup", "--backend", "gtk")
	assert.ErrorContains(t, err, "unknown menu backend")
}

func TestSchemaCommandPrintsSchema(t *testing.T) {
	out, err := runCLI(t, "", "schema")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "ContextMenuOptions", doc["title"])
}

func TestReadPayload(t *testing.T) {
	data, err := readPayload(strings.NewReader("stdin"), "-")
	require.NoError(t, err)
	assert.Equal(t, "stdin", string(data))

	_, err = readPayload(strings.NewReader(""), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty(" ", "b", "c"))
	assert.Equal(t, "", firstNonEmpty())
}
