package contextmenu

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://example.com/schemas/context-menu-options.json"

//go:embed schema.json
var schemaJSON []byte

var optionsSchema = compileSchema()

func compileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		panic("contextmenu: add schema resource: " + err.Error())
	}
	return compiler.MustCompile(schemaURL)
}

// Schema returns a copy of the JSON schema describing the popup payload.
func Schema() []byte {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)
	return out
}

// DecodeOptions parses a popup payload. The payload is validated against the
// schema first so that missing or mistyped fields are reported rather than
// silently zeroed.
func DecodeOptions(payload []byte) (Options, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return Options{}, &DeserializationError{Err: errors.New("empty payload")}
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return Options{}, &DeserializationError{Err: err}
	}
	if err := optionsSchema.Validate(doc); err != nil {
		return Options{}, &DeserializationError{Err: err}
	}

	var opts Options
	if err := json.Unmarshal(payload, &opts); err != nil {
		return Options{}, &DeserializationError{Err: err}
	}
	return opts, nil
}

// EncodeOptions serialises opts in the wire shape accepted by DecodeOptions.
func EncodeOptions(opts Options) ([]byte, error) {
	if opts.Items == nil {
		opts.Items = []MenuItem{}
	}
	return json.Marshal(opts)
}
