package native

import _ "embed"

//go:embed icon.png
var iconData []byte

func cloneIcon(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp
}

// normalizedIcon converts data into the container the platform tray expects,
// falling back to the raw bytes when conversion fails.
func normalizedIcon(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	if normalized := platformNormalizeIcon(data); len(normalized) > 0 {
		return normalized
	}
	return cloneIcon(data)
}
