//go:build !windows

package native

func platformNormalizeIcon(data []byte) []byte {
	return cloneIcon(data)
}
