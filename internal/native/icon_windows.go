//go:build windows

package native

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"

	"github.com/example/contextmenu/internal/logging"
)

// icoHeader and icoEntry follow the ICONDIR/ICONDIRENTRY layout for a single
// PNG-compressed image.
type icoHeader struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

// icoDataOffset is the size of icoHeader plus one icoEntry.
const icoDataOffset = 6 + 16

type icoEntry struct {
	Width       uint8
	Height      uint8
	Colors      uint8
	Reserved    uint8
	Planes      uint16
	BitsPerPix  uint16
	Size        uint32
	ImageOffset uint32
}

// The Windows tray only accepts ICO containers.
func platformNormalizeIcon(data []byte) []byte {
	if isICO(data) {
		return cloneIcon(data)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		logging.Debugf("tray icon is not a png: %v", err)
		return nil
	}

	out, err := wrapPNGAsICO(data, cfg)
	if err != nil {
		logging.Debugf("failed to wrap tray icon as ico: %v", err)
		return nil
	}
	return out
}

func wrapPNGAsICO(pngData []byte, cfg image.Config) ([]byte, error) {
	buf := &bytes.Buffer{}
	header := icoHeader{Type: 1, Count: 1}
	entry := icoEntry{
		Width:       icoDimension(cfg.Width),
		Height:      icoDimension(cfg.Height),
		Planes:      1,
		BitsPerPix:  32,
		Size:        uint32(len(pngData)),
		ImageOffset: icoDataOffset,
	}
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, entry); err != nil {
		return nil, err
	}
	buf.Write(pngData)
	return buf.Bytes(), nil
}

// icoDimension encodes 256 and larger as zero.
func icoDimension(v int) uint8 {
	if v <= 0 || v >= 256 {
		return 0
	}
	return uint8(v)
}

func isICO(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x00 && data[1] == 0x00 && data[2] == 0x01 && data[3] == 0x00
}
