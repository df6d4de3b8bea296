// Package servicepoint encodes frames for the tiled LED display and sends
// them over UDP.
package servicepoint

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"split-ca/internal/core"
)

// Display geometry.
const (
	TileSize    = 8
	TileWidth   = 56
	TileHeight  = 20
	PixelWidth  = TileWidth * TileSize
	PixelHeight = TileHeight * TileSize

	// MaxBrightness is the brightest per-tile level the display accepts.
	MaxBrightness = 11
	// BrightnessFloor keeps dim tiles from going fully dark.
	BrightnessFloor = 48

	// FramePacing is the frame interval the display is built for.
	FramePacing = 30 * time.Millisecond

	DefaultAddress = "172.23.42.29:2342"
)

// CommandCode is the first header field of every packet.
type CommandCode uint16

const (
	CodeClear               CommandCode = 0x0002
	CodeCharBrightness      CommandCode = 0x0005
	CodeBitmapLinearWin     CommandCode = 0x0013
	CodeBitmapLinearWinZlib CommandCode = 0x0017
)

// HeaderSize is the length of the fixed packet header.
const HeaderSize = 10

// Header is five big-endian u16 values leading every packet.
type Header struct {
	Code       CommandCode
	A, B, C, D uint16
}

func (h Header) put(buf []byte) {
	binary.BigEndian.PutUint16(buf[0:], uint16(h.Code))
	binary.BigEndian.PutUint16(buf[2:], h.A)
	binary.BigEndian.PutUint16(buf[4:], h.B)
	binary.BigEndian.PutUint16(buf[6:], h.C)
	binary.BigEndian.PutUint16(buf[8:], h.D)
}

// ParseHeader reads the header from the start of a packet.
func ParseHeader(pkt []byte) (Header, error) {
	if len(pkt) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrShortPacket, len(pkt))
	}
	return Header{
		Code: CommandCode(binary.BigEndian.Uint16(pkt[0:])),
		A:    binary.BigEndian.Uint16(pkt[2:]),
		B:    binary.BigEndian.Uint16(pkt[4:]),
		C:    binary.BigEndian.Uint16(pkt[6:]),
		D:    binary.BigEndian.Uint16(pkt[8:]),
	}, nil
}

// Compression selects the bitmap payload encoding.
type Compression uint8

const (
	Uncompressed Compression = iota
	Zlib
)

var (
	// ErrShortPacket is returned when a packet is smaller than its header.
	ErrShortPacket = errors.New("servicepoint: short packet")
	// ErrUnalignedBitmap is returned for bitmaps not made of whole tiles
	// horizontally.
	ErrUnalignedBitmap = errors.New("servicepoint: bitmap width not a multiple of the tile size")
	// ErrUnknownCompression is returned by ParseCompression.
	ErrUnknownCompression = errors.New("servicepoint: unknown compression")
)

// ParseCompression maps a flag value to a Compression.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return Uncompressed, nil
	case "zlib":
		return Zlib, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownCompression, s)
}

func (c Compression) String() string {
	if c == Zlib {
		return "zlib"
	}
	return "none"
}

// Origin addresses the top-left corner of a window. X is in tiles, Y is in
// pixels for bitmaps and in tiles for brightness.
type Origin struct {
	X, Y int
}

// PackBits packs lit cells into row-major bits, most significant bit first.
func PackBits(g *core.Grid) []byte {
	w, h := g.Width(), g.Height()
	out := make([]byte, (w*h+7)/8)
	for i, v := range g.Cells() {
		if core.IsAlive(v) {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return out
}

// EncodeBitmap builds a BitmapLinearWin packet for g placed at o.
func EncodeBitmap(o Origin, g *core.Grid, c Compression) ([]byte, error) {
	if g.Width()%TileSize != 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnalignedBitmap, g.Width())
	}
	payload := PackBits(g)
	code := CodeBitmapLinearWin
	if c == Zlib {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			return nil, fmt.Errorf("servicepoint: compress bitmap: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("servicepoint: compress bitmap: %w", err)
		}
		payload = buf.Bytes()
		code = CodeBitmapLinearWinZlib
	}
	pkt := make([]byte, HeaderSize+len(payload))
	Header{
		Code: code,
		A:    uint16(o.X),
		B:    uint16(o.Y),
		C:    uint16(g.Width() / TileSize),
		D:    uint16(g.Height()),
	}.put(pkt)
	copy(pkt[HeaderSize:], payload)
	return pkt, nil
}

// EncodeBrightness builds a CharBrightness packet carrying one level per
// tile. Levels above MaxBrightness are clamped.
func EncodeBrightness(o Origin, levels *core.Grid) []byte {
	cells := levels.Cells()
	pkt := make([]byte, HeaderSize+len(cells))
	Header{
		Code: CodeCharBrightness,
		A:    uint16(o.X),
		B:    uint16(o.Y),
		C:    uint16(levels.Width()),
		D:    uint16(levels.Height()),
	}.put(pkt)
	for i, v := range cells {
		pkt[HeaderSize+i] = min(v, MaxBrightness)
	}
	return pkt
}

// Level maps a byte brightness value onto the display's level range,
// never dimmer than BrightnessFloor allows.
func Level(v uint8) uint8 {
	v = max(v, BrightnessFloor)
	return uint8(float32(v) / 255 * MaxBrightness)
}

// Levels converts every cell of src with Level into dst.
func Levels(dst, src *core.Grid) {
	out := dst.Cells()
	for i, v := range src.Cells() {
		out[i] = Level(v)
	}
}
