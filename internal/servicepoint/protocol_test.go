package servicepoint

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"testing"

	"split-ca/internal/core"
)

func TestPackBits(t *testing.T) {
	g := core.NewGrid(16, 1)
	g.Set(0, 0, core.Alive)
	g.Set(7, 0, core.Alive)
	g.Set(9, 0, core.Midpoint)
	g.Set(10, 0, core.Midpoint-1)
	got := PackBits(g)
	want := []byte{0x81, 0x40}
	if !bytes.Equal(got, want) {
		t.Fatalf("PackBits = %x, expected %x", got, want)
	}
}

func TestEncodeBitmapHeader(t *testing.T) {
	g := core.NewGrid(PixelWidth, PixelHeight)
	g.Set(0, 0, core.Alive)
	pkt, err := EncodeBitmap(Origin{}, g, Uncompressed)
	if err != nil {
		t.Fatal(err)
	}
	h, err := ParseHeader(pkt)
	if err != nil {
		t.Fatal(err)
	}
	want := Header{Code: CodeBitmapLinearWin, A: 0, B: 0, C: TileWidth, D: PixelHeight}
	if h != want {
		t.Fatalf("header %+v, expected %+v", h, want)
	}
	if len(pkt) != HeaderSize+PixelWidth*PixelHeight/8 {
		t.Fatalf("packet length %d", len(pkt))
	}
	if pkt[HeaderSize] != 0x80 {
		t.Fatalf("first payload byte %x", pkt[HeaderSize])
	}
}

func TestEncodeBitmapZlib(t *testing.T) {
	g := core.NewGrid(16, 4)
	core.NewRNG(3).FillBernoulli(g, 0.5)
	pkt, err := EncodeBitmap(Origin{X: 1, Y: 2}, g, Zlib)
	if err != nil {
		t.Fatal(err)
	}
	h, _ := ParseHeader(pkt)
	if h.Code != CodeBitmapLinearWinZlib || h.A != 1 || h.B != 2 || h.C != 2 || h.D != 4 {
		t.Fatalf("header %+v", h)
	}
	zr, err := zlib.NewReader(bytes.NewReader(pkt[HeaderSize:]))
	if err != nil {
		t.Fatal(err)
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw, PackBits(g)) {
		t.Fatal("decompressed payload differs from packed bits")
	}
}

func TestEncodeBitmapRejectsPartialTiles(t *testing.T) {
	if _, err := EncodeBitmap(Origin{}, core.NewGrid(12, 8), Uncompressed); !errors.Is(err, ErrUnalignedBitmap) {
		t.Fatalf("expected ErrUnalignedBitmap, got %v", err)
	}
}

func TestEncodeBrightness(t *testing.T) {
	levels := core.NewGrid(3, 2)
	copy(levels.Cells(), []uint8{0, 5, 11, 12, 200, 1})
	pkt := EncodeBrightness(Origin{}, levels)
	h, _ := ParseHeader(pkt)
	if h != (Header{Code: CodeCharBrightness, C: 3, D: 2}) {
		t.Fatalf("header %+v", h)
	}
	want := []byte{0, 5, 11, 11, 11, 1}
	if !bytes.Equal(pkt[HeaderSize:], want) {
		t.Fatalf("payload %v, expected %v", pkt[HeaderSize:], want)
	}
}

func TestLevel(t *testing.T) {
	cases := map[uint8]uint8{0: 2, BrightnessFloor: 2, 128: 5, 255: MaxBrightness}
	for in, want := range cases {
		if got := Level(in); got != want {
			t.Fatalf("Level(%d) = %d, expected %d", in, got, want)
		}
	}
}

func TestParseCompression(t *testing.T) {
	if c, err := ParseCompression("zlib"); err != nil || c != Zlib {
		t.Fatalf("ParseCompression(zlib) = %v, %v", c, err)
	}
	if c, err := ParseCompression(""); err != nil || c != Uncompressed {
		t.Fatalf("ParseCompression(\"\") = %v, %v", c, err)
	}
	if _, err := ParseCompression("lzma"); !errors.Is(err, ErrUnknownCompression) {
		t.Fatalf("expected ErrUnknownCompression, got %v", err)
	}
	if _, err := ParseHeader([]byte{1, 2}); !errors.Is(err, ErrShortPacket) {
		t.Fatalf("expected ErrShortPacket, got %v", err)
	}
}
