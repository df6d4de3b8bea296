package servicepoint

import (
	"errors"
	"fmt"
	"net"

	"split-ca/internal/core"
)

// ErrInvalidDestination is returned by Dial for addresses that do not resolve.
var ErrInvalidDestination = errors.New("servicepoint: invalid destination")

// Connection sends frames to one display. Frames are always placed at the
// display origin.
type Connection struct {
	conn        net.Conn
	compression Compression
}

// Dial resolves addr and opens a UDP socket toward it.
func Dial(addr string, c Compression) (*Connection, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidDestination, addr, err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("servicepoint: dial %s: %w", raddr, err)
	}
	return &Connection{conn: conn, compression: c}, nil
}

// RemoteAddr returns the display address.
func (c *Connection) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }

// SendBitmap sends the pixel frame.
func (c *Connection) SendBitmap(g *core.Grid) error {
	pkt, err := EncodeBitmap(Origin{}, g, c.compression)
	if err != nil {
		return err
	}
	return c.send("pixels", pkt)
}

// SendBrightness sends per-tile brightness levels.
func (c *Connection) SendBrightness(levels *core.Grid) error {
	return c.send("brightness", EncodeBrightness(Origin{}, levels))
}

// Clear blanks the display.
func (c *Connection) Clear() error {
	pkt := make([]byte, HeaderSize)
	Header{Code: CodeClear}.put(pkt)
	return c.send("clear", pkt)
}

func (c *Connection) send(what string, pkt []byte) error {
	if _, err := c.conn.Write(pkt); err != nil {
		return fmt.Errorf("servicepoint: send %s: %w", what, err)
	}
	return nil
}

// Close releases the socket.
func (c *Connection) Close() error { return c.conn.Close() }
