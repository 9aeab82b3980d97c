package i2slib

import (
	"image/color"

	"tinygo.org/x/drivers"

	i2s "github.com/robocamp/i2sparallel/esp32-i2s"
)

// Bus layout of a HUB75 frame word on a 16-bit bus.
const (
	hub75R1       = 1 << 0
	hub75G1       = 1 << 1
	hub75B1       = 1 << 2
	hub75Addr_Pos = 8
	hub75Addr_Msk = 0x1f
	hub75Latch    = 1 << 13
	hub75OE       = 1 << 14 // active low
)

// Hub75Pins assigns GPIOs to the HUB75 connector. E may be i2s.NoPin on
// panels with 16 or fewer row pairs.
type Hub75Pins struct {
	R1, G1, B1    int
	R2, G2, B2    int
	A, B, C, D, E int
	LAT, OE       int
	CLK           int
}

// Data returns the 16-bit bus line assignment for the pins, for use as
// DoubleBufferConfig.Data.
func (p Hub75Pins) Data() []int {
	return []int{
		p.R1, p.G1, p.B1, p.R2, p.G2, p.B2, i2s.NoPin, i2s.NoPin,
		p.A, p.B, p.C, p.D, p.E, p.LAT, p.OE, i2s.NoPin,
	}
}

type Hub75Config struct {
	Width  int16
	Height int16
	// SwapHalfWords stores each pair of 16-bit words in reverse order,
	// as the ESP32 FIFO emits the upper half of a 32-bit word first.
	SwapHalfWords bool
}

// Hub75FrameSize returns the size in bytes of one encoded frame.
func Hub75FrameSize(width, height int16) int {
	return int(width) * int(height/2) * 2
}

// Hub75 is a 3-bit colour HUB75 panel fed through a DoubleBuffer.
type Hub75 struct {
	db   *DoubleBuffer
	w, h int16
	swap bool
	pix  []uint8
}

var _ drivers.Displayer = (*Hub75)(nil)

// NewHub75 returns a panel drawing into the frames of db, which must be
// Hub75FrameSize bytes long and stream on a 16-bit bus.
func NewHub75(db *DoubleBuffer, cfg Hub75Config) (*Hub75, error) {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || w%2 != 0 || h <= 0 || h%2 != 0 || int(h/2) > hub75Addr_Msk+1 {
		return nil, ErrBadFrame
	}
	if len(db.Back()) != Hub75FrameSize(w, h) {
		return nil, ErrBadFrame
	}
	return &Hub75{
		db:   db,
		w:    w,
		h:    h,
		swap: cfg.SwapHalfWords,
		pix:  make([]uint8, int(w)*int(h)),
	}, nil
}

func (hub *Hub75) Size() (x, y int16) { return hub.w, hub.h }

// SetPixel sets the pixel at (x, y). Each channel is on when at or above
// half intensity.
func (hub *Hub75) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= hub.w || y < 0 || y >= hub.h {
		return
	}
	var rgb uint8
	if c.R >= 0x80 {
		rgb |= hub75R1
	}
	if c.G >= 0x80 {
		rgb |= hub75G1
	}
	if c.B >= 0x80 {
		rgb |= hub75B1
	}
	hub.pix[int(y)*int(hub.w)+int(x)] = rgb
}

// Display waits for the back frame to be released, encodes the pixels
// into it and queues it for output.
func (hub *Hub75) Display() error {
	if err := hub.db.WaitFree(); err != nil {
		return err
	}
	hub.encode(hub.db.Back())
	hub.db.Swap()
	return nil
}

// encode writes one word per column for each row pair. The upper half
// drives R1 G1 B1, the lower half R2 G2 B2. The last column of a row
// latches it with the output blanked.
func (hub *Hub75) encode(frame []byte) {
	w := int(hub.w)
	half := int(hub.h / 2)
	for row := 0; row < half; row++ {
		addr := uint16(row&hub75Addr_Msk) << hub75Addr_Pos
		for x := 0; x < w; x++ {
			top := hub.pix[row*w+x]
			bottom := hub.pix[(row+half)*w+x]
			word := uint16(top) | uint16(bottom)<<3 | addr
			if x == w-1 {
				word |= hub75Latch | hub75OE
			}
			i := row*w + x
			if hub.swap {
				i ^= 1
			}
			frame[2*i] = byte(word)
			frame[2*i+1] = byte(word >> 8)
		}
	}
}
