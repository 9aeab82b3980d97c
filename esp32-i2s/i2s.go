// Package i2s drives the I2S peripheral of the ESP32 family in LCD mode,
// streaming DMA descriptor chains out as a parallel bus of 8, 16 or 24
// data lines plus a clock.
//
// The driver does not render pixels and does not allocate frame memory.
// Callers build one or two descriptor chains over their own buffers,
// install the driver and then alternate between the chains with
// FlipToBuffer, polling IsPreviousBufferFree to know when the released
// chain may be refilled.
package i2s

import (
	"errors"
)

// I2S errors.
var (
	ErrInvalidArg = errors.New("i2s: invalid argument")
	ErrIntrAlloc  = errors.New("i2s: interrupt allocation failed")
	ErrTimeout    = errors.New("i2s: fifo reset timeout")
)

const timeoutRetries = 1 << 16

// Port selects one of the I2S peripheral instances.
type Port uint8

const (
	I2S0 Port = iota
	I2S1      // ESP32 only.
)

const maxPorts = 2

// BusWidth is the number of parallel data lines driven by the peripheral.
type BusWidth uint8

const (
	Width8  BusWidth = 8
	Width16 BusWidth = 16
	Width24 BusWidth = 24
)

func (w BusWidth) isValid() bool {
	return w == Width8 || w == Width16 || w == Width24
}

// NoPin marks an unused bus line.
const NoPin = -1

// Config is the install-time configuration of a streaming session.
// The descriptor chains are owned by the caller and must stay valid until
// Uninstall returns.
type Config struct {
	Width      BusWidth
	SampleRate uint32
	// Data holds the GPIO for each bus line, bit 0 first. At least Width
	// entries are required; NoPin leaves a line unrouted.
	Data        []int
	Clock       int
	InvertClock bool
	// EOFInterrupt enables the end-of-frame interrupt which drives the
	// previous-buffer-free handshake and the shift complete callback.
	EOFInterrupt bool
	ChainA       []Descriptor
	ChainB       []Descriptor
}

type intrError struct {
	err error
}

func (e *intrError) Error() string        { return ErrIntrAlloc.Error() + ": " + e.err.Error() }
func (e *intrError) Unwrap() error        { return e.err }
func (e *intrError) Is(target error) bool { return target == ErrIntrAlloc }
