package i2slib

import (
	"time"

	i2s "github.com/robocamp/i2sparallel/esp32-i2s"
)

// Streamer is the part of the i2s driver used by DoubleBuffer.
type Streamer interface {
	Install(port i2s.Port, cfg *i2s.Config) error
	Uninstall(port i2s.Port) error
	SendDMA(port i2s.Port, head *i2s.Descriptor) error
	FlipToBuffer(port i2s.Port, id int)
	IsPreviousBufferFree() bool
	Poll(port i2s.Port) bool
}

type DoubleBufferConfig struct {
	Port        i2s.Port
	Width       i2s.BusWidth
	SampleRate  uint32
	Data        []int
	Clock       int
	InvertClock bool
	// Frames are the two frame buffers, both of the same length.
	Frames [2][]byte
	// Descriptors is the storage for the two chains. Each needs
	// DescriptorsFor(len(frame)) entries.
	Descriptors [2][]i2s.Descriptor
	// Timeout bounds WaitFree. Zero waits forever.
	Timeout time.Duration
	// Polled services end-of-frame from WaitFree through the driver's Poll
	// instead of an interrupt. Targets without interrupt dispatch need it.
	Polled bool
}

// DoubleBuffer streams one frame while the other is refilled. Both chains
// loop on themselves so the front frame is repeated until Swap.
type DoubleBuffer struct {
	drv    Streamer
	port   i2s.Port
	frames [2][]byte
	chains [2][]i2s.Descriptor
	front  int
	polled bool
	dl     deadliner
}

// NewDoubleBuffer links both frames, installs the driver with end-of-frame
// interrupts, unless cfg.Polled is set, and starts streaming frame 0.
func NewDoubleBuffer(drv Streamer, cfg DoubleBufferConfig) (*DoubleBuffer, error) {
	if len(cfg.Frames[0]) == 0 || len(cfg.Frames[0]) != len(cfg.Frames[1]) {
		return nil, ErrBadFrame
	}
	db := &DoubleBuffer{drv: drv, port: cfg.Port, frames: cfg.Frames, polled: cfg.Polled}
	for i := range db.chains {
		n, err := LinkChain(cfg.Descriptors[i], cfg.Frames[i])
		if err != nil {
			return nil, err
		}
		chain := cfg.Descriptors[i][:n]
		chain[n-1].SetEOF(true)
		MakeCyclic(chain)
		db.chains[i] = chain
	}
	db.dl.setTimeout(cfg.Timeout)

	err := drv.Install(cfg.Port, &i2s.Config{
		Width:        cfg.Width,
		SampleRate:   cfg.SampleRate,
		Data:         cfg.Data,
		Clock:        cfg.Clock,
		InvertClock:  cfg.InvertClock,
		EOFInterrupt: !cfg.Polled,
		ChainA:       db.chains[0],
		ChainB:       db.chains[1],
	})
	if err != nil {
		return nil, err
	}
	if err := drv.SendDMA(cfg.Port, &db.chains[0][0]); err != nil {
		drv.Uninstall(cfg.Port)
		return nil, err
	}
	return db, nil
}

// Back returns the frame that is not being streamed. It is safe to write
// once WaitFree has returned.
func (db *DoubleBuffer) Back() []byte { return db.frames[1-db.front] }

// Front returns the frame being streamed.
func (db *DoubleBuffer) Front() []byte { return db.frames[db.front] }

// Swap queues the back frame for output. The old front frame becomes the
// back frame once the peripheral finishes it; see WaitFree.
func (db *DoubleBuffer) Swap() {
	if db.polled {
		// An end-of-frame left pending from before the flip must not
		// release the new back frame.
		db.drv.Poll(db.port)
	}
	db.front = 1 - db.front
	db.drv.FlipToBuffer(db.port, db.front)
}

// WaitFree blocks until the frame swapped out by the last Swap has been
// fully output.
func (db *DoubleBuffer) WaitFree() error {
	dl := db.dl.newDeadline()
	for {
		if db.polled {
			db.drv.Poll(db.port)
		}
		if db.drv.IsPreviousBufferFree() {
			return nil
		}
		if dl.expired() {
			return ErrTimeout
		}
		gosched()
	}
}

// Close stops output and uninstalls the driver.
func (db *DoubleBuffer) Close() error {
	return db.drv.Uninstall(db.port)
}
