// Package i2slib builds on the i2s driver: descriptor chains over frame
// buffers, ping-pong double buffering and a HUB75 frame encoder.
package i2slib

import (
	"errors"
	"runtime"
	"time"
)

var (
	ErrTimeout    = errors.New("i2slib:timeout")
	ErrShortChain = errors.New("i2slib:not enough descriptors for buffer")
	ErrBadFrame   = errors.New("i2slib:invalid frame geometry")
)

func gosched() {
	runtime.Gosched()
}

// deadline is the end of a bounded wait. The zero deadline never expires.
type deadline struct {
	t time.Time
}

func (dl deadline) expired() bool {
	return !dl.t.IsZero() && !time.Now().Before(dl.t)
}

// deadliner hands out deadlines a fixed timeout from now. A zero timeout
// waits forever.
type deadliner struct {
	timeout time.Duration
}

func (ch deadliner) newDeadline() deadline {
	if ch.timeout <= 0 {
		return deadline{}
	}
	return deadline{t: time.Now().Add(ch.timeout)}
}

func (ch *deadliner) setTimeout(timeout time.Duration) {
	ch.timeout = max(timeout, 0)
}
