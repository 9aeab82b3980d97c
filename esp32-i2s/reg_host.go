//go:build !tinygo

package i2s

import "sync/atomic"

// Register32 mirrors the method set of TinyGo's volatile.Register32 so the
// driver can run against an in-memory register block on the host.
type Register32 struct {
	Reg uint32
}

func (r *Register32) Get() uint32 { return atomic.LoadUint32(&r.Reg) }

func (r *Register32) Set(value uint32) { atomic.StoreUint32(&r.Reg, value) }

func (r *Register32) SetBits(value uint32) { r.Set(r.Get() | value) }

func (r *Register32) ClearBits(value uint32) { r.Set(r.Get() &^ value) }

func (r *Register32) HasBits(value uint32) bool { return r.Get()&value != 0 }

func (r *Register32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | (value&mask)<<pos)
}
