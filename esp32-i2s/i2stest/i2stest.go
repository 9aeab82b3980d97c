// Package i2stest provides an in-memory SoC for exercising the i2s driver
// on the host.
package i2stest

import (
	i2s "github.com/robocamp/i2sparallel/esp32-i2s"
)

// Route is the GPIO matrix state of one pin.
type Route struct {
	Signal   uint32
	Output   bool
	Inverted bool
	Drive    uint8
}

// Platform implements i2s.Platform over plain memory and records every
// call made by the driver.
type Platform struct {
	Regs [2]i2s.Registers

	Enabled  [2]int // EnableModule calls
	Disabled [2]int // DisableModule calls
	ClockOn  [2]bool

	Routes map[int]*Route

	// AllocErr, when set, is returned by AllocInterrupt.
	AllocErr   error
	ISR        [2]func(i2s.Port)
	IRQSource  [2]uint32
	FreedIntrs [2]int
}

var _ i2s.Platform = (*Platform)(nil)

func New() *Platform {
	return &Platform{Routes: make(map[int]*Route)}
}

func (p *Platform) Registers(port i2s.Port) *i2s.Registers { return &p.Regs[port] }

func (p *Platform) EnableModule(port i2s.Port) {
	p.Enabled[port]++
	p.ClockOn[port] = true
}

func (p *Platform) DisableModule(port i2s.Port) {
	p.Disabled[port]++
	p.ClockOn[port] = false
}

func (p *Platform) route(pin int) *Route {
	r, ok := p.Routes[pin]
	if !ok {
		r = &Route{}
		p.Routes[pin] = r
	}
	return r
}

func (p *Platform) ConfigureOutput(pin int) { p.route(pin).Output = true }

func (p *Platform) ConnectOutput(pin int, signal uint32, invert, invertEnable bool) {
	r := p.route(pin)
	r.Signal = signal
	r.Inverted = invert
}

func (p *Platform) SetOutputInverted(pin int, inverted bool) { p.route(pin).Inverted = inverted }

func (p *Platform) SetDriveStrength(pin int, strength uint8) { p.route(pin).Drive = strength }

func (p *Platform) AllocInterrupt(port i2s.Port, source uint32, isr func(i2s.Port)) error {
	if p.AllocErr != nil {
		return p.AllocErr
	}
	p.ISR[port] = isr
	p.IRQSource[port] = source
	return nil
}

func (p *Platform) FreeInterrupt(port i2s.Port) {
	p.ISR[port] = nil
	p.FreedIntrs[port]++
}

const outEOF = 1 << 12

// FireEOF raises the out-EOF interrupt of port as the peripheral would on
// consuming a descriptor marked end-of-frame. The handler only runs when
// the interrupt is both enabled and attached; otherwise the event stays
// pending in INT_RAW for Driver.Poll. It reports whether the handler ran.
func (p *Platform) FireEOF(port i2s.Port) bool {
	r := &p.Regs[port]
	r.INT_RAW.SetBits(outEOF)
	if !r.INT_ENA.HasBits(outEOF) || p.ISR[port] == nil {
		return false
	}
	r.INT_ST.SetBits(outEOF)
	p.ISR[port](port)
	p.Settle(port)
	return true
}

// Settle applies a pending acknowledge: an out-EOF bit written to INT_CLR
// clears the raw and masked status, as the write-1-to-clear register does
// in hardware.
func (p *Platform) Settle(port i2s.Port) {
	r := &p.Regs[port]
	if r.INT_CLR.HasBits(outEOF) {
		r.INT_RAW.ClearBits(outEOF)
		r.INT_ST.ClearBits(outEOF)
		r.INT_CLR.ClearBits(outEOF)
	}
}
