//go:build tinygo && (esp32 || esp32s2)

package i2s

import (
	"errors"
	"runtime/volatile"
	"unsafe"
)

// TinyGo has no interrupt dispatch on Xtensa, so the end-of-frame
// handshake runs from Driver.Poll instead.
var errNoInterruptDispatch = errors.New("i2s: no interrupt dispatch on this target, use Poll")

// socPlatform reaches the SoC through its memory mapped registers.
type socPlatform struct {
	i2s       [maxPorts]uintptr
	periphBit [maxPorts]uint32
	clkEn     uintptr
	rstEn     uintptr

	gpioEnableW1TS  uintptr
	gpioEnable1W1TS uintptr
	funcOutSel      uintptr
	iomux           func(pin int) uintptr
}

// GPIO_FUNCn_OUT_SEL_CFG
const (
	outSel_Msk   = 0x1ff
	outInvSel    = 1 << 9
	outOenSel    = 1 << 10
	outOenInvSel = 1 << 11
)

// IO_MUX_GPIOn
const (
	muxFunDrv_Pos = 10
	muxFunDrv_Msk = 0x3
	muxMCUSel_Pos = 12
	muxMCUSel_Msk = 0x7
	muxFuncGPIO   = 2
)

func reg(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

func (p *socPlatform) Registers(port Port) *Registers {
	return (*Registers)(unsafe.Pointer(p.i2s[port]))
}

func (p *socPlatform) EnableModule(port Port) {
	bit := p.periphBit[port]
	reg(p.clkEn).SetBits(bit)
	reg(p.rstEn).SetBits(bit)
	reg(p.rstEn).ClearBits(bit)
}

func (p *socPlatform) DisableModule(port Port) {
	bit := p.periphBit[port]
	reg(p.clkEn).ClearBits(bit)
	reg(p.rstEn).SetBits(bit)
}

func (p *socPlatform) ConfigureOutput(pin int) {
	reg(p.iomux(pin)).ReplaceBits(muxFuncGPIO, muxMCUSel_Msk, muxMCUSel_Pos)
	if pin < 32 {
		reg(p.gpioEnableW1TS).Set(1 << pin)
	} else {
		reg(p.gpioEnable1W1TS).Set(1 << (pin - 32))
	}
}

func (p *socPlatform) outSelCfg(pin int) *volatile.Register32 {
	return reg(p.funcOutSel + uintptr(pin)*4)
}

func (p *socPlatform) ConnectOutput(pin int, signal uint32, invert, invertEnable bool) {
	cfg := signal&outSel_Msk | outOenSel
	if invert {
		cfg |= outInvSel
	}
	if invertEnable {
		cfg |= outOenInvSel
	}
	p.outSelCfg(pin).Set(cfg)
}

func (p *socPlatform) SetOutputInverted(pin int, inverted bool) {
	if inverted {
		p.outSelCfg(pin).SetBits(outInvSel)
	} else {
		p.outSelCfg(pin).ClearBits(outInvSel)
	}
}

func (p *socPlatform) SetDriveStrength(pin int, strength uint8) {
	reg(p.iomux(pin)).ReplaceBits(uint32(strength), muxFunDrv_Msk, muxFunDrv_Pos)
}

func (p *socPlatform) AllocInterrupt(port Port, source uint32, isr func(Port)) error {
	return errNoInterruptDispatch
}

func (p *socPlatform) FreeInterrupt(port Port) {}
