package i2s

import (
	"context"
	"sync/atomic"

	"golang.org/x/exp/slog"
)

// Platform is the SoC around the I2S peripheral: module clock gating,
// the register blocks, the GPIO matrix and the interrupt controller.
type Platform interface {
	Router
	// Registers returns the register block of port.
	Registers(port Port) *Registers
	// EnableModule pulses the module reset and ungates its clock.
	EnableModule(port Port)
	DisableModule(port Port)
	// AllocInterrupt attaches isr to the interrupt source as a level 1
	// handler. isr runs in interrupt context with port as argument.
	AllocInterrupt(port Port, source uint32, isr func(Port)) error
	FreeInterrupt(port Port)
}

// session is the state of an installed driver.
type session struct {
	chainA []Descriptor
	chainB []Descriptor
	port   Port
	intr   bool
	// loopCount is cleared on every flip and never advanced. It is kept
	// for callers that read PreviousBufferOutputLoopCount.
	loopCount uint32
}

// Driver streams descriptor chains through the I2S peripherals of a chip
// variant. At most one session is installed at a time.
type Driver[V Variant] struct {
	platform Platform
	regs     [maxPorts]*Registers
	logger   *slog.Logger
	state    *session
	free     atomic.Bool
	callback func()
}

// New returns a driver for the peripherals exposed by p.
func New[V Variant](p Platform) *Driver[V] {
	var v V
	d := &Driver[V]{platform: p}
	for port := 0; port < v.numPorts(); port++ {
		d.regs[port] = p.Registers(Port(port))
	}
	d.free.Store(true)
	return d
}

// SetLogger sets the logger used for install-time debug output.
// A nil logger disables logging.
func (d *Driver[V]) SetLogger(l *slog.Logger) { d.logger = l }

func (d *Driver[V]) debug(msg string, attrs ...slog.Attr) {
	if d.logger == nil {
		return
	}
	d.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}

func (d *Driver[V]) portRegs(port Port) (*Registers, error) {
	var v V
	if int(port) >= v.numPorts() {
		return nil, ErrInvalidArg
	}
	return d.regs[port], nil
}

// Install configures port for parallel output as described by cfg and
// arms a new session, replacing any session already installed. Nothing is
// touched when cfg is rejected. Once the hardware has been touched the
// previous session is gone, even if Install then fails.
func (d *Driver[V]) Install(port Port, cfg *Config) error {
	var v V
	r, err := d.portRegs(port)
	if err != nil {
		return err
	}
	if cfg == nil || !cfg.Width.isValid() || len(cfg.Data) < int(cfg.Width) {
		return ErrInvalidArg
	}
	div, err := clockDivider[V](cfg.Width, cfg.SampleRate)
	if err != nil {
		return err
	}
	sig, ok := v.signals(port, cfg.Width)
	if !ok {
		return ErrInvalidArg
	}
	for _, pin := range cfg.Data[:cfg.Width] {
		if !validOutput[V](pin) {
			return ErrInvalidArg
		}
	}
	if !validOutput[V](cfg.Clock) {
		return ErrInvalidArg
	}

	d.release()
	d.platform.EnableModule(port)
	routeBus(d.platform, cfg, sig)
	if err := configure[V](r, cfg.Width, div); err != nil {
		d.platform.DisableModule(port)
		return err
	}

	st := &session{
		chainA: cfg.ChainA,
		chainB: cfg.ChainB,
		port:   port,
	}
	d.state = st

	if cfg.EOFInterrupt {
		err := d.platform.AllocInterrupt(port, sig.irq, d.handleInterrupt)
		if err != nil {
			d.state = nil
			d.platform.DisableModule(port)
			return &intrError{err: err}
		}
		st.intr = true
		r.INT_ENA.SetBits(intOutEOF)
	}
	d.debug("i2s: installed",
		slog.String("chip", v.String()),
		slog.Int("port", int(port)),
		slog.Int("width", int(cfg.Width)),
		slog.Uint64("rate", uint64(cfg.SampleRate)),
		slog.Uint64("div", uint64(div)),
		slog.Bool("eof", cfg.EOFInterrupt),
	)
	return nil
}

// release drops the current session and its interrupt.
func (d *Driver[V]) release() {
	st := d.state
	if st == nil {
		return
	}
	if st.intr {
		d.regs[st.port].INT_ENA.ClearBits(intOutEOF)
		d.platform.FreeInterrupt(st.port)
	}
	d.state = nil
}

// Uninstall stops port, releases the session and gates the module clock.
// Routed GPIOs are left as they are.
func (d *Driver[V]) Uninstall(port Port) error {
	r, err := d.portRegs(port)
	if err != nil {
		return err
	}
	d.StopDMA(port)
	r.INT_ENA.ClearBits(intOutEOF)
	d.release()
	d.platform.DisableModule(port)
	d.debug("i2s: uninstalled", slog.Int("port", int(port)))
	return nil
}

// Installed reports whether a session is armed.
func (d *Driver[V]) Installed() bool { return d.state != nil }

// SetShiftCompleteCallback sets fn to be called on every end-of-frame,
// from the interrupt or from Poll. fn may run in interrupt context: it must
// not block or allocate and may only call SetPreviousBufferNotFree on the
// driver. Set it before starting DMA.
func (d *Driver[V]) SetShiftCompleteCallback(fn func()) { d.callback = fn }

// Poll runs the end-of-frame handshake from the foreground when the
// peripheral has raised out-EOF on port: it acknowledges the event, marks
// the previous buffer free and calls the shift complete callback. Use it
// with EOFInterrupt unset on targets without interrupt dispatch. It
// reports whether an end-of-frame was pending.
func (d *Driver[V]) Poll(port Port) bool {
	r, err := d.portRegs(port)
	if err != nil {
		return false
	}
	if st := d.state; st == nil || st.port != port {
		return false
	}
	if !r.INT_RAW.HasBits(intOutEOF) {
		return false
	}
	d.handleInterrupt(port)
	return true
}

func (d *Driver[V]) handleInterrupt(port Port) {
	var v V
	v.clearOutEOF(d.regs[port])
	d.free.Store(true)
	if cb := d.callback; cb != nil {
		cb()
	}
}
