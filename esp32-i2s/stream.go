package i2s

import "unsafe"

// SendDMA points port at the chain starting at head and starts output.
func (d *Driver[V]) SendDMA(port Port, head *Descriptor) error {
	r, err := d.portRegs(port)
	if err != nil {
		return err
	}
	if head == nil {
		return ErrInvalidArg
	}
	r.LC_CONF.Set(lcOutDataBurstEn | lcOutDscrBurstEn)
	r.OUT_LINK.ReplaceBits(uint32(uintptr(unsafe.Pointer(head))), outLinkAddr_Msk, 0)
	r.OUT_LINK.ClearBits(outLinkStop)
	r.OUT_LINK.SetBits(outLinkStart)
	r.CONF.SetBits(confTxStart)
	return nil
}

// StopDMA halts descriptor fetches on port. Data already in the FIFO may
// still drain for a few samples.
func (d *Driver[V]) StopDMA(port Port) error {
	r, err := d.portRegs(port)
	if err != nil {
		return err
	}
	r.OUT_LINK.SetBits(outLinkStop)
	r.OUT_LINK.ClearBits(outLinkStart)
	r.CONF.ClearBits(confTxStart)
	return nil
}

// FlipToBuffer makes chain A (id 0) or chain B (any other id) the next one
// the peripheral enters by pointing the tails of both chains at its head.
// The switch takes effect at the end of the chain currently being output.
// It is a no-op when no session is installed on port.
//
// FlipToBuffer is not safe to call from interrupt context.
func (d *Driver[V]) FlipToBuffer(port Port, id int) {
	st := d.state
	if st == nil || st.port != port {
		return
	}
	chain := st.chainA
	if id != 0 {
		chain = st.chainB
	}
	if len(chain) == 0 {
		return
	}
	head := &chain[0]
	if n := len(st.chainA); n > 0 {
		st.chainA[n-1].next = head
	}
	if n := len(st.chainB); n > 0 {
		st.chainB[n-1].next = head
	}
	d.SetPreviousBufferNotFree()
}

// IsPreviousBufferFree reports whether an end-of-frame has been observed
// since the last flip, i.e. the chain flipped away from may be refilled.
func (d *Driver[V]) IsPreviousBufferFree() bool {
	return d.free.Load()
}

// SetPreviousBufferNotFree rearms the handshake flag.
func (d *Driver[V]) SetPreviousBufferNotFree() {
	d.free.Store(false)
	if st := d.state; st != nil {
		st.loopCount = 0
	}
}

// PreviousBufferOutputLoopCount is reset on every flip and not advanced by
// the driver; it always reads zero.
func (d *Driver[V]) PreviousBufferOutputLoopCount() uint32 {
	if st := d.state; st != nil {
		return st.loopCount
	}
	return 0
}
