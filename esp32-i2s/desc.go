package i2s

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// DMAMax is the largest payload a single descriptor may carry.
const DMAMax = 4096 - 4

// Descriptor is a DMA linked-list item as walked by the peripheral.
// Its layout is fixed by hardware: a flags word, the payload address and
// the address of the next descriptor (nil ends the chain).
type Descriptor struct {
	flags uint32
	buf   unsafe.Pointer
	next  *Descriptor
}

const (
	descSize_Pos   = 0
	descSize_Msk   = 0xfff
	descLength_Pos = 12
	descLength_Msk = 0xfff
	descOffset_Pos = 24
	descOffset_Msk = 0x1f
	descSOSF       = 1 << 29
	descEOF        = 1 << 30
	descOwner      = 1 << 31
)

// LinkDesc points d at buf, hands it to hardware and appends it to prev
// when prev is non-nil. Buffers longer than DMAMax are truncated; use
// several descriptors to cover them.
func LinkDesc(d, prev *Descriptor, buf []byte) {
	n := uint32(clamp(len(buf), 0, DMAMax))
	d.flags = n<<descSize_Pos | n<<descLength_Pos | descOwner
	d.buf = nil
	if n > 0 {
		d.buf = unsafe.Pointer(&buf[0])
	}
	d.next = nil
	if prev != nil {
		prev.next = d
	}
}

// Size returns the allocated size of the payload in bytes.
func (d *Descriptor) Size() int { return int(d.flags >> descSize_Pos & descSize_Msk) }

// Length returns the number of valid payload bytes.
func (d *Descriptor) Length() int { return int(d.flags >> descLength_Pos & descLength_Msk) }

// Offset returns the payload offset field. LinkDesc always clears it.
func (d *Descriptor) Offset() int { return int(d.flags >> descOffset_Pos & descOffset_Msk) }

// Owned reports whether the descriptor belongs to the DMA engine.
func (d *Descriptor) Owned() bool { return d.flags&descOwner != 0 }

func (d *Descriptor) EOF() bool { return d.flags&descEOF != 0 }

func (d *Descriptor) SOSF() bool { return d.flags&descSOSF != 0 }

// SetEOF marks the descriptor as the end of a frame. The peripheral raises
// the out-EOF interrupt once it has consumed such a descriptor.
func (d *Descriptor) SetEOF(eof bool) {
	if eof {
		d.flags |= descEOF
	} else {
		d.flags &^= descEOF
	}
}

// Buffer returns the payload address.
func (d *Descriptor) Buffer() unsafe.Pointer { return d.buf }

// Next returns the descriptor that follows d, nil at the end of a chain.
func (d *Descriptor) Next() *Descriptor { return d.next }

// SetNext links d to next. Linking the tail of a chain to its head makes
// the peripheral loop over it forever.
func (d *Descriptor) SetNext(next *Descriptor) { d.next = next }

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
