package i2s

// Variant is a zero-size tag selecting the register flavour of a chip
// family. Driver is generic over it so the per-chip differences resolve
// statically, keeping the interrupt path free of runtime branching.
type Variant interface {
	Original | Newer

	String() string
	numPorts() int
	rootClockHz() uint32
	memoryWidth(w BusWidth) uint32
	outputPads() uint64
	signals(port Port, w BusWidth) (sig signalSet, ok bool)
	setClockSource(r *Registers)
	setConfFlags(r *Registers)
	setFIFOMode(r *Registers, w BusWidth)
	waitFIFOReset(r *Registers, status uint32) bool
	clearOutEOF(r *Registers)
}

// validOutput reports whether pin is an output capable pad of the variant.
// Negative pins are unused lines and always valid.
func validOutput[V Variant](pin int) bool {
	var v V
	if pin < 0 {
		return true
	}
	return pin < 64 && v.outputPads()&(1<<uint(pin)) != 0
}

// signalSet is the routing of one port: GPIO matrix output signals and
// the interrupt matrix source.
type signalSet struct {
	dataBase uint32
	clock    uint32
	irq      uint32
}

// Original is the ESP32: two ports, AHB clock, explicit FIFO and channel
// modes, no FIFO reset status bits.
type Original struct{}

// ESP32 GPIO matrix output signals and interrupt sources.
const (
	esp32I2S0WSOut     = 29
	esp32I2S1WSOut     = 35
	esp32I2S0DataOut0  = 140
	esp32I2S0DataOut8  = esp32I2S0DataOut0 + 8
	esp32I2S1DataOut0  = 166
	esp32I2S1DataOut8  = esp32I2S1DataOut0 + 8
	esp32I2S0IntSource = 32
	esp32I2S1IntSource = 33

	// GPIO 0-19, 21-23, 25-27, 32-33; 34-39 are input only.
	esp32OutputPads = 1<<20 - 1 | 0b111<<21 | 0b111<<25 | 0b11<<32
)

func (Original) String() string      { return "esp32" }
func (Original) numPorts() int       { return 2 }
func (Original) rootClockHz() uint32 { return 80_000_000 }

// memoryWidth is 2 for an 8-bit bus since every half-word is written out
// twice by the FIFO packing.
func (Original) memoryWidth(w BusWidth) uint32 {
	if w == Width8 {
		return 2
	}
	return 1
}

func (Original) outputPads() uint64 { return esp32OutputPads }

func (Original) signals(port Port, w BusWidth) (sig signalSet, ok bool) {
	switch port {
	case I2S0:
		sig = signalSet{clock: esp32I2S0WSOut, irq: esp32I2S0IntSource}
		switch w {
		case Width8, Width16:
			sig.dataBase = esp32I2S0DataOut8
		case Width24:
			sig.dataBase = esp32I2S0DataOut0
		default:
			return sig, false
		}
	case I2S1:
		sig = signalSet{clock: esp32I2S1WSOut, irq: esp32I2S1IntSource}
		switch w {
		case Width16:
			sig.dataBase = esp32I2S1DataOut8
		case Width8, Width24:
			sig.dataBase = esp32I2S1DataOut0
		default:
			return sig, false
		}
	default:
		return sig, false
	}
	return sig, true
}

func (Original) setClockSource(r *Registers) {
	r.CLKM_CONF.ClearBits(clkmClkaEn)
}

func (Original) setConfFlags(r *Registers) {}

func (Original) setFIFOMode(r *Registers, w BusWidth) {
	if w == Width8 {
		r.CONF2.SetBits(conf2LCDTxWrx2En)
	}
	mod := uint32(fifoModDual16)
	if w == Width24 {
		mod = fifoModSingle32
	}
	r.FIFO_CONF.ReplaceBits(mod, fifoTxFIFOMod_Msk, fifoTxFIFOMod_Pos)
	r.FIFO_CONF.SetBits(fifoRxFIFOModForceEn | fifoTxFIFOModForceEn)

	r.CONF_CHAN.Set(0)
	r.CONF_CHAN.ReplaceBits(1, chanTxChanMod_Msk, chanTxChanMod_Pos)
	r.CONF_CHAN.ReplaceBits(1, chanRxChanMod_Msk, chanRxChanMod_Pos)
}

func (Original) waitFIFOReset(r *Registers, status uint32) bool { return true }

func (Original) clearOutEOF(r *Registers) {
	r.INT_CLR.ReplaceBits(1, 1, intOutEOF_Pos)
}

// Newer is the ESP32-S2: one port, dedicated clock select and enable,
// self-clearing FIFO reset status.
type Newer struct{}

// ESP32-S2 GPIO matrix output signals and interrupt sources.
const (
	esp32s2I2S0WSOut     = 14
	esp32s2I2S0DataOut0  = 223
	esp32s2I2S0DataOut8  = esp32s2I2S0DataOut0 + 8
	esp32s2I2S0IntSource = 35
	esp32s2ClkSelPLL160  = 2

	// GPIO 0-21 and 26-45; 46 is input only.
	esp32s2OutputPads = 1<<22 - 1 | (1<<46 - 1) &^ (1<<26 - 1)
)

func (Newer) String() string                { return "esp32s2" }
func (Newer) numPorts() int                 { return 1 }
func (Newer) rootClockHz() uint32           { return 160_000_000 }
func (Newer) memoryWidth(w BusWidth) uint32 { return 1 }
func (Newer) outputPads() uint64            { return esp32s2OutputPads }

func (Newer) signals(port Port, w BusWidth) (sig signalSet, ok bool) {
	if port != I2S0 {
		return sig, false
	}
	sig = signalSet{clock: esp32s2I2S0WSOut, irq: esp32s2I2S0IntSource}
	switch w {
	case Width8, Width16:
		sig.dataBase = esp32s2I2S0DataOut8
	case Width24:
		sig.dataBase = esp32s2I2S0DataOut0
	default:
		return sig, false
	}
	return sig, true
}

func (Newer) setClockSource(r *Registers) {
	r.CLKM_CONF.ReplaceBits(esp32s2ClkSelPLL160, clkmClkSel_Msk, clkmClkSel_Pos)
	r.CLKM_CONF.SetBits(clkmClkEn)
}

func (Newer) setConfFlags(r *Registers) {
	r.CONF.SetBits(confTxDMAEqual | confPreReqEn)
}

func (Newer) setFIFOMode(r *Registers, w BusWidth) {}

// fifoResetPending reports whether the reset flagged by status is still
// in progress.
var fifoResetPending = func(r *Registers, status uint32) bool {
	return r.CONF.HasBits(status)
}

// waitFIFOReset polls a self-clearing reset status bit.
func (Newer) waitFIFOReset(r *Registers, status uint32) bool {
	for retries := timeoutRetries; retries > 0; retries-- {
		if !fifoResetPending(r, status) {
			return true
		}
	}
	return false
}

func (Newer) clearOutEOF(r *Registers) {
	r.INT_CLR.Set(intOutEOF)
}
