package i2s

const (
	RegistersSize = registersSize

	IntOutEOF = intOutEOF

	ConfTxStart    = confTxStart
	ConfTxDMAEqual = confTxDMAEqual
	ConfPreReqEn   = confPreReqEn

	Conf2LCDEn       = conf2LCDEn
	Conf2LCDTxWrx2En = conf2LCDTxWrx2En
	Conf2LCDTxSdx2En = conf2LCDTxSdx2En

	FIFODscrEn           = fifoDscrEn
	FIFOTxFIFOModForceEn = fifoTxFIFOModForceEn
	FIFORxFIFOModForceEn = fifoRxFIFOModForceEn

	OutLinkStop  = outLinkStop
	OutLinkStart = outLinkStart

	LCOutDataBurstEn = lcOutDataBurstEn
	LCOutDscrBurstEn = lcOutDscrBurstEn

	ClkmClkEn  = clkmClkEn
	ClkmClkaEn = clkmClkaEn
)

// StickFIFOReset makes FIFO resets never complete on the ESP32-S2 until
// the returned function is called.
func StickFIFOReset() (restore func()) {
	prev := fifoResetPending
	fifoResetPending = func(*Registers, uint32) bool { return true }
	return func() { fifoResetPending = prev }
}

func ClockDivider[V Variant](w BusWidth, rate uint32) (uint32, error) {
	return clockDivider[V](w, rate)
}

func ClkDivNum(r *Registers) uint32 { return field(r.CLKM_CONF.Get(), clkmDivNum_Msk, clkmDivNum_Pos) }
func ClkDivA(r *Registers) uint32   { return field(r.CLKM_CONF.Get(), clkmDivA_Msk, clkmDivA_Pos) }
func ClkDivB(r *Registers) uint32   { return field(r.CLKM_CONF.Get(), clkmDivB_Msk, clkmDivB_Pos) }
func ClkSel(r *Registers) uint32    { return field(r.CLKM_CONF.Get(), clkmClkSel_Msk, clkmClkSel_Pos) }

func TxBitsMod(r *Registers) uint32 {
	return field(r.SAMPLE_RATE_CONF.Get(), srTxBitsMod_Msk, srTxBitsMod_Pos)
}

func RxBitsMod(r *Registers) uint32 {
	return field(r.SAMPLE_RATE_CONF.Get(), srRxBitsMod_Msk, srRxBitsMod_Pos)
}

func TxBckDiv(r *Registers) uint32 {
	return field(r.SAMPLE_RATE_CONF.Get(), srTxBckDivNum_Msk, srTxBckDivNum_Pos)
}

func TxFIFOMod(r *Registers) uint32 {
	return field(r.FIFO_CONF.Get(), fifoTxFIFOMod_Msk, fifoTxFIFOMod_Pos)
}

func TxDataNum(r *Registers) uint32 {
	return field(r.FIFO_CONF.Get(), fifoTxDataNum_Msk, fifoTxDataNum_Pos)
}

func TxChanMod(r *Registers) uint32 {
	return field(r.CONF_CHAN.Get(), chanTxChanMod_Msk, chanTxChanMod_Pos)
}

func OutLinkAddr(r *Registers) uint32 { return r.OUT_LINK.Get() & outLinkAddr_Msk }

func field(v uint32, msk uint32, pos uint8) uint32 { return (v >> pos) & msk }
