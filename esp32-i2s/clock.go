package i2s

const (
	maxClockDivider = 0xff
	minClockDivider = 2
	bckDivider      = 2
)

// clockDivider returns the integer divider of the root clock producing
// rate samples per second on a w-bit bus.
func clockDivider[V Variant](w BusWidth, rate uint32) (uint32, error) {
	var v V
	if rate < 1 || rate > v.rootClockHz() {
		return 0, ErrInvalidArg
	}
	div := v.rootClockHz() / rate / v.memoryWidth(w)
	if div < minClockDivider || div > maxClockDivider {
		return 0, ErrInvalidArg
	}
	return div, nil
}

// configure programs the peripheral for LCD mode output of a w-bit bus
// clocked at root/div.
func configure[V Variant](r *Registers, w BusWidth, div uint32) error {
	var v V
	r.SAMPLE_RATE_CONF.Set(0)
	r.SAMPLE_RATE_CONF.ReplaceBits(uint32(w), srRxBitsMod_Msk, srRxBitsMod_Pos)
	r.SAMPLE_RATE_CONF.ReplaceBits(uint32(w), srTxBitsMod_Msk, srTxBitsMod_Pos)
	r.SAMPLE_RATE_CONF.ReplaceBits(bckDivider, srRxBckDivNum_Msk, srRxBckDivNum_Pos)
	r.SAMPLE_RATE_CONF.ReplaceBits(bckDivider, srTxBckDivNum_Msk, srTxBckDivNum_Pos)

	r.CLKM_CONF.Set(0)
	v.setClockSource(r)
	r.CLKM_CONF.ReplaceBits(0, clkmDivB_Msk, clkmDivB_Pos)
	r.CLKM_CONF.ReplaceBits(1, clkmDivA_Msk, clkmDivA_Pos)
	r.CLKM_CONF.ReplaceBits(div, clkmDivNum_Msk, clkmDivNum_Pos)

	r.CONF2.Set(conf2LCDEn)

	r.CONF.Set(0)
	v.setConfFlags(r)

	r.FIFO_CONF.Set(0)
	r.FIFO_CONF.ReplaceBits(fifoDataNumThreshold, fifoRxDataNum_Msk, fifoRxDataNum_Pos)
	r.FIFO_CONF.ReplaceBits(fifoDataNumThreshold, fifoTxDataNum_Msk, fifoTxDataNum_Pos)
	r.FIFO_CONF.SetBits(fifoDscrEn)
	v.setFIFOMode(r, w)

	if err := resetPeripheral[V](r); err != nil {
		return err
	}
	r.CONF1.Set(0)
	r.TIMING.Set(0)
	return nil
}

func resetDMA(r *Registers) {
	r.LC_CONF.SetBits(lcInRst)
	r.LC_CONF.ClearBits(lcInRst)
	r.LC_CONF.SetBits(lcOutRst)
	r.LC_CONF.ClearBits(lcOutRst)
	r.LC_CONF.SetBits(lcAHBMRst)
	r.LC_CONF.ClearBits(lcAHBMRst)
}

func resetFIFO[V Variant](r *Registers) error {
	var v V
	r.CONF.SetBits(confRxFIFOReset)
	if !v.waitFIFOReset(r, confRxFIFOResetSt) {
		return ErrTimeout
	}
	r.CONF.ClearBits(confRxFIFOReset)
	r.CONF.SetBits(confTxFIFOReset)
	if !v.waitFIFOReset(r, confTxFIFOResetSt) {
		return ErrTimeout
	}
	r.CONF.ClearBits(confTxFIFOReset)
	return nil
}

func resetPeripheral[V Variant](r *Registers) error {
	if err := resetFIFO[V](r); err != nil {
		return err
	}
	resetDMA(r)
	r.CONF.SetBits(confRxReset | confTxReset)
	r.CONF.ClearBits(confRxReset | confTxReset)
	return nil
}
