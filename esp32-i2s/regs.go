package i2s

import "unsafe"

// Registers is the I2S register block. Offsets match the ESP32 technical
// reference manual; the ESP32-S2 keeps the same layout for the registers
// used here.
type Registers struct {
	_                    [2]Register32  // 0x00
	CONF                 Register32     // 0x08
	INT_RAW              Register32     // 0x0C
	INT_ST               Register32     // 0x10
	INT_ENA              Register32     // 0x14
	INT_CLR              Register32     // 0x18
	TIMING               Register32     // 0x1C
	FIFO_CONF            Register32     // 0x20
	RX_EOF_NUM           Register32     // 0x24
	CONF_SINGLE_DATA     Register32     // 0x28
	CONF_CHAN            Register32     // 0x2C
	OUT_LINK             Register32     // 0x30
	IN_LINK              Register32     // 0x34
	OUT_EOF_DES_ADDR     Register32     // 0x38
	IN_EOF_DES_ADDR      Register32     // 0x3C
	OUT_EOF_BFR_DES_ADDR Register32     // 0x40
	AHB_TEST             Register32     // 0x44
	LINK_DSCR            [6]Register32  // 0x48..0x5C
	LC_CONF              Register32     // 0x60
	_                    [15]Register32 // 0x64..0x9C
	CONF1                Register32     // 0xA0
	PD_CONF              Register32     // 0xA4
	CONF2                Register32     // 0xA8
	CLKM_CONF            Register32     // 0xAC
	SAMPLE_RATE_CONF     Register32     // 0xB0
	PDM_CONF             Register32     // 0xB4
	PDM_FREQ_CONF        Register32     // 0xB8
	STATE                Register32     // 0xBC
	_                    [15]Register32 // 0xC0..0xF8
	DATE                 Register32     // 0xFC
}

const registersSize = unsafe.Sizeof(Registers{})

// CONF
const (
	confTxReset       = 1 << 0
	confRxReset       = 1 << 1
	confTxFIFOReset   = 1 << 2
	confRxFIFOReset   = 1 << 3
	confTxStart       = 1 << 4
	confTxFIFOResetSt = 1 << 21 // ESP32-S2
	confRxFIFOResetSt = 1 << 22 // ESP32-S2
	confTxDMAEqual    = 1 << 24 // ESP32-S2
	confPreReqEn      = 1 << 26 // ESP32-S2
)

// INT_RAW, INT_ST, INT_ENA, INT_CLR
const (
	intOutEOF_Pos = 12
	intOutEOF     = 1 << intOutEOF_Pos
)

// FIFO_CONF
const (
	fifoRxDataNum_Pos    = 0
	fifoRxDataNum_Msk    = 0x3f
	fifoTxDataNum_Pos    = 6
	fifoTxDataNum_Msk    = 0x3f
	fifoDscrEn           = 1 << 12
	fifoTxFIFOMod_Pos    = 13
	fifoTxFIFOMod_Msk    = 0x7
	fifoTxFIFOModForceEn = 1 << 19
	fifoRxFIFOModForceEn = 1 << 20
	fifoDataNumThreshold = 32
	fifoModDual16        = 1
	fifoModSingle32      = 3
)

// CONF_CHAN
const (
	chanTxChanMod_Pos = 0
	chanTxChanMod_Msk = 0x7
	chanRxChanMod_Pos = 3
	chanRxChanMod_Msk = 0x3
)

// OUT_LINK
const (
	outLinkAddr_Msk = 0xfffff
	outLinkStop     = 1 << 28
	outLinkStart    = 1 << 29
)

// LC_CONF
const (
	lcInRst          = 1 << 0
	lcOutRst         = 1 << 1
	lcAHBMRst        = 1 << 3
	lcOutDscrBurstEn = 1 << 9
	lcOutDataBurstEn = 1 << 11
)

// CONF2
const (
	conf2LCDTxWrx2En = 1 << 1
	conf2LCDTxSdx2En = 1 << 2
	conf2LCDEn       = 1 << 5
)

// CLKM_CONF
const (
	clkmDivNum_Pos = 0
	clkmDivNum_Msk = 0xff
	clkmDivB_Pos   = 8
	clkmDivB_Msk   = 0x3f
	clkmDivA_Pos   = 14
	clkmDivA_Msk   = 0x3f
	clkmClkEn      = 1 << 20 // ESP32-S2
	clkmClkaEn     = 1 << 21 // ESP32
	clkmClkSel_Pos = 21      // ESP32-S2
	clkmClkSel_Msk = 0x3
)

// SAMPLE_RATE_CONF
const (
	srTxBckDivNum_Pos = 0
	srTxBckDivNum_Msk = 0x3f
	srRxBckDivNum_Pos = 6
	srRxBckDivNum_Msk = 0x3f
	srTxBitsMod_Pos   = 12
	srTxBitsMod_Msk   = 0x3f
	srRxBitsMod_Pos   = 18
	srRxBitsMod_Msk   = 0x3f
)
