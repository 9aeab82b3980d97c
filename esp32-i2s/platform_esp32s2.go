//go:build tinygo && esp32s2

package i2s

// Chip is the variant of the build target.
type Chip = Newer

var esp32s2Platform = socPlatform{
	i2s:       [maxPorts]uintptr{0x3F40F000},
	periphBit: [maxPorts]uint32{1 << 4},
	clkEn:     0x3F4C0040, // SYSTEM_PERIP_CLK_EN0_REG
	rstEn:     0x3F4C0048, // SYSTEM_PERIP_RST_EN0_REG

	gpioEnableW1TS:  0x3F404024,
	gpioEnable1W1TS: 0x3F404030,
	funcOutSel:      0x3F404554,
	iomux:           esp32s2IOMux,
}

// Parallel drives the I2S peripheral of the ESP32-S2.
var Parallel = New[Chip](&esp32s2Platform)

func esp32s2IOMux(pin int) uintptr {
	return 0x3F409004 + uintptr(pin)*4
}
