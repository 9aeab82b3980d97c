//go:build tinygo && esp32

package i2s

// Chip is the variant of the build target.
type Chip = Original

var esp32Platform = socPlatform{
	i2s:       [maxPorts]uintptr{0x3FF4F000, 0x3FF6D000},
	periphBit: [maxPorts]uint32{1 << 4, 1 << 21},
	clkEn:     0x3FF000C0, // DPORT_PERIP_CLK_EN_REG
	rstEn:     0x3FF000C4, // DPORT_PERIP_RST_EN_REG

	gpioEnableW1TS:  0x3FF44024,
	gpioEnable1W1TS: 0x3FF44030,
	funcOutSel:      0x3FF44530,
	iomux:           esp32IOMux,
}

// Parallel drives the I2S peripherals of the ESP32.
var Parallel = New[Chip](&esp32Platform)

// IO_MUX register offsets, which do not follow GPIO order on the ESP32.
// Pads missing from the chip read 0; Install rejects them.
var esp32IOMuxOffset = [40]uint8{
	0x44, 0x88, 0x40, 0x84, 0x48, 0x6c, 0x60, 0x64,
	0x68, 0x54, 0x58, 0x5c, 0x34, 0x38, 0x30, 0x3c,
	0x4c, 0x50, 0x70, 0x74, 0x78, 0x7c, 0x80, 0x8c,
	0x00, 0x24, 0x28, 0x2c, 0x00, 0x00, 0x00, 0x00,
	0x1c, 0x20, 0x14, 0x18, 0x04, 0x08, 0x0c, 0x10,
}

func esp32IOMux(pin int) uintptr {
	return 0x3FF49000 + uintptr(esp32IOMuxOffset[pin])
}
