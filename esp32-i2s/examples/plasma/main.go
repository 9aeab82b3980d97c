//go:build tinygo && esp32

package main

import (
	"image/color"
	"math"
	"time"

	i2s "github.com/robocamp/i2sparallel/esp32-i2s"
	"github.com/robocamp/i2sparallel/esp32-i2s/i2slib"
)

const (
	width  = 64
	height = 64
)

// frameCount is advanced by the end-of-frame callback, which runs from
// Display's wait loop.
var frameCount uint32

func main() {
	time.Sleep(2 * time.Second)
	pins := i2slib.Hub75Pins{
		R1: 25, G1: 26, B1: 27,
		R2: 14, G2: 12, B2: 13,
		A: 23, B: 19, C: 5, D: 17, E: 18,
		LAT: 4, OE: 15, CLK: 16,
	}
	const frameSize = width * height
	var descs [2][2]i2s.Descriptor
	bufs := [2][]byte{make([]byte, frameSize), make([]byte, frameSize)}

	db, err := i2slib.NewDoubleBuffer(i2s.Parallel, i2slib.DoubleBufferConfig{
		Port:        i2s.I2S0,
		Width:       i2s.Width16,
		SampleRate:  10_000_000,
		Data:        pins.Data(),
		Clock:       pins.CLK,
		Frames:      bufs,
		Descriptors: [2][]i2s.Descriptor{descs[0][:], descs[1][:]},
		Timeout:     100 * time.Millisecond,
		Polled:      true,
	})
	if err != nil {
		panic(err.Error())
	}
	hub, err := i2slib.NewHub75(db, i2slib.Hub75Config{Width: width, Height: height, SwapHalfWords: true})
	if err != nil {
		panic(err.Error())
	}

	i2s.Parallel.SetShiftCompleteCallback(func() { frameCount++ })
	start := time.Now()
	for t := 0.0; ; t += 0.05 {
		drawPlasma(hub, t)
		if err := hub.Display(); err != nil {
			println("display:", err.Error())
		}
		if time.Since(start) > 5*time.Second {
			println("frames out:", frameCount)
			start = time.Now()
		}
	}
}

func drawPlasma(hub *i2slib.Hub75, t float64) {
	for y := int16(0); y < height; y++ {
		for x := int16(0); x < width; x++ {
			fx, fy := float64(x)/8, float64(y)/8
			v := math.Sin(fx+t) + math.Sin(fy+t/2) + math.Sin((fx+fy+t)/2)
			hub.SetPixel(x, y, color.RGBA{
				R: uint8(128 + 127*math.Sin(v*math.Pi)),
				G: uint8(128 + 127*math.Sin(v*math.Pi+2*math.Pi/3)),
				B: uint8(128 + 127*math.Sin(v*math.Pi+4*math.Pi/3)),
			})
		}
	}
}
