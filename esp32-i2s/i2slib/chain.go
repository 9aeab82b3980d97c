package i2slib

import (
	i2s "github.com/robocamp/i2sparallel/esp32-i2s"
)

// DescriptorsFor returns how many descriptors are needed to cover n bytes.
func DescriptorsFor(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + i2s.DMAMax - 1) / i2s.DMAMax
}

// LinkChain splits buf across descs in DMAMax sized pieces and links them
// in order. The tail's next pointer is left nil. It returns the number of
// descriptors used.
func LinkChain(descs []i2s.Descriptor, buf []byte) (int, error) {
	n := DescriptorsFor(len(buf))
	if n == 0 || n > len(descs) {
		return 0, ErrShortChain
	}
	var prev *i2s.Descriptor
	for i := 0; i < n; i++ {
		end := min((i+1)*i2s.DMAMax, len(buf))
		i2s.LinkDesc(&descs[i], prev, buf[i*i2s.DMAMax:end])
		prev = &descs[i]
	}
	return n, nil
}

// MakeCyclic links the tail of chain to its head so the peripheral
// repeats it until the tail is relinked.
func MakeCyclic(chain []i2s.Descriptor) {
	if len(chain) == 0 {
		return
	}
	chain[len(chain)-1].SetNext(&chain[0])
}
