//go:build tinygo

package i2s

import "runtime/volatile"

type Register32 = volatile.Register32
