package i2s

// DriveMax is the strongest GPIO pad drive capability.
const DriveMax = 3

// Router is the GPIO and GPIO-matrix side of the SoC.
type Router interface {
	// ConfigureOutput selects the GPIO function on the pin's IO mux and
	// enables its output driver.
	ConfigureOutput(pin int)
	// ConnectOutput routes a peripheral output signal to the pin through
	// the GPIO matrix.
	ConnectOutput(pin int, signal uint32, invert, invertEnable bool)
	// SetOutputInverted sets the matrix invert bit of an already routed pin.
	SetOutputInverted(pin int, inverted bool)
	SetDriveStrength(pin int, strength uint8)
}

// routeSignal connects signal to pin. Negative pins are unused lines.
func routeSignal(r Router, pin int, signal uint32) {
	if pin < 0 {
		return
	}
	r.ConfigureOutput(pin)
	r.ConnectOutput(pin, signal, false, false)
	r.SetDriveStrength(pin, DriveMax)
}

func routeBus(r Router, cfg *Config, sig signalSet) {
	for i := 0; i < int(cfg.Width); i++ {
		routeSignal(r, cfg.Data[i], sig.dataBase+uint32(i))
	}
	routeSignal(r, cfg.Clock, sig.clock)
	if cfg.InvertClock && cfg.Clock >= 0 {
		r.SetOutputInverted(cfg.Clock, true)
	}
}
