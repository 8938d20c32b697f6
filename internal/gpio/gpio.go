// Package gpio provides front-panel line access with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Chip is the GPIO controller device that owns all panel lines.
const Chip = "gpiochip0"

// Line offsets on the controller (BCM numbering). The wiring is fixed;
// there is deliberately no way to configure these at runtime.
const (
	PinClock  = 23 // rotary encoder clock
	PinData   = 17 // rotary encoder data
	PinButton = 27 // encoder push-button; pull-up, active-low
	PinNext   = 3  // next button; pull-up, active-low
	PinLED    = 25 // status LED; high while the process is alive
)

// Levels is one sample of the four input lines (true = high).
type Levels struct {
	Clock  bool
	Data   bool
	Button bool
	Next   bool
}

// Panel reads the input lines and owns the status LED.
type Panel interface {
	// Read returns the current levels of all four input lines.
	Read() (Levels, error)

	// Close drives the LED low, releases every line, and closes the
	// controller. Safe to call more than once.
	Close() error
}
