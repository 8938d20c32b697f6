//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealPanel owns the five panel lines on actual hardware.
type RealPanel struct {
	chip   *gpiocdev.Chip
	clock  *gpiocdev.Line
	data   *gpiocdev.Line
	button *gpiocdev.Line
	next   *gpiocdev.Line
	led    *gpiocdev.Line
}

// Open acquires the controller and all five lines. Any single failure
// releases whatever was already acquired and reports the failing stage.
// On success the LED is already lit: it is requested as an output
// driving high.
func Open() (*RealPanel, error) {
	chip, err := gpiocdev.NewChip(Chip, gpiocdev.WithConsumer("encoderd"))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", Chip, err)
	}

	p := &RealPanel{chip: chip}

	// The encoder lines float between the encoder's own pull-ups, so no
	// bias is requested for them.
	if p.clock, err = chip.RequestLine(PinClock, gpiocdev.AsInput); err != nil {
		p.Close()
		return nil, fmt.Errorf("request clock line %d: %w", PinClock, err)
	}
	if p.data, err = chip.RequestLine(PinData, gpiocdev.AsInput); err != nil {
		p.Close()
		return nil, fmt.Errorf("request data line %d: %w", PinData, err)
	}
	if p.button, err = chip.RequestLine(PinButton, gpiocdev.AsInput, gpiocdev.WithPullUp); err != nil {
		p.Close()
		return nil, fmt.Errorf("request button line %d: %w", PinButton, err)
	}
	if p.next, err = chip.RequestLine(PinNext, gpiocdev.AsInput, gpiocdev.WithPullUp); err != nil {
		p.Close()
		return nil, fmt.Errorf("request next line %d: %w", PinNext, err)
	}
	if p.led, err = chip.RequestLine(PinLED, gpiocdev.AsOutput(1)); err != nil {
		p.Close()
		return nil, fmt.Errorf("request led line %d: %w", PinLED, err)
	}

	return p, nil
}

// Read returns the current levels of the four input lines.
func (p *RealPanel) Read() (Levels, error) {
	clock, err := p.clock.Value()
	if err != nil {
		return Levels{}, fmt.Errorf("read clock line: %w", err)
	}
	data, err := p.data.Value()
	if err != nil {
		return Levels{}, fmt.Errorf("read data line: %w", err)
	}
	button, err := p.button.Value()
	if err != nil {
		return Levels{}, fmt.Errorf("read button line: %w", err)
	}
	next, err := p.next.Value()
	if err != nil {
		return Levels{}, fmt.Errorf("read next line: %w", err)
	}

	return Levels{
		Clock:  clock != 0,
		Data:   data != 0,
		Button: button != 0,
		Next:   next != 0,
	}, nil
}

// Close drives the LED low, releases every line, and closes the
// controller last. Each reference is cleared as it is released, so a
// second call is a no-op. The LED is handled first so the panel goes
// dark even if a later release fails.
func (p *RealPanel) Close() error {
	var errs []error

	if p.led != nil {
		if err := p.led.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("set led low: %w", err))
		}
		if err := p.led.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close led line: %w", err))
		}
		p.led = nil
	}

	release := func(name string, line **gpiocdev.Line) {
		if *line == nil {
			return
		}
		if err := (*line).Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s line: %w", name, err))
		}
		*line = nil
	}
	release("clock", &p.clock)
	release("data", &p.data)
	release("button", &p.button)
	release("next", &p.next)

	if p.chip != nil {
		if err := p.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		p.chip = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
