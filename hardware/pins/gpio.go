// This file is part of i2cslave.
//
// i2cslave is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// i2cslave is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with i2cslave.  If not, see <https://www.gnu.org/licenses/>.

package pins

import (
	"fmt"

	"github.com/jetsetilly/i2cslave/curated"
	"github.com/jetsetilly/i2cslave/hardware/wire"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// GPIO implements the Lines interface with two host GPIO pins. The pins are
// never driven high. A released pin is an input with the pull-up enabled.
type GPIO struct {
	scl gpio.PinIO
	sda gpio.PinIO
}

// NewGPIO is the preferred method of initialisation for the GPIO type. The
// arguments are pin names as understood by the gpioreg package, for example
// "GPIO3" or "P1_5".
func NewGPIO(scl string, sda string) (*GPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, curated.Errorf(LineError, err)
	}

	g := &GPIO{
		scl: gpioreg.ByName(scl),
		sda: gpioreg.ByName(sda),
	}
	if g.scl == nil {
		return nil, curated.Errorf(NoSuchPin, scl)
	}
	if g.sda == nil {
		return nil, curated.Errorf(NoSuchPin, sda)
	}

	if err := g.Drive(wire.Pins{}); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *GPIO) String() string {
	return fmt.Sprintf("gpio: scl=%s sda=%s", g.scl, g.sda)
}

// Read implements the Lines interface.
func (g *GPIO) Read() (bool, bool, error) {
	return g.scl.Read() == gpio.High, g.sda.Read() == gpio.High, nil
}

func drivePin(pin gpio.PinIO, d wire.Drive) error {
	if d.Low() {
		return pin.Out(gpio.Low)
	}
	return pin.In(gpio.PullUp, gpio.NoEdge)
}

// Drive implements the Lines interface.
func (g *GPIO) Drive(p wire.Pins) error {
	if err := drivePin(g.scl, p.SCL); err != nil {
		return curated.Errorf(LineError, err)
	}
	if err := drivePin(g.sda, p.SDA); err != nil {
		return curated.Errorf(LineError, err)
	}
	return nil
}

// Close implements the Lines interface.
func (g *GPIO) Close() error {
	return g.Drive(wire.Pins{})
}
