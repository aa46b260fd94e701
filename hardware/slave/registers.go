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

package slave

import (
	"fmt"

	"github.com/jetsetilly/i2cslave/hardware/i2c"
	"github.com/jetsetilly/i2cslave/hardware/wire"
)

// Registers is the complete state of the slave. It is a value type and can be
// copied freely.
type Registers struct {
	SCL i2c.Synchroniser
	SDA i2c.Synchroniser

	State State

	// the state to enter when a clock stretch ends
	Resume State

	// number of bits shifted in the current byte. a value of 8 indicates a
	// complete byte
	Count int
	Shift uint8

	// the next offset into memory to be read or written. always less than the
	// memory size
	Offset int

	// direction of transfer latched from the address byte when it matched
	Reading bool

	// bit being driven onto SDA during a read. the line is only pulled low if
	// DataDrive is true and DataBit is false
	DataDrive bool
	DataBit   bool
}

// ResetRegisters returns the registers at power on.
func ResetRegisters() Registers {
	return Registers{
		SCL:   i2c.NewSynchroniser(),
		SDA:   i2c.NewSynchroniser(),
		State: WaitStart,
	}
}

func (r Registers) String() string {
	dir := "write"
	if r.Reading {
		dir = "read"
	}
	return fmt.Sprintf("%s bits=%d shift=%#02x offset=%#02x %s", r.State, r.Count, r.Shift, r.Offset, dir)
}

// Pins returns the line drive implied by the registers. The slave never
// drives a line high.
func (r Registers) Pins() wire.Pins {
	var p wire.Pins
	if r.State.acking() || (r.DataDrive && !r.DataBit) {
		p.SDA = wire.PullLow
	}
	if r.State == Pause {
		p.SCL = wire.PullLow
	}
	return p
}
