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

// Package wire models the open-drain electrical connection between devices on
// an I2C bus. A device never drives a line high. It either pulls the line low
// or releases it, in which case the pull-up resistor takes the line high.
package wire

// Drive is the output of a device for a single line. A Drive with Enable set
// to false has released the line.
type Drive struct {
	Enable bool
	Value  bool
}

// Released is the Drive of a device that is not driving the line.
var Released = Drive{}

// PullLow is the Drive of a device that is pulling the line low.
var PullLow = Drive{Enable: true, Value: false}

// Low returns true if the Drive is pulling the line low.
func (d Drive) Low() bool {
	return d.Enable && !d.Value
}

func (d Drive) String() string {
	if d.Low() {
		return "low"
	}
	return "released"
}

// Pins is the output of a device for both I2C lines.
type Pins struct {
	SCL Drive
	SDA Drive
}

// Resolve returns the level of a single line given the Drive of every device
// connected to it. The line is high unless at least one device is pulling it
// low.
func Resolve(drives ...Drive) bool {
	for _, d := range drives {
		if d.Low() {
			return false
		}
	}
	return true
}

// ResolvePins returns the levels of the SCL and SDA lines given the Pins of
// every device on the bus.
func ResolvePins(pins ...Pins) (scl bool, sda bool) {
	scl = true
	sda = true
	for _, p := range pins {
		scl = scl && !p.SCL.Low()
		sda = sda && !p.SDA.Low()
	}
	return scl, sda
}
