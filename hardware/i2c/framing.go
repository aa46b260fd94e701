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

package i2c

// Framing records the START and STOP conditions on the bus for a single tick.
type Framing struct {
	Start bool
	Stop  bool
}

// Detect START and STOP conditions from the synchronised clock and data
// lines. START is SDA falling while SCL is high and STOP is SDA rising while
// SCL is high.
func Detect(scl Trace, sda Trace) Framing {
	return Framing{
		Start: scl.Hi() && sda.Falling(),
		Stop:  scl.Hi() && sda.Rising(),
	}
}

func (f Framing) String() string {
	switch {
	case f.Start:
		return "start"
	case f.Stop:
		return "stop"
	}
	return ""
}
