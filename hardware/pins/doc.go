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

// Package pins connects a slave to a physical bus. The Lines interface
// abstracts the two bus lines and the Run() function is the real-time tick
// loop that samples the lines and applies the drive of the slave.
//
// Two implementations of Lines are provided. GPIO uses two host GPIO pins
// through periph.io. Serial uses the modem control lines of a serial port:
// RTS and DTR pull SCL and SDA low through open-drain buffers and CTS and DSR
// read the lines back.
//
// The Run() function samples the lines once per tick at the requested rate.
// The divider of the slave configuration should be chosen so that the bus
// clock is slower than the sample rate by a comfortable margin.
package pins
