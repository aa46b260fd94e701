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

// Package master is a tick driven I2C bus master. It drives a single Device,
// usually a slave.Slave, by toggling the SCL and SDA lines one tick at a time.
// The levels of the lines are resolved every tick from the drive of the master
// and the drive of the device.
//
// The byte level interface (Start, Stop, WriteByte and ReadAck) is the same
// as that of a bit-banging master on a microcontroller. The Write(), Read()
// and ReadCurrent() functions perform complete EEPROM style transactions.
//
// Every bit is one clock period long. A clock period is two half periods, one
// with SCL low and one with SCL high. SDA is changed a quarter of the way
// into the low half and is sampled half way through the high half.
//
// When the master releases SCL it waits for the line to go high, which might
// be delayed by the device stretching the clock.
package master
