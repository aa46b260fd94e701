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

// Package slave implements an I2C slave with a 7-bit address and a byte
// addressable backing memory, in the manner of a small serial EEPROM.
//
// The slave is advanced one tick at a time. Each tick, the complete set of
// registers for the next tick is computed from the current registers and the
// raw line levels. Only then are the new registers committed, together with
// any memory write. This means that every part of the slave sees the same
// values during a tick, regardless of the order in which they are computed.
//
// Computing the next state is in two stages. The normal next state is
// computed first, after which the START and STOP conditions are applied. A
// START condition always forces the slave to receive an address and a STOP
// condition always returns the slave to waiting for a START.
//
// Writing to the slave is a START, the address with the direction bit clear,
// an offset byte, and any number of data bytes. Each byte is acknowledged by
// the slave and the offset increments after each data byte, wrapping at the
// memory size. Reading from the slave is a START, the address with the
// direction bit set, and any number of data bytes. The master acknowledges
// every byte it wants to be followed by another. Reading starts from the
// current offset, which is usually set by a write transaction containing
// only the offset byte.
//
// The slave can hold SCL low (clock stretching) after an ACK while the memory
// is busy completing a write. Stretching is only possible if the memory
// implements the memory.Busy interface and if it is enabled in the Config.
package slave
