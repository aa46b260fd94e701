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

// Package memory defines the interface between the slave and its backing
// store, and provides the EEPROM implementation.
//
// The slave reads and writes the backing store through the Memory interface.
// Both operations complete immediately. A backing store that needs time to
// complete a write can implement the Busy interface, in which case the slave
// can hold the clock line low until the store is ready. A backing store that
// needs to count time should implement the Stepper interface; Step() is called
// by the slave once per tick.
package memory
