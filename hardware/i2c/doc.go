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

// Package i2c contains the line level building blocks of an I2C slave: the
// Trace type which records the previous and current level of a line, the
// Synchroniser which brings a raw asynchronous line into the tick domain,
// and the Framing type which detects START and STOP conditions.
//
// All types in the package are small value types with no pointers. Next()
// functions return a new value rather than modifying the receiver, which
// means a complete set of registers can be computed from the current set
// without disturbing it.
package i2c
