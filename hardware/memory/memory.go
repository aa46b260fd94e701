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

package memory

// Sentinel errors for the memory package.
const (
	InvalidSize       = "memory: size must be between 1 and 256 (%d)"
	InvalidWriteCycle = "memory: write cycle cannot be negative (%d)"
	ImageError        = "memory: image: %v"
)

// MaxSize is the largest backing store that can be addressed by a single
// offset byte.
const MaxSize = 256

// Memory is the backing store of the slave. Offsets are always in the range
// 0 to Size()-1.
type Memory interface {
	Read(offset int) uint8
	Write(offset int, v uint8)
	Size() int
}

// Busy is implemented by backing stores that are not immediately ready after
// a write.
type Busy interface {
	Busy() bool
}

// Stepper is implemented by backing stores that need to count ticks.
type Stepper interface {
	Step()
}
