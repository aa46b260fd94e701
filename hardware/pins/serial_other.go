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

//go:build !linux

package pins

import (
	"github.com/jetsetilly/i2cslave/curated"
	"github.com/jetsetilly/i2cslave/hardware/wire"
)

// Serial is not available on this platform.
type Serial struct{}

// NewSerial always returns an error on this platform.
func NewSerial(_ string) (*Serial, error) {
	return nil, curated.Errorf(Unsupported, "serial lines")
}

// Read implements the Lines interface.
func (s *Serial) Read() (bool, bool, error) {
	return true, true, curated.Errorf(Unsupported, "serial lines")
}

// Drive implements the Lines interface.
func (s *Serial) Drive(_ wire.Pins) error {
	return curated.Errorf(Unsupported, "serial lines")
}

// Close implements the Lines interface.
func (s *Serial) Close() error {
	return nil
}
