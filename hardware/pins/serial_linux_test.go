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

//go:build linux

package pins_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/i2cslave/curated"
	"github.com/jetsetilly/i2cslave/hardware/pins"
	"github.com/jetsetilly/i2cslave/test"
)

var _ pins.Lines = (*pins.Serial)(nil)

func TestSerialNoDevice(t *testing.T) {
	_, err := pins.NewSerial(filepath.Join(t.TempDir(), "ttyNONE"))
	test.ExpectSuccess(t, curated.Is(err, pins.LineError))
}

func TestSerialNotTerminal(t *testing.T) {
	// a regular file opens but rejects the modem control requests
	fn := filepath.Join(t.TempDir(), "ttyFILE")
	test.DemandSuccess(t, os.WriteFile(fn, nil, 0600))

	s, err := pins.NewSerial(fn)
	test.ExpectSuccess(t, curated.Is(err, pins.LineError))
	test.ExpectSuccess(t, s == nil)
}
