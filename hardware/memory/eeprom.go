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

import (
	"encoding/hex"
	"io"
	"os"
	"slices"

	"github.com/jetsetilly/i2cslave/curated"
	"github.com/jetsetilly/i2cslave/environment"
	"github.com/jetsetilly/i2cslave/logger"
)

// EEPROM represents the non-volatile memory behind the slave. It implements
// the Memory, Busy and Stepper interfaces.
type EEPROM struct {
	env *environment.Environment

	// amend Data only through Write() and Poke()
	Data []uint8

	// the data as it is on disk. data is mutable and we need a way of
	// comparing what's on disk with what's in memory.
	DiskData []uint8

	// number of ticks the EEPROM is busy after a write
	writeCycle int

	// ticks remaining in the current write cycle
	busy int
}

// NewEEPROM is the preferred method of initialisation for the EEPROM type.
// The data is initialised with 0xff, the value of an erased EEPROM.
func NewEEPROM(env *environment.Environment, size int, writeCycle int) (*EEPROM, error) {
	if size < 1 || size > MaxSize {
		return nil, curated.Errorf(InvalidSize, size)
	}
	if writeCycle < 0 {
		return nil, curated.Errorf(InvalidWriteCycle, writeCycle)
	}

	ee := &EEPROM{
		env:        env,
		Data:       make([]uint8, size),
		DiskData:   make([]uint8, size),
		writeCycle: writeCycle,
	}

	for i := range ee.Data {
		ee.Data[i] = 0xff
	}
	copy(ee.DiskData, ee.Data)

	return ee, nil
}

// Snapshot creates a copy of the EEPROM.
func (ee *EEPROM) Snapshot() *EEPROM {
	cp := *ee
	cp.Data = slices.Clone(ee.Data)
	cp.DiskData = slices.Clone(ee.DiskData)
	return &cp
}

// Size implements the Memory interface.
func (ee *EEPROM) Size() int {
	return len(ee.Data)
}

// Read implements the Memory interface.
func (ee *EEPROM) Read(offset int) uint8 {
	return ee.Data[offset%len(ee.Data)]
}

// Write implements the Memory interface. The EEPROM will be busy for the
// length of the write cycle.
func (ee *EEPROM) Write(offset int, v uint8) {
	ee.Data[offset%len(ee.Data)] = v
	ee.busy = ee.writeCycle
}

// Busy implements the Busy interface.
func (ee *EEPROM) Busy() bool {
	return ee.busy > 0
}

// Step implements the Stepper interface.
func (ee *EEPROM) Step() {
	if ee.busy > 0 {
		ee.busy--
	}
}

// Peek a value in the EEPROM without affecting the write cycle.
func (ee *EEPROM) Peek(offset int) uint8 {
	return ee.Data[offset%len(ee.Data)]
}

// Poke a value into the EEPROM without affecting the write cycle.
func (ee *EEPROM) Poke(offset int, v uint8) {
	ee.Data[offset%len(ee.Data)] = v
}

// Load EEPROM data from disk. An image shorter than the EEPROM leaves the
// remaining data as 0xff. An image longer than the EEPROM is truncated.
func (ee *EEPROM) Load(fn string) error {
	d, err := os.ReadFile(fn)
	if err != nil {
		return curated.Errorf(ImageError, err)
	}

	if len(d) < len(ee.Data) {
		logger.Logf(ee.env, "eeprom", "image is shorter than eeprom (%d bytes)", len(d))
	} else if len(d) > len(ee.Data) {
		logger.Logf(ee.env, "eeprom", "image is longer than eeprom, truncated to %d bytes", len(ee.Data))
		d = d[:len(ee.Data)]
	}

	for i := range ee.Data {
		ee.Data[i] = 0xff
	}
	copy(ee.Data, d)

	// copy of data read from disk
	copy(ee.DiskData, ee.Data)

	logger.Logf(ee.env, "eeprom", "loaded from %s", fn)

	return nil
}

// Save EEPROM data to disk.
func (ee *EEPROM) Save(fn string) (rerr error) {
	f, err := os.Create(fn)
	if err != nil {
		return curated.Errorf(ImageError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(ImageError, err)
		}
	}()

	_, err = f.Write(ee.Data)
	if err != nil {
		return curated.Errorf(ImageError, err)
	}

	logger.Logf(ee.env, "eeprom", "saved to %s", fn)

	// copy of data that's just been written to disk
	copy(ee.DiskData, ee.Data)

	return nil
}

// IsSaved returns true if disk data is the same as data.
func (ee *EEPROM) IsSaved() bool {
	return slices.Compare(ee.Data, ee.DiskData) == 0
}

// Dump writes a hex dump of the EEPROM data.
func (ee *EEPROM) Dump(w io.Writer) error {
	d := hex.Dumper(w)
	if _, err := d.Write(ee.Data); err != nil {
		return err
	}
	return d.Close()
}
