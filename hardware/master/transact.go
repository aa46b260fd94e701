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

package master

import (
	"github.com/jetsetilly/i2cslave/curated"
)

// address sends the address byte with the direction bit. a NACK is returned
// as the NoSuchDevice error, after a STOP condition has been sent.
func (m *Master) address(addr uint8, read bool) error {
	b := addr << 1
	if read {
		b |= 0x01
	}

	if err := m.WriteByte(b); err != nil {
		if curated.Is(err, NACKReceived) {
			if err := m.Stop(); err != nil {
				return err
			}
			return curated.Errorf(NoSuchDevice, addr)
		}
		return err
	}

	return nil
}

// writeData sends a data byte. If the device does not acknowledge the byte
// then a STOP condition is sent before the error is returned.
func (m *Master) writeData(b uint8) error {
	err := m.WriteByte(b)
	if err != nil && curated.Is(err, NACKReceived) {
		if err := m.Stop(); err != nil {
			return err
		}
	}
	return err
}

// Write sends the offset followed by the data to the device at addr. An empty
// data slice sets the offset for a following call to ReadCurrent().
func (m *Master) Write(addr uint8, offset uint8, data []uint8) error {
	if err := m.Start(); err != nil {
		return err
	}
	if err := m.address(addr, false); err != nil {
		return err
	}

	for _, b := range append([]uint8{offset}, data...) {
		if err := m.writeData(b); err != nil {
			return curated.Errorf("master: write: %v", err)
		}
	}

	return m.Stop()
}

// ReadCurrent reads n bytes from the device at addr, starting at the
// device's current offset.
func (m *Master) ReadCurrent(addr uint8, n int) ([]uint8, error) {
	if n < 1 {
		return nil, curated.Errorf(InvalidCount, n)
	}
	if err := m.Start(); err != nil {
		return nil, err
	}
	if err := m.address(addr, true); err != nil {
		return nil, err
	}

	return m.readAndStop(n)
}

// Read n bytes from the device at addr, starting at offset. The offset is sent
// in a write transaction which is followed by a repeated START.
func (m *Master) Read(addr uint8, offset uint8, n int) ([]uint8, error) {
	if n < 1 {
		return nil, curated.Errorf(InvalidCount, n)
	}
	data := make([]uint8, n)
	if err := m.Transact(addr, []uint8{offset}, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Transact writes w to the device at addr and then fills r with bytes read
// from the device. If both slices have data then the read follows the write
// with a repeated START. Only one STOP condition is sent.
func (m *Master) Transact(addr uint8, w []uint8, r []uint8) error {
	if len(w) == 0 && len(r) == 0 {
		return curated.Errorf(InvalidCount, 0)
	}

	if err := m.Start(); err != nil {
		return err
	}

	if len(w) > 0 {
		if err := m.address(addr, false); err != nil {
			return err
		}
		for _, b := range w {
			if err := m.writeData(b); err != nil {
				return curated.Errorf("master: transact: %v", err)
			}
		}
		if len(r) == 0 {
			return m.Stop()
		}

		// repeated start
		if err := m.Start(); err != nil {
			return err
		}
	}

	if err := m.address(addr, true); err != nil {
		return err
	}

	data, err := m.readAndStop(len(r))
	if err != nil {
		return err
	}
	copy(r, data)

	return nil
}

// every byte except the last is acknowledged.
func (m *Master) readAndStop(n int) ([]uint8, error) {
	data := make([]uint8, 0, n)
	for i := 0; i < n; i++ {
		b, err := m.ReadAck(i < n-1)
		if err != nil {
			return nil, curated.Errorf("master: read: %v", err)
		}
		data = append(data, b)
	}

	return data, m.Stop()
}
