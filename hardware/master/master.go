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
	"github.com/jetsetilly/i2cslave/hardware/wire"
)

// Sentinel errors for the master package.
const (
	NACKReceived   = "master: NACK received"
	NoSuchDevice   = "master: no such device (%#02x)"
	StretchTimeout = "master: clock stretch timeout after %d ticks"
	InvalidPeriod  = "master: half period must be at least two ticks (%d)"
	InvalidCount   = "master: read count must be at least one (%d)"
)

// DefaultStretchLimit is the default number of ticks the master will wait for
// SCL to go high after releasing it.
const DefaultStretchLimit = 1000000

// Device is anything connected to the bus. The scl and sda arguments are the
// levels of the lines and the returned value is the drive of the device for
// the next tick.
type Device interface {
	Tick(scl bool, sda bool) wire.Pins
}

// Probe is called every tick with the resolved level of the lines.
type Probe interface {
	Probe(scl bool, sda bool)
}

// Master is a bit-banging I2C bus master.
type Master struct {
	dev    Device
	probes []Probe

	// drive of the master and of the device
	drive    wire.Pins
	devDrive wire.Pins

	// resolved levels of the lines
	scl bool
	sda bool

	half    int
	quarter int

	// number of ticks to wait for SCL to go high when it is released
	StretchLimit int

	// number of ticks since the master was created
	Ticks int
}

// NewMaster is the preferred method of initialisation for the Master type. The
// halfPeriod argument is the number of ticks in half a clock period.
func NewMaster(dev Device, halfPeriod int) (*Master, error) {
	if halfPeriod < 2 {
		return nil, curated.Errorf(InvalidPeriod, halfPeriod)
	}
	return &Master{
		dev:          dev,
		scl:          true,
		sda:          true,
		half:         halfPeriod,
		quarter:      halfPeriod / 2,
		StretchLimit: DefaultStretchLimit,
	}, nil
}

// AddProbe adds a Probe to the bus.
func (m *Master) AddProbe(p Probe) {
	m.probes = append(m.probes, p)
}

// Lines returns the current level of SCL and SDA.
func (m *Master) Lines() (scl bool, sda bool) {
	return m.scl, m.sda
}

// Tick the bus once.
func (m *Master) Tick() {
	m.Ticks++
	m.scl, m.sda = wire.ResolvePins(m.drive, m.devDrive)
	for _, p := range m.probes {
		p.Probe(m.scl, m.sda)
	}
	m.devDrive = m.dev.Tick(m.scl, m.sda)
}

// Idle ticks the bus n times without changing the drive of the master.
func (m *Master) Idle(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

func (m *Master) setSDA(v bool) {
	if v {
		m.drive.SDA = wire.Released
	} else {
		m.drive.SDA = wire.PullLow
	}
}

func (m *Master) pullSCL() {
	m.drive.SCL = wire.PullLow
}

// releaseSCL and wait for the line to go high.
func (m *Master) releaseSCL() error {
	m.drive.SCL = wire.Released
	for i := 0; i < m.StretchLimit; i++ {
		m.Tick()
		if m.scl {
			return nil
		}
	}
	return curated.Errorf(StretchTimeout, m.StretchLimit)
}

// clock a single bit. SCL is low on entry and on exit. the value of SDA is
// sampled half way through the high part of the clock.
func (m *Master) clock(v bool) (bool, error) {
	m.Idle(m.quarter)
	m.setSDA(v)
	m.Idle(m.half - m.quarter)

	if err := m.releaseSCL(); err != nil {
		return false, err
	}
	m.Idle(m.half / 2)
	sampled := m.sda
	m.Idle(m.half - m.half/2)

	m.pullSCL()
	return sampled, nil
}

// Start sends a START condition. If SCL is being held low by the master, as
// it is after a byte has been sent or received, then Start sends a repeated
// START.
func (m *Master) Start() error {
	if m.drive.SCL.Low() {
		m.Idle(m.quarter)
		m.setSDA(true)
		m.Idle(m.half - m.quarter)
		if err := m.releaseSCL(); err != nil {
			return err
		}
	} else {
		m.setSDA(true)
	}
	m.Idle(m.half)

	m.setSDA(false)
	m.Idle(m.half)
	m.pullSCL()

	return nil
}

// Stop sends a STOP condition. The bus is left idle.
func (m *Master) Stop() error {
	m.Idle(m.quarter)
	m.setSDA(false)
	m.Idle(m.half - m.quarter)
	if err := m.releaseSCL(); err != nil {
		return err
	}
	m.Idle(m.half)
	m.setSDA(true)
	m.Idle(m.half)
	return nil
}

// WriteByte sends a byte, most significant bit first, and returns an error
// if the device did not acknowledge it.
func (m *Master) WriteByte(b byte) error {
	for i := 7; i >= 0; i-- {
		if _, err := m.clock((b>>i)&0x01 == 0x01); err != nil {
			return err
		}
	}

	nack, err := m.clock(true)
	if err != nil {
		return err
	}
	if nack {
		return curated.Errorf(NACKReceived)
	}

	return nil
}

// ReadAck receives a byte, most significant bit first. If ack is true then
// the byte is acknowledged, indicating that another byte is wanted.
func (m *Master) ReadAck(ack bool) (byte, error) {
	var b byte
	for i := 0; i < 8; i++ {
		v, err := m.clock(true)
		if err != nil {
			return 0, err
		}
		b <<= 1
		if v {
			b |= 0x01
		}
	}

	if _, err := m.clock(!ack); err != nil {
		return 0, err
	}

	return b, nil
}
