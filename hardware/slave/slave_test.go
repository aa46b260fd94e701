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

package slave_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/i2cslave/curated"
	"github.com/jetsetilly/i2cslave/environment"
	"github.com/jetsetilly/i2cslave/hardware/master"
	"github.com/jetsetilly/i2cslave/hardware/memory"
	"github.com/jetsetilly/i2cslave/hardware/preferences"
	"github.com/jetsetilly/i2cslave/hardware/slave"
	"github.com/jetsetilly/i2cslave/hardware/wire"
	"github.com/jetsetilly/i2cslave/logger"
	"github.com/jetsetilly/i2cslave/test"
)

// monitor sits between the master and the slave and counts the ticks on which
// the slave is driving each line.
type monitor struct {
	sl  *slave.Slave
	scl int
	sda int
}

func (mon *monitor) Tick(scl bool, sda bool) wire.Pins {
	p := mon.sl.Tick(scl, sda)
	if p.SCL.Low() {
		mon.scl++
	}
	if p.SDA.Low() {
		mon.sda++
	}
	return p
}

type harness struct {
	ee  *memory.EEPROM
	sl  *slave.Slave
	mon *monitor
	m   *master.Master
}

func newHarness(t *testing.T, cfg slave.Config, writeCycle int, halfPeriod int) *harness {
	t.Helper()

	p, err := preferences.NewPreferencesAt(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainSlave, p)
	test.DemandSuccess(t, err)

	h := &harness{}
	h.ee, err = memory.NewEEPROM(env, 128, writeCycle)
	test.DemandSuccess(t, err)
	h.sl, err = slave.NewSlave(env, cfg, h.ee)
	test.DemandSuccess(t, err)
	h.mon = &monitor{sl: h.sl}
	h.m, err = master.NewMaster(h.mon, halfPeriod)
	test.DemandSuccess(t, err)

	return h
}

var defaultConfig = slave.Config{Address: 0x50, Divider: 4, Stretch: true}

func newDefaultHarness(t *testing.T) *harness {
	t.Helper()
	return newHarness(t, defaultConfig, 0, defaultConfig.Divider*4)
}

func TestConfig(t *testing.T) {
	test.ExpectSuccess(t, defaultConfig.Validate())

	cfg := defaultConfig
	cfg.Address = 0x07
	test.ExpectSuccess(t, curated.Is(cfg.Validate(), slave.InvalidAddress))
	cfg.Address = 0x78
	test.ExpectSuccess(t, curated.Is(cfg.Validate(), slave.InvalidAddress))

	cfg = defaultConfig
	cfg.Divider = 0
	test.ExpectSuccess(t, curated.Is(cfg.Validate(), slave.InvalidDivider))

	p, err := preferences.NewPreferencesAt(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	cfg, err = slave.NewConfig(p)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.Address, preferences.DefaultAddress)
	test.ExpectEquality(t, cfg.Divider, preferences.DefaultDivider)
	test.ExpectEquality(t, cfg.Stretch, preferences.DefaultStretch)

	test.DemandSuccess(t, p.Address.Set(0x80))
	_, err = slave.NewConfig(p)
	test.ExpectSuccess(t, curated.Is(err, slave.InvalidAddress))
}

// the waveforms are sampled in the middle of each character. there are 32
// ticks per character and the half period of the master is four characters.
const ticksPerChar = 32

const ackWaveform = `
	scl ▔▔▔▔▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔▔▔▔▔▔
	sda ▔▔▔\____--1-------0-------1-------0-------0-------0-------0-------0-------0-----X10-----1---
	oe  0-----------------------------------------------------------------------X1------X0----------
`

const nackWaveform = `
	scl ▔▔▔▔▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔\___/▔▔▔▔▔▔▔▔
	sda ▔▔▔\____--1-------0-------1-------0-------0-------0-------1-------0-------1-------0-----1---
	oe  0-------------------------------------------------------------------------------------------
`

// recorder samples the bus and the SDA drive of the slave on every tick.
type recorder struct {
	sl  *slave.Slave
	scl []bool
	sda []bool
	oe  []bool
}

func (r *recorder) Probe(scl bool, sda bool) {
	r.scl = append(r.scl, scl)
	r.sda = append(r.sda, sda)
	r.oe = append(r.oe, r.sl.Pins().SDA.Low())
}

func compareWaveform(t *testing.T, r *recorder, block string) {
	t.Helper()

	w, err := test.ParseWaveform(block)
	test.DemandSuccess(t, err)

	for c := 0; c < w.Length; c++ {
		i := c*ticksPerChar + ticksPerChar/2
		if i >= len(r.scl) {
			t.Fatalf("recording too short for waveform (%d ticks)", len(r.scl))
		}
		test.ExpectSuccess(t, w.At("scl", c).Matches(r.scl[i]), "scl", c)
		test.ExpectSuccess(t, w.At("sda", c).Matches(r.sda[i]), "sda", c)
		test.ExpectSuccess(t, w.At("oe", c).Matches(r.oe[i]), "oe", c)
	}
}

func TestACKTiming(t *testing.T) {
	h := newHarness(t, slave.Config{Address: 0x50, Divider: 8, Stretch: true}, 0, ticksPerChar*4)
	r := &recorder{sl: h.sl}
	h.m.AddProbe(r)

	test.DemandSuccess(t, h.m.Start())
	test.DemandSuccess(t, h.m.WriteByte(0xa0))
	test.DemandSuccess(t, h.m.Stop())

	compareWaveform(t, r, ackWaveform)
	test.ExpectEquality(t, h.sl.Registers().State, slave.WaitStart)
}

func TestNACKTiming(t *testing.T) {
	h := newHarness(t, slave.Config{Address: 0x50, Divider: 8, Stretch: true}, 0, ticksPerChar*4)
	r := &recorder{sl: h.sl}
	h.m.AddProbe(r)

	test.DemandSuccess(t, h.m.Start())
	err := h.m.WriteByte(0xa2)
	test.ExpectSuccess(t, curated.Is(err, master.NACKReceived))
	test.DemandSuccess(t, h.m.Stop())

	compareWaveform(t, r, nackWaveform)
	test.ExpectEquality(t, h.mon.sda, 0)
}

func TestSetOffsetThenRead(t *testing.T) {
	h := newDefaultHarness(t)
	h.ee.Poke(3, 0x41)

	test.DemandSuccess(t, h.m.Write(0x50, 3, nil))
	test.ExpectEquality(t, h.sl.Registers().Offset, 3)

	d, err := h.m.ReadCurrent(0x50, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(d), 1)
	test.ExpectEquality(t, d[0], 0x41)

	// the master did not acknowledge the byte so the offset is unchanged
	test.ExpectEquality(t, h.sl.Registers().Offset, 3)
	test.ExpectEquality(t, h.sl.Registers().State, slave.WaitStart)
	test.ExpectEquality(t, h.mon.scl, 0)
}

func TestRoundTrip(t *testing.T) {
	h := newDefaultHarness(t)

	data := []uint8{0xde, 0xad, 0xbe, 0xef}
	test.DemandSuccess(t, h.m.Write(0x50, 0x10, data))
	test.ExpectEquality(t, h.sl.Registers().Offset, 0x14)
	test.ExpectFailure(t, h.sl.Registers().Reading)
	for i, v := range data {
		test.ExpectEquality(t, h.ee.Peek(0x10+i), v)
	}
	test.ExpectFailure(t, h.ee.IsSaved())

	d, err := h.m.Read(0x50, 0x10, len(data))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(d, data))
	test.ExpectSuccess(t, h.sl.Registers().Reading)

	// three bytes were acknowledged
	test.ExpectEquality(t, h.sl.Registers().Offset, 0x13)
}

func TestReadClockRates(t *testing.T) {
	// a first data bit of zero follows the ACK without SDA being released
	// in between. at some clock rates a released SDA would be sampled as a
	// START condition
	for half := defaultConfig.Divider * 2; half <= defaultConfig.Divider*4; half++ {
		h := newHarness(t, defaultConfig, 0, half)

		test.DemandSuccess(t, h.m.Write(0x50, 0x03, []uint8{0x5a}), half)
		d, err := h.m.Read(0x50, 0x03, 1)
		test.DemandSuccess(t, err, half)
		test.DemandEquality(t, len(d), 1, half)
		test.ExpectEquality(t, d[0], 0x5a, half)
		test.ExpectEquality(t, h.sl.Registers().State, slave.WaitStart, half)

		d, err = h.m.ReadCurrent(0x50, 1)
		test.DemandSuccess(t, err, half)
		test.ExpectEquality(t, d[0], 0x5a, half)
	}
}

func TestAddressFilter(t *testing.T) {
	h := newDefaultHarness(t)

	err := h.m.Write(0x51, 0x00, []uint8{0x01})
	test.ExpectSuccess(t, curated.Is(err, master.NoSuchDevice))
	_, err = h.m.ReadCurrent(0x28, 1)
	test.ExpectSuccess(t, curated.Is(err, master.NoSuchDevice))

	test.ExpectEquality(t, h.mon.sda, 0)
	test.ExpectEquality(t, h.mon.scl, 0)
	test.ExpectEquality(t, h.ee.Peek(0x00), 0xff)
	test.ExpectEquality(t, h.sl.Registers().State, slave.WaitStart)

	// the slave still responds to its own address
	test.DemandSuccess(t, h.m.Write(0x50, 0x00, []uint8{0x01}))
	test.ExpectEquality(t, h.ee.Peek(0x00), 0x01)
}

func TestOffsetWrap(t *testing.T) {
	h := newDefaultHarness(t)

	// multi-byte write over the end of memory
	test.DemandSuccess(t, h.m.Write(0x50, 126, []uint8{0x01, 0x02, 0x03}))
	test.ExpectEquality(t, h.ee.Peek(126), 0x01)
	test.ExpectEquality(t, h.ee.Peek(127), 0x02)
	test.ExpectEquality(t, h.ee.Peek(0), 0x03)
	test.ExpectEquality(t, h.sl.Registers().Offset, 1)

	// multi-byte read over the end of memory
	d, err := h.m.Read(0x50, 127, 2)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(d, []uint8{0x02, 0x03}))
	test.ExpectEquality(t, h.sl.Registers().Offset, 0)

	// offset byte is reduced to the size of the memory
	h.ee.Poke(5, 0x55)
	d, err = h.m.Read(0x50, 0x85, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d[0], 0x55)
	test.ExpectEquality(t, h.sl.Registers().Offset, 5)
}

func TestStretching(t *testing.T) {
	h := newHarness(t, defaultConfig, 500, defaultConfig.Divider*4)

	logger.Clear()
	test.DemandSuccess(t, h.m.Write(0x50, 0x20, []uint8{0x11, 0x22, 0x33}))
	test.ExpectEquality(t, h.ee.Peek(0x20), 0x11)
	test.ExpectEquality(t, h.ee.Peek(0x21), 0x22)
	test.ExpectEquality(t, h.ee.Peek(0x22), 0x33)

	// SCL was held while the memory was busy. SDA is only driven for
	// acknowledgements
	test.ExpectInequality(t, h.mon.scl, 0)
	test.ExpectInequality(t, h.mon.sda, 0)
	test.ExpectEquality(t, h.sl.Registers().State, slave.WaitStart)

	// each write cycle is long enough that the master must have waited
	test.ExpectSuccess(t, h.m.Ticks > 3*500)

	w := &strings.Builder{}
	logger.Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "i2c: clock stretch\n"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "i2c: clock released\n"))

	// the memory finishes the last write cycle while the bus is idle
	h.m.Idle(500)
	test.ExpectFailure(t, h.ee.Busy())
}

func TestNoStretching(t *testing.T) {
	cfg := defaultConfig
	cfg.Stretch = false
	h := newHarness(t, cfg, 500, cfg.Divider*4)

	test.DemandSuccess(t, h.m.Write(0x50, 0x20, []uint8{0x11, 0x22, 0x33}))
	test.ExpectEquality(t, h.mon.scl, 0)
	test.ExpectEquality(t, h.ee.Peek(0x22), 0x33)
}

func TestLog(t *testing.T) {
	h := newDefaultHarness(t)

	tw := &test.CompareWriter{}

	logger.Clear()
	test.DemandSuccess(t, h.m.Write(0x50, 0x20, []uint8{'A'}))
	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare(`i2c: start
i2c: address 0x50 write
i2c: offset 0x20
i2c: written byte 0x41 [A] to 0x20
i2c: stop
`), tw.String())

	tw.Clear()
	logger.Clear()
	_, err := h.m.Read(0x50, 0x20, 1)
	test.DemandSuccess(t, err)
	logger.Write(tw)
	for _, s := range []string{
		"i2c: repeated start\n",
		"i2c: address 0x50 read\n",
		"i2c: read byte 0x41 [A] from 0x20\n",
		"i2c: nack\n",
	} {
		test.ExpectSuccess(t, strings.Contains(tw.String(), s), s)
	}

	tw.Clear()
	logger.Clear()
	_ = h.m.Write(0x33, 0x00, nil)
	logger.Write(tw)
	test.ExpectSuccess(t, strings.Contains(tw.String(), "i2c: address 0x33 ignored\n"))
}

func TestReset(t *testing.T) {
	h := newDefaultHarness(t)

	test.DemandSuccess(t, h.m.Write(0x50, 0x20, []uint8{0x01}))
	test.ExpectInequality(t, h.sl.Ticks(), 0)
	test.ExpectEquality(t, h.sl.Registers().Offset, 0x21)

	h.sl.Reset()
	test.ExpectEquality(t, h.sl.Ticks(), 0)
	test.ExpectEquality(t, h.sl.Registers().Offset, 0)
	test.ExpectEquality(t, h.sl.Registers().State, slave.WaitStart)
	test.ExpectEquality(t, h.ee.Peek(0x20), 0x01)
}
