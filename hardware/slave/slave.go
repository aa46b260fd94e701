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

package slave

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jetsetilly/i2cslave/curated"
	"github.com/jetsetilly/i2cslave/environment"
	"github.com/jetsetilly/i2cslave/hardware/memory"
	"github.com/jetsetilly/i2cslave/hardware/preferences"
	"github.com/jetsetilly/i2cslave/hardware/wire"
	"github.com/jetsetilly/i2cslave/logger"
)

// Sentinel errors for the slave package.
const (
	InvalidAddress = "slave: invalid address (%#02x)"
	InvalidDivider = "slave: divider must be at least one (%d)"
)

// the lowest and highest 7-bit addresses that are not reserved.
const (
	minAddress = 0x08
	maxAddress = 0x77
)

const logTag = "i2c"

// Config for a Slave. Configuration is fixed for the lifetime of the Slave.
type Config struct {
	// 7-bit bus address
	Address uint8

	// ticks between samples of the synchronised lines
	Divider int

	// hold SCL low after an ACK while the memory is busy. if false then SCL
	// is never driven
	Stretch bool
}

// NewConfig creates a Config from the slave preferences.
func NewConfig(p *preferences.Preferences) (Config, error) {
	addr := p.Address.Get().(int)
	if addr < minAddress || addr > maxAddress {
		return Config{}, curated.Errorf(InvalidAddress, addr)
	}

	cfg := Config{
		Address: uint8(addr),
		Divider: p.Divider.Get().(int),
		Stretch: p.Stretch.Get().(bool),
	}

	return cfg, cfg.Validate()
}

// Validate returns an error if the address is reserved or not 7-bit, or if
// the divider is less than one.
func (cfg Config) Validate() error {
	if cfg.Address < minAddress || cfg.Address > maxAddress {
		return curated.Errorf(InvalidAddress, cfg.Address)
	}
	if cfg.Divider < 1 {
		return curated.Errorf(InvalidDivider, cfg.Divider)
	}
	return nil
}

// Slave is an I2C slave with a backing memory. It is advanced one tick at a
// time with the Tick() function.
type Slave struct {
	env *environment.Environment
	cfg Config
	mem memory.Memory

	regs Registers

	// number of ticks since the slave was created or reset
	ticks uint64
}

// NewSlave is the preferred method of initialisation for the Slave type.
func NewSlave(env *environment.Environment, cfg Config, mem memory.Memory) (*Slave, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if mem.Size() < 1 || mem.Size() > memory.MaxSize {
		return nil, curated.Errorf(memory.InvalidSize, mem.Size())
	}

	sl := &Slave{
		env:  env,
		cfg:  cfg,
		mem:  mem,
		regs: ResetRegisters(),
	}

	logger.Logf(sl.env, logTag, "slave at address %#02x (%d bytes)", cfg.Address, mem.Size())

	return sl, nil
}

func (sl *Slave) String() string {
	return fmt.Sprintf("%s: %s", logTag, sl.regs)
}

// Snapshot creates a copy of the Slave. The memory is shared with the
// original.
func (sl *Slave) Snapshot() *Slave {
	n := *sl
	return &n
}

// Reset the slave to its power on state. The memory is unaffected.
func (sl *Slave) Reset() {
	sl.regs = ResetRegisters()
	sl.ticks = 0
}

// Registers returns a copy of the current registers.
func (sl *Slave) Registers() Registers {
	return sl.regs
}

// Config returns the configuration of the slave.
func (sl *Slave) Config() Config {
	return sl.cfg
}

// Memory returns the backing memory of the slave.
func (sl *Slave) Memory() memory.Memory {
	return sl.mem
}

// Ticks returns the number of ticks since the slave was created or reset.
func (sl *Slave) Ticks() uint64 {
	return sl.ticks
}

// Pins returns the current drive of the slave.
func (sl *Slave) Pins() wire.Pins {
	return sl.regs.Pins()
}

// Tick advances the slave by one tick. The scl and sda arguments are the raw
// levels of the lines. The returned value is the drive of the slave until the
// next call to Tick().
func (sl *Slave) Tick(scl bool, sda bool) wire.Pins {
	sl.ticks++

	if s, ok := sl.mem.(memory.Stepper); ok {
		s.Step()
	}

	in := inputs{scl: scl, sda: sda}
	if b, ok := sl.mem.(memory.Busy); ok {
		in.busy = b.Busy()
	}

	n, op, ev := next(sl.regs, in, sl.cfg, sl.mem)

	// commit
	if op.write {
		sl.mem.Write(op.offset, op.value)
	}
	prev := sl.regs
	sl.regs = n

	if ev != 0 {
		sl.log(ev, prev, op)
	}

	return sl.regs.Pins()
}

func printable(v uint8) string {
	if v < 0x80 && unicode.IsPrint(rune(v)) {
		return fmt.Sprintf("%#02x [%c]", v, v)
	}
	return fmt.Sprintf("%#02x", v)
}

func (sl *Slave) log(ev event, prev Registers, op memOp) {
	if !sl.env.AllowLogging() {
		return
	}

	s := strings.Builder{}
	add := func(f string, args ...any) {
		if s.Len() > 0 {
			s.WriteString(": ")
		}
		s.WriteString(fmt.Sprintf(f, args...))
	}

	switch {
	case ev&evStart == evStart:
		if prev.State != WaitStart {
			add("repeated start")
		} else {
			add("start")
		}
	case ev&evStop == evStop:
		add("stop")
	}

	if ev&evMatch == evMatch {
		if sl.regs.Reading {
			add("address %#02x read", prev.Shift>>1)
		} else {
			add("address %#02x write", prev.Shift>>1)
		}
	}
	if ev&evIgnored == evIgnored {
		add("address %#02x ignored", prev.Shift>>1)
	}
	if ev&evOffset == evOffset {
		add("offset %#02x", sl.regs.Offset)
	}
	if ev&evWrite == evWrite {
		add("written byte %s to %#02x", printable(op.value), op.offset)
	}
	if ev&evRead == evRead {
		add("read byte %s from %#02x", printable(sl.mem.Read(sl.regs.Offset)), sl.regs.Offset)
	}
	if ev&evAck == evAck {
		add("ack")
	}
	if ev&evNack == evNack {
		add("nack")
	}
	if ev&evStretch == evStretch {
		add("clock stretch")
	}
	if ev&evResume == evResume {
		add("clock released")
	}

	logger.Log(sl.env, logTag, s.String())
}
