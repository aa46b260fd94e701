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
	"github.com/jetsetilly/i2cslave/hardware/i2c"
)

// line levels and memory status for a single tick.
type inputs struct {
	scl  bool
	sda  bool
	busy bool
}

// a write to memory requested by the next state function. reads have no side
// effects and are performed directly.
type memOp struct {
	write  bool
	offset int
	value  uint8
}

// events are returned by the next state function so that they can be logged
// by the commit step.
type event uint16

const (
	evStart event = 1 << iota
	evStop
	evMatch
	evIgnored
	evOffset
	evWrite
	evRead
	evAck
	evNack
	evStretch
	evResume
)

// the part of the memory.Memory interface used by the next state function.
type reader interface {
	Read(offset int) uint8
	Size() int
}

// next computes the registers for the next tick from the current registers
// and the inputs. the current registers are not modified.
//
// the state machine sees the synchronised lines as they are in the current
// registers. the synchronisers advance in parallel.
func next(cur Registers, in inputs, cfg Config, mem reader) (Registers, memOp, event) {
	n, op, ev := normalNextState(cur, in.busy, cfg, mem)

	// framing conditions take priority over everything else, including any
	// memory write requested by the normal next state
	if o, oev := applyOverrides(n, i2c.Detect(cur.SCL.Line, cur.SDA.Line)); oev != 0 {
		n, op, ev = o, memOp{}, oev
	}

	n.SCL = cur.SCL.Next(in.scl, cfg.Divider)
	n.SDA = cur.SDA.Next(in.sda, cfg.Divider)

	return n, op, ev
}

func normalNextState(cur Registers, busy bool, cfg Config, mem reader) (Registers, memOp, event) {
	n := cur
	var op memOp
	var ev event

	scl := cur.SCL.Line
	sda := cur.SDA.Line

	// shifter
	if cur.State.transfer() {
		if scl.Rising() {
			if cur.Count == 8 {
				n.Count = 0
			} else {
				n.Count = cur.Count + 1
				n.Shift = cur.Shift << 1
				if sda.Hi() {
					n.Shift |= 0x01
				}
			}
		}
	} else {
		n.Count = 0
	}

	// the first bit of a read must be on SDA as soon as the ACK is released
	// otherwise SDA rises for a tick and can be mistaken for a START
	enterRead := func() {
		n.State = Read
		n.DataDrive = true
		n.DataBit = mem.Read(cur.Offset)&0x80 == 0x80
	}

	// complete an ACK by moving to the next state or by stretching the clock
	// if the memory isn't ready
	ackDone := func(dest State) {
		if cfg.Stretch && busy {
			n.State = Pause
			n.Resume = dest
			ev |= evStretch
			return
		}
		if dest == Read {
			enterRead()
			return
		}
		n.State = dest
	}

	switch cur.State {
	case WaitStart:
		// only a START condition leaves this state

	case RcvAddress:
		if cur.Count == 8 {
			if cur.Shift>>1 == cfg.Address {
				n.Reading = cur.Shift&0x01 == 0x01
				n.State = AckAddress0
				ev |= evMatch
			} else {
				n.State = WaitStart
				ev |= evIgnored
			}
		}

	case AckAddress0, AckOffset0, AckData0:
		if scl.Lo() {
			n.State = cur.State + 1
		}

	case AckAddress1, AckOffset1, AckData1:
		if scl.Hi() {
			n.State = cur.State + 1
		}

	case AckAddress2:
		if scl.Lo() {
			if cur.Reading {
				ackDone(Read)
			} else {
				ackDone(RcvOffset)
			}
		}

	case RcvOffset:
		if cur.Count == 8 {
			n.Offset = int(cur.Shift) % mem.Size()
			n.State = AckOffset0
			ev |= evOffset
		}

	case AckOffset2:
		if scl.Lo() {
			ackDone(RcvData)
		}

	case RcvData:
		if cur.Count == 8 {
			op = memOp{write: true, offset: cur.Offset, value: cur.Shift}
			n.State = AckData0
			ev |= evWrite
		}

	case AckData2:
		if scl.Lo() {
			n.Offset = (cur.Offset + 1) % mem.Size()
			ackDone(RcvData)
		}

	case Read:
		if scl.Lo() {
			if cur.Count < 8 {
				n.DataDrive = true
				n.DataBit = (mem.Read(cur.Offset)>>(7-cur.Count))&0x01 == 0x01
			} else {
				n.DataDrive = false
				n.State = AckRead
				ev |= evRead
			}
		}

	case AckRead:
		if scl.Rising() {
			if sda.Hi() {
				n.State = WaitStart
				ev |= evNack
			} else {
				n.Offset = (cur.Offset + 1) % mem.Size()
				n.State = Read
				ev |= evAck
			}
		}

	case Pause:
		if !busy {
			ev |= evResume
			if cur.Resume == Read {
				enterRead()
			} else {
				n.State = cur.Resume
			}
		}
	}

	return n, op, ev
}

// applyOverrides returns the registers with the START and STOP conditions
// applied. START has priority over STOP. The returned event is zero if
// neither condition is present.
func applyOverrides(n Registers, f i2c.Framing) (Registers, event) {
	switch {
	case f.Start:
		n.State = RcvAddress
		n.Count = 0
		n.Shift = 0
		n.DataDrive = false
		return n, evStart
	case f.Stop:
		n.State = WaitStart
		n.Count = 0
		n.DataDrive = false
		return n, evStop
	}
	return n, 0
}
