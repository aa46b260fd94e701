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

package i2c

// Synchroniser brings a raw line into the tick domain. The raw value passes
// through two registers before being sampled into the Line trace once every
// divider ticks. Changes to the raw line shorter than the divider period can
// be missed completely, which is the extent of glitch rejection.
//
// Edges in the Line trace are one tick pulses. The trace is advanced every
// tick with the held sample so Rising() and Falling() are only true on the
// tick immediately after a sample that differs from the previous one.
type Synchroniser struct {
	stage [2]bool
	count int

	Line Trace
}

// NewSynchroniser returns a synchroniser for an idle (high) line.
func NewSynchroniser() Synchroniser {
	return Synchroniser{
		stage: [2]bool{true, true},
		Line:  NewTrace(),
	}
}

// Next returns the synchroniser after one tick in which the raw line was at
// level raw. A divider of less than one is treated as one, ie. the line is
// sampled every tick.
func (s Synchroniser) Next(raw bool, divider int) Synchroniser {
	n := s
	n.stage[0] = raw
	n.stage[1] = s.stage[0]

	held := s.Line.Hi()
	if s.count == 0 {
		held = s.stage[1]
	}
	n.Line = s.Line.Next(held)

	n.count = s.count + 1
	if n.count >= divider {
		n.count = 0
	}

	return n
}
