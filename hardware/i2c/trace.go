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

// Trace records the state of the electrical line, whether it is high or low,
// and also whether the immediately previous state is also high or low.
//
// Moving from one state to the other is done with Next(bool) where a boolean
// value of true indicates a high voltage state.
//
// The function Falling() returns true if the line voltage has moved from a
// high state to low state; and Rising() returns true if the opposite is true.
//
// Deriving conditions from two traces is convenient. For example, given two
// traces A and B, a condition for event E might be:
//
//	if A.Hi() && B.Rising() {
//		E()
//	}
type Trace struct {
	from bool
	to   bool
}

// NewTrace returns a Trace for an idle line. I2C lines are pulled up so an
// idle line is high.
func NewTrace() Trace {
	return Trace{from: true, to: true}
}

func (tr Trace) String() string {
	switch {
	case tr.Rising():
		return "/"
	case tr.Falling():
		return "\\"
	case tr.to:
		return "▔"
	}
	return "_"
}

// Next returns the trace after the line has been observed at level v.
func (tr Trace) Next(v bool) Trace {
	return Trace{from: tr.to, to: v}
}

func (tr Trace) Changed() bool {
	return tr.from != tr.to
}

func (tr Trace) Falling() bool {
	return tr.from && !tr.to
}

func (tr Trace) Rising() bool {
	return !tr.from && tr.to
}

func (tr Trace) Hi() bool {
	return tr.to
}

func (tr Trace) Lo() bool {
	return !tr.to
}
