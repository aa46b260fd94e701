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

package test

import (
	"fmt"
	"strings"
)

// Level is a single sample in a waveform.
type Level int

// List of valid Level values. DontCare matches any sampled value.
const (
	Low Level = iota
	High
	DontCare
)

func (l Level) String() string {
	switch l {
	case Low:
		return "0"
	case High:
		return "1"
	}
	return "X"
}

// Matches returns true if the level agrees with the sampled value.
func (l Level) Matches(v bool) bool {
	switch l {
	case Low:
		return !v
	case High:
		return v
	}
	return true
}

// Waveform is a named collection of sampled signals. Every signal has the same
// length.
type Waveform struct {
	Length  int
	Signals map[string][]Level
}

// ParseWaveform reads a block of text describing one or more signals. Each
// non-blank line is a signal name followed by the signal itself. Lines
// beginning with # are ignored.
//
// Signal characters:
//
//	_ ▁ /     low
//	▔ \       high
//	0 1       literal low or high
//	-         repeat the previous sample
//	X         don't care
//
// So, a START condition followed by the first bit of an address byte might be
// written as:
//
//	scl ▔▔▔▔\___/▔▔▔
//	sda ▔▔\_-1------
func ParseWaveform(block string) (Waveform, error) {
	w := Waveform{
		Length:  -1,
		Signals: make(map[string][]Level),
	}

	for n, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		f := strings.Fields(line)
		if len(f) != 2 {
			return Waveform{}, fmt.Errorf("waveform: line %d: expected name and signal", n+1)
		}

		if _, ok := w.Signals[f[0]]; ok {
			return Waveform{}, fmt.Errorf("waveform: line %d: duplicate signal %s", n+1, f[0])
		}

		s, err := parseSignal(f[1])
		if err != nil {
			return Waveform{}, fmt.Errorf("waveform: line %d: %w", n+1, err)
		}

		if w.Length == -1 {
			w.Length = len(s)
		} else if w.Length != len(s) {
			return Waveform{}, fmt.Errorf("waveform: line %d: signal %s has length %d, expected %d", n+1, f[0], len(s), w.Length)
		}

		w.Signals[f[0]] = s
	}

	if w.Length == -1 {
		return Waveform{}, fmt.Errorf("waveform: no signals")
	}

	return w, nil
}

func parseSignal(s string) ([]Level, error) {
	var l []Level
	for i, r := range []rune(s) {
		var v Level
		switch r {
		case '_', '▁', '/', '0':
			v = Low
		case '▔', '\\', '1':
			v = High
		case 'X':
			v = DontCare
		case '-':
			if i == 0 {
				return nil, fmt.Errorf("repeat at start of signal")
			}
			v = l[i-1]
		default:
			return nil, fmt.Errorf("unrecognised character %q", r)
		}
		l = append(l, v)
	}
	return l, nil
}

// At returns the level of the named signal at index i. Returns DontCare if the
// signal doesn't exist or the index is out of range.
func (w Waveform) At(name string, i int) Level {
	s, ok := w.Signals[name]
	if !ok || i < 0 || i >= len(s) {
		return DontCare
	}
	return s[i]
}

// Bool returns the named signal at index i as a boolean. DontCare is treated
// as high, which is the idle state of an open-drain line.
func (w Waveform) Bool(name string, i int) bool {
	return w.At(name, i) != Low
}
