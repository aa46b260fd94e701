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

package capture_test

import (
	"io"

	"github.com/jetsetilly/i2cslave/hardware/wire"
)

// nobody is a bus with nothing connected.
type nobody struct{}

func (nobody) Tick(_ bool, _ bool) wire.Pins {
	return wire.Pins{}
}

// seeker is an in memory io.WriteSeeker.
type seeker struct {
	buf []byte
	pos int
}

func (s *seeker) Write(p []byte) (int, error) {
	if end := s.pos + len(p); end > len(s.buf) {
		s.buf = append(s.buf, make([]byte, end-len(s.buf))...)
	}
	n := copy(s.buf[s.pos:], p)
	s.pos += n
	return n, nil
}

func (s *seeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = int(offset)
	case io.SeekCurrent:
		s.pos += int(offset)
	case io.SeekEnd:
		s.pos = len(s.buf) + int(offset)
	}
	return int64(s.pos), nil
}
