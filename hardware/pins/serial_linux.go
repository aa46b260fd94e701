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

//go:build linux

package pins

import (
	"os"

	"github.com/jetsetilly/i2cslave/curated"
	"github.com/jetsetilly/i2cslave/hardware/wire"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// modem control bits for each line.
const (
	sclDrive = unix.TIOCM_RTS
	sdaDrive = unix.TIOCM_DTR
	sclSense = unix.TIOCM_CTS
	sdaSense = unix.TIOCM_DSR
)

// Serial implements the Lines interface with the modem control lines of a
// serial port. Asserting RTS or DTR pulls SCL or SDA low. CTS and DSR are
// asserted while SCL and SDA are high.
type Serial struct {
	f *os.File
}

// NewSerial is the preferred method of initialisation for the Serial type.
func NewSerial(device string) (*Serial, error) {
	f, err := os.OpenFile(device, os.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, curated.Errorf(LineError, err)
	}

	s := &Serial{f: f}
	if err := s.Drive(wire.Pins{}); err != nil {
		f.Close()
		return nil, err
	}

	return s, nil
}

func (s *Serial) String() string {
	return s.f.Name()
}

// Read implements the Lines interface.
func (s *Serial) Read() (bool, bool, error) {
	status, err := termios.Tiocmget(s.f.Fd())
	if err != nil {
		return true, true, curated.Errorf(LineError, err)
	}
	return status&sclSense == sclSense, status&sdaSense == sdaSense, nil
}

// Drive implements the Lines interface.
func (s *Serial) Drive(p wire.Pins) error {
	var set int
	var clr int

	if p.SCL.Low() {
		set |= sclDrive
	} else {
		clr |= sclDrive
	}
	if p.SDA.Low() {
		set |= sdaDrive
	} else {
		clr |= sdaDrive
	}

	if set != 0 {
		if err := termios.Tiocmbis(s.f.Fd(), set); err != nil {
			return curated.Errorf(LineError, err)
		}
	}
	if clr != 0 {
		if err := termios.Tiocmbic(s.f.Fd(), clr); err != nil {
			return curated.Errorf(LineError, err)
		}
	}

	return nil
}

// Close implements the Lines interface.
func (s *Serial) Close() error {
	err := s.Drive(wire.Pins{})
	if cerr := s.f.Close(); cerr != nil && err == nil {
		err = curated.Errorf(LineError, cerr)
	}
	return err
}
