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

package capture

import (
	"io"
	"os"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/i2cslave/curated"
	"github.com/jetsetilly/i2cslave/environment"
	"github.com/jetsetilly/i2cslave/hardware/master"
	"github.com/jetsetilly/i2cslave/hardware/wire"
	"github.com/jetsetilly/i2cslave/logger"
)

// Capture is a decoded recording.
type Capture struct {
	SampleRate int
	SCL        []bool
	SDA        []bool
}

// Load a capture from WAV data.
func Load(env *environment.Environment, rs io.ReadSeeker) (*Capture, error) {
	dec := wav.NewDecoder(rs)
	if dec == nil || !dec.IsValidFile() {
		return nil, curated.Errorf(InvalidFile)
	}
	if dec.NumChans != numChans {
		return nil, curated.Errorf(WrongChannels, dec.NumChans)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf(CaptureError, err)
	}

	c := &Capture{
		SampleRate: int(dec.SampleRate),
		SCL:        make([]bool, 0, len(buf.Data)/numChans),
		SDA:        make([]bool, 0, len(buf.Data)/numChans),
	}

	for i := 0; i+1 < len(buf.Data); i += numChans {
		c.SCL = append(c.SCL, buf.Data[i] > 0)
		c.SDA = append(c.SDA, buf.Data[i+1] > 0)
	}

	logger.Logf(env, logTag, "%d ticks at %dHz", c.Len(), c.SampleRate)

	return c, nil
}

// LoadFile is a convenience function that opens a file and calls Load().
func LoadFile(env *environment.Environment, fn string) (*Capture, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, curated.Errorf(CaptureError, err)
	}
	defer f.Close()
	return Load(env, f)
}

// Len returns the number of ticks in the capture.
func (c *Capture) Len() int {
	return len(c.SCL)
}

// Result of a call to Replay().
type Result struct {
	Ticks int

	// number of ticks where the device was pulling a line low but the
	// capture has the line high. a non-zero value means the device did not
	// behave in the same way as the device that was recorded
	Conflicts int
}

// Replay the capture into a device. The device sees the recorded levels
// regardless of its own drive.
func (c *Capture) Replay(dev master.Device) Result {
	var res Result
	var drive wire.Pins

	for i := range c.SCL {
		if (drive.SCL.Low() && c.SCL[i]) || (drive.SDA.Low() && c.SDA[i]) {
			res.Conflicts++
		}
		drive = dev.Tick(c.SCL[i], c.SDA[i])
		res.Ticks++
	}

	return res
}
