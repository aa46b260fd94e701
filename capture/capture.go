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

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/i2cslave/curated"
	"github.com/jetsetilly/i2cslave/environment"
	"github.com/jetsetilly/i2cslave/logger"
)

// Sentinel errors for the capture package.
const (
	CaptureError  = "capture: %v"
	InvalidFile   = "capture: not a valid wav file"
	WrongChannels = "capture: wav file must have two channels (%d)"
	Empty         = "capture: nothing recorded"
)

// DefaultSampleRate is the sample rate written to the WAV header when the
// tick rate isn't known. One tick per microsecond.
const DefaultSampleRate = 1000000

const logTag = "capture"

// sample values for each line level.
const (
	levelHigh = 16000
	levelLow  = -16000
	bitDepth  = 16
	numChans  = 2

	// PCM format in the WAV header
	pcmFormat = 1
)

// Recorder implements the master.Probe interface. Samples are buffered in
// memory until Save() or Encode() is called.
type Recorder struct {
	env        *environment.Environment
	sampleRate int
	data       []int
}

// NewRecorder is the preferred method of initialisation for the Recorder type.
func NewRecorder(env *environment.Environment, sampleRate int) *Recorder {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Recorder{
		env:        env,
		sampleRate: sampleRate,
	}
}

func level(v bool) int {
	if v {
		return levelHigh
	}
	return levelLow
}

// Probe implements the master.Probe interface.
func (rec *Recorder) Probe(scl bool, sda bool) {
	rec.data = append(rec.data, level(scl), level(sda))
}

// Len returns the number of ticks recorded.
func (rec *Recorder) Len() int {
	return len(rec.data) / numChans
}

// Encode the recording as WAV data.
func (rec *Recorder) Encode(ws io.WriteSeeker) error {
	if len(rec.data) == 0 {
		return curated.Errorf(Empty)
	}

	enc := wav.NewEncoder(ws, rec.sampleRate, bitDepth, numChans, pcmFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChans,
			SampleRate:  rec.sampleRate,
		},
		Data:           rec.data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf(CaptureError, err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf(CaptureError, err)
	}

	return nil
}

// Save the recording to a WAV file.
func (rec *Recorder) Save(fn string) (rerr error) {
	f, err := os.Create(fn)
	if err != nil {
		return curated.Errorf(CaptureError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(CaptureError, err)
		}
	}()

	if err := rec.Encode(f); err != nil {
		return err
	}

	logger.Logf(rec.env, logTag, "%d ticks written to %s", rec.Len(), fn)

	return nil
}
