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

package pins

import (
	"context"
	"time"

	"github.com/jetsetilly/i2cslave/curated"
	"github.com/jetsetilly/i2cslave/hardware/wire"
	"github.com/jetsetilly/i2cslave/logger"
	"periph.io/x/conn/v3/physic"
)

// Sentinel errors for the pins package.
const (
	LineError   = "pins: %v"
	NoSuchPin   = "pins: no such pin (%s)"
	Unsupported = "pins: %s not supported on this platform"
)

const logTag = "pins"

// Lines is the physical connection to SCL and SDA.
type Lines interface {
	// the current level of each line
	Read() (scl bool, sda bool, err error)

	// drive the lines. a line that is not pulled low is released
	Drive(p wire.Pins) error

	// release the lines and the underlying device
	Close() error
}

// Device is ticked by Run() with the levels of the lines.
type Device interface {
	Tick(scl bool, sda bool) wire.Pins
}

// Stats are returned by Run().
type Stats struct {
	Ticks   uint64
	Elapsed time.Duration

	// number of ticks where the drive changed
	Changes uint64
}

// Run the device until the context is cancelled. A rate of zero means the
// device is ticked as quickly as possible.
//
// The lines are released when Run() returns but they are not closed.
func Run(ctx context.Context, lines Lines, dev Device, rate physic.Frequency) (stats Stats, rerr error) {
	var tick <-chan time.Time
	if rate > 0 {
		t := time.NewTicker(rate.Period())
		defer t.Stop()
		tick = t.C
		logger.Logf(logger.Allow, logTag, "sampling at %s", rate)
	} else {
		logger.Log(logger.Allow, logTag, "sampling without rate limit")
	}

	start := time.Now()

	defer func() {
		stats.Elapsed = time.Since(start)
		if err := lines.Drive(wire.Pins{}); err != nil && rerr == nil {
			rerr = curated.Errorf(LineError, err)
		}
		logger.Logf(logger.Allow, logTag, "stopped after %d ticks", stats.Ticks)
	}()

	var drive wire.Pins

	for {
		if tick == nil {
			select {
			case <-ctx.Done():
				return stats, nil
			default:
			}
		} else {
			select {
			case <-ctx.Done():
				return stats, nil
			case <-tick:
			}
		}

		scl, sda, err := lines.Read()
		if err != nil {
			return stats, curated.Errorf(LineError, err)
		}

		p := dev.Tick(scl, sda)
		stats.Ticks++

		if p != drive {
			if err := lines.Drive(p); err != nil {
				return stats, curated.Errorf(LineError, err)
			}
			drive = p
			stats.Changes++
		}
	}
}
