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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/i2cslave/curated"
	"github.com/jetsetilly/i2cslave/hardware/master"
	"github.com/jetsetilly/i2cslave/hardware/slave"
	"periph.io/x/conn/v3/physic"
)

// PerformanceError is the sentinel error for the performance package.
const PerformanceError = "performance: %v"

// the transaction run repeatedly by Check()
var pattern = []uint8{0x00, 0x55, 0xaa, 0xff}

// Check the performance of the slave by running transactions with the
// simulated master until the duration has elapsed. The memory of the slave
// will be overwritten.
func Check(output io.Writer, profile bool, sl *slave.Slave, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	m, err := master.NewMaster(sl, sl.Config().Divider*4)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	addr := sl.Config().Address
	size := sl.Memory().Size()

	// a pattern longer than the memory would overwrite itself
	pat := pattern
	if len(pat) > size {
		pat = pat[:size]
	}

	var elapsed time.Duration

	run := func() error {
		start := time.Now()
		offset := 0
		for time.Since(start) < dur {
			if err := m.Write(addr, uint8(offset), pat); err != nil {
				return err
			}
			d, err := m.Read(addr, uint8(offset), len(pat))
			if err != nil {
				return err
			}
			for i := range d {
				if d[i] != pat[i] {
					return fmt.Errorf("data mismatch at offset %#02x", (offset+i)%size)
				}
			}
			offset = (offset + len(pat)) % size
		}
		elapsed = time.Since(start)
		return nil
	}

	if profile {
		err = ProfileCPU("cpu.profile", run)
	} else {
		err = run()
	}
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	rate := physic.Frequency(float64(m.Ticks) / elapsed.Seconds() * float64(physic.Hertz))
	fmt.Fprintf(output, "%s (%d ticks in %.2f seconds)\n", rate, m.Ticks, elapsed.Seconds())

	if profile {
		return ProfileMem("mem.profile")
	}
	return nil
}
