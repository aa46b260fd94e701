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

package performance_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/i2cslave/curated"
	"github.com/jetsetilly/i2cslave/environment"
	"github.com/jetsetilly/i2cslave/hardware/memory"
	"github.com/jetsetilly/i2cslave/hardware/preferences"
	"github.com/jetsetilly/i2cslave/hardware/slave"
	"github.com/jetsetilly/i2cslave/performance"
	"github.com/jetsetilly/i2cslave/test"
)

func newSlave(t *testing.T, size int) *slave.Slave {
	t.Helper()

	p, err := preferences.NewPreferencesAt(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainSlave, p)
	test.DemandSuccess(t, err)

	ee, err := memory.NewEEPROM(env, size, 0)
	test.DemandSuccess(t, err)
	sl, err := slave.NewSlave(env, slave.Config{Address: 0x50, Divider: 4, Stretch: true}, ee)
	test.DemandSuccess(t, err)

	return sl
}

func TestCheck(t *testing.T) {
	sl := newSlave(t, 16)

	w := &strings.Builder{}
	test.DemandSuccess(t, performance.Check(w, false, sl, "50ms"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "Hz ("), w.String())
	test.ExpectSuccess(t, strings.Contains(w.String(), " ticks in "), w.String())

	err := performance.Check(w, false, sl, "soon")
	test.ExpectSuccess(t, curated.Is(err, performance.PerformanceError))
}

func TestCheckSmallMemory(t *testing.T) {
	for _, size := range []int{1, 2, 3} {
		sl := newSlave(t, size)
		w := &strings.Builder{}
		test.ExpectSuccess(t, performance.Check(w, false, sl, "20ms"), size)
	}
}
