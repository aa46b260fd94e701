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

package environment_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/i2cslave/environment"
	"github.com/jetsetilly/i2cslave/hardware/preferences"
	"github.com/jetsetilly/i2cslave/logger"
	"github.com/jetsetilly/i2cslave/test"
)

func TestPermission(t *testing.T) {
	p, err := preferences.NewPreferencesAt(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	primary, err := environment.NewEnvironment(environment.MainSlave, p)
	test.DemandSuccess(t, err)
	replay, err := environment.NewEnvironment(environment.Label("replay"), p)
	test.DemandSuccess(t, err)

	var perm logger.Permission = primary
	test.ExpectSuccess(t, perm.AllowLogging())
	test.ExpectFailure(t, replay.AllowLogging())
	test.ExpectSuccess(t, replay.IsSlave("replay"))

	// preferences are shared
	test.ExpectSuccess(t, replay.Prefs.Address.Set(0x22))
	test.ExpectEquality(t, primary.Prefs.Address.Get().(int), 0x22)
	primary.Normalise()
	test.ExpectEquality(t, replay.Prefs.Address.Get().(int), 0x50)
}
