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

package environment

import (
	"github.com/jetsetilly/i2cslave/hardware/preferences"
)

// Label is used to name the environment.
type Label string

// MainSlave is the label of the environment used by the slave the user is
// interacting with. It is the empty string.
const MainSlave = Label("")

// Environment is used to provide context for a slave. Particularly useful
// when more than one slave exists at the same time, such as when a capture is
// replayed to check a simulation.
type Environment struct {
	Label Label

	// the slave preferences
	Prefs *preferences.Preferences
}

// NewEnvironment is the preferred method of initialisation for the Environment type.
//
// The prefs argument can be nil, in which case a new Preferences instance will
// be created from the default preferences file. Providing a non-nil value
// allows the preferences of more than one slave to be shared.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label: label,
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in an known default state. Useful for
// tests where the configuration must be the same for every run.
func (env *Environment) Normalise() {
	env.Prefs.SetDefaults()
}

// IsMainSlave returns true if the environment is intended for the main slave
// in the system.
func (env *Environment) IsMainSlave() bool {
	return env.Label == MainSlave
}

// IsSlave checks the environment label and returns true if it matches.
func (env *Environment) IsSlave(label Label) bool {
	return env.Label == label
}

// AllowLogging implements the logger.Permission interface. Only the main slave
// is allowed to create log entries.
func (env *Environment) AllowLogging() bool {
	return env.IsMainSlave()
}
