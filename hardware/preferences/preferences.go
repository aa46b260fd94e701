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

package preferences

import (
	"github.com/jetsetilly/i2cslave/prefs"
	"github.com/jetsetilly/i2cslave/resources"
)

// Default values for the slave preferences.
const (
	DefaultAddress    = 0x50
	DefaultMemorySize = 128
	DefaultDivider    = 64
	DefaultStretch    = true
	DefaultWriteCycle = 0
)

// Preferences defines and collates all the preference values used by the
// slave and its backing memory.
type Preferences struct {
	dsk *prefs.Disk

	// 7-bit bus address of the slave
	Address prefs.Int

	// number of bytes in the backing memory. offsets wrap at this value
	MemorySize prefs.Int

	// the synchroniser samples the lines once every Divider ticks
	Divider prefs.Int

	// hold SCL low while the backing memory is busy
	Stretch prefs.Bool

	// number of ticks the memory is busy after a write. zero means writes
	// complete immediately
	WriteCycle prefs.Int

	// binary file used to initialise the memory
	Image prefs.String
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. Values are loaded from the default preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesAt(pth)
}

// NewPreferencesAt is like NewPreferences but loads values from the named
// file.
func NewPreferencesAt(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key string
		v   interface {
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
			String() string
		}
	}{
		{"slave.address", &p.Address},
		{"slave.memory.size", &p.MemorySize},
		{"slave.divider", &p.Divider},
		{"slave.stretch", &p.Stretch},
		{"slave.memory.writecycle", &p.WriteCycle},
		{"slave.memory.image", &p.Image},
	} {
		if err := p.dsk.Add(e.key, e.v); err != nil {
			return nil, err
		}
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	_ = p.Address.Set(DefaultAddress)
	_ = p.MemorySize.Set(DefaultMemorySize)
	_ = p.Divider.Set(DefaultDivider)
	_ = p.Stretch.Set(DefaultStretch)
	_ = p.WriteCycle.Set(DefaultWriteCycle)
	_ = p.Image.Set("")
}

// Load slave preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current slave preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
