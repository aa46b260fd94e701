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

// Package prefs facilitates the storage of preferential values in the
// i2cslave system. It is intended to be used for values that can be changed
// between runs without altering the behaviour of the slave in unexpected ways.
//
// Preference values are typed (Bool, Int, String) and are added to a Disk
// instance with a key. The key identifies the value in the preferences file,
// which is a simple text file of "key :: value" lines.
//
//	var addr prefs.Int
//	dsk, _ := prefs.NewDisk(path)
//	_ = dsk.Add("slave.address", &addr)
//	_ = dsk.Load(true)
//
// Values given on the command line can override the values on disk. The
// command line is parsed with PushCommandLineStack() and consulted by Load().
// The format of the command line string is "key::value; key::value".
//
// Validation of a value can be performed with a hookPre function. A hook
// returning an error prevents the value from being stored.
package prefs
