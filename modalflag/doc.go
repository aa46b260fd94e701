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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas, with flag.FlagSet you call Parse() with the array of strings as the
// only argument, with modalflag you first call NewArgs() with the array of
// arguments and then Parse() with no arguments.
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("SIM", "REPLAY", "GPIO")
//	_, _ = md.Parse()
//
// The first sub-mode is the default. If the first argument is not one of the
// listed sub-modes then the default is chosen and the argument is left for the
// next call to Parse(). Flags for the chosen mode are added after a call to
// NewMode():
//
//	switch md.Mode() {
//	case "REPLAY":
//		md.NewMode()
//		addr := md.AddString("addr", "0x50", "slave address")
//		_, _ = md.Parse()
//	}
//
// Help is handled automatically. The -help flag will print the flags for the
// current mode and the list of sub-modes. Extra text can be added with the
// AdditionalHelp() function.
package modalflag
