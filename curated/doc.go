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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. For example:
//
//	e := curated.Errorf("memory: size must be between 1 and 256 (%d)", 1000)
//
//	if curated.Is(e, "memory: size must be between 1 and 256 (%d)") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain. The IsAny() function answers whether the error was created
// by curated.Errorf() at all. We can think of the difference as being
// 'expected' and 'unexpected' errors depending on how we choose to handle the
// result of the function call.
//
// Sentinel errors are patterns stored in an exported const string. For
// example, the master package declares:
//
//	const NACKReceived = "master: NACK received"
//
// The Error() function ensures that the error chain does not contain duplicate
// adjacent parts. Parts are separated by the sub-string ": " as suggested on
// p239 of "The Go Programming Language" (Donovan, Kernighan). So:
//
//	curated.Errorf("master: %v", curated.Errorf("master: NACK received"))
//
// will print as "master: NACK received" and not "master: master: NACK
// received".
package curated
