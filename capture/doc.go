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

// Package capture records the levels of the bus as a two channel WAV file and
// replays a recording into a device. The left channel is SCL and the right
// channel is SDA. There is one sample for every tick.
//
// WAV files are a convenient format because they can be inspected with any
// audio editor and they are also produced by many cheap logic analysers and
// sound cards used as oscilloscopes. A sample is read as high if it is
// positive.
package capture
