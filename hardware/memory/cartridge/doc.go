// This file is part of Gopherboy.
//
// Gopherboy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherboy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherboy.  If not, see <https://www.gnu.org/licenses/>.

// Package cartridge fully implements the cartridge interface, including the
// banking controllers found in real cartridges.
//
// The mapper implementations are pure address translation state machines.
// Writes to the ROM window are interpreted as control register writes; which
// registers exist and what they do is what distinguishes one mapper from
// another. Bank numbers are always masked into the range declared by the
// cartridge header, so an out of range selection wraps rather than faulting,
// which is what the address lines of the real controllers do.
//
// The set of mappers is closed. Selection happens in the Attach() function
// based on the mapper code in the cartridge header. A recognised code with
// no implementation is an UnsupportedMapper error; an unrecognised code is
// an InvalidROM error.
package cartridge
