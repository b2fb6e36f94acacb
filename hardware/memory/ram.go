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

package memory

// RAM is a plain byte addressable memory area.
type RAM []uint8

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM(size int) RAM {
	return make(RAM, size)
}

// Snapshot creates a copy of the RAM in its current state.
func (r RAM) Snapshot() RAM {
	n := make(RAM, len(r))
	copy(n, r)
	return n
}
