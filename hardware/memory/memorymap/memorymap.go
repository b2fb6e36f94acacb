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

// Package memorymap facilitates the translation of addresses to meaningful
// memory areas. Every address in the 16 bit address space maps to exactly
// one area. The echo of work RAM at 0xe000 is normalised to the work RAM
// area, meaning that the rest of the memory system never has to think about
// mirrored addresses.
package memorymap

// Area represents the different areas of the address space.
type Area int

// The different Area values. Every address maps to exactly one of these.
const (
	CartROM Area = iota // 0x0000 to 0x7fff, dispatched to the mapper
	VRAM                // 0x8000 to 0x9fff, owned by the pixel unit
	CartRAM             // 0xa000 to 0xbfff, dispatched to the mapper
	WRAM                // 0xc000 to 0xdfff (echoed at 0xe000 to 0xfdff)
	OAM                 // 0xfe00 to 0xfe9f, owned by the pixel unit
	Unusable            // 0xfea0 to 0xfeff, reads return the open bus value
	IO                  // 0xff00 to 0xff7f, hardware registers
	HRAM                // 0xff80 to 0xfffe
	IE                  // 0xffff, interrupt enable register
)

func (a Area) String() string {
	switch a {
	case CartROM:
		return "Cartridge ROM"
	case VRAM:
		return "VRAM"
	case CartRAM:
		return "Cartridge RAM"
	case WRAM:
		return "WRAM"
	case OAM:
		return "OAM"
	case Unusable:
		return "Unusable"
	case IO:
		return "IO"
	case HRAM:
		return "HRAM"
	case IE:
		return "IE"
	}
	return "Undefined"
}

// OpenBus is the value returned by reads of unmapped or unusable addresses.
// Software is known to probe these areas and relies on the result.
const OpenBus = 0xff

// MapAddress translates an address to the Area it belongs to and the offset
// of the address within that area. Echoed work RAM addresses translate to
// the WRAM area with the same offset as the original address.
func MapAddress(address uint16) (Area, uint16) {
	switch {
	case address <= 0x7fff:
		return CartROM, address
	case address <= 0x9fff:
		return VRAM, address - 0x8000
	case address <= 0xbfff:
		return CartRAM, address - 0xa000
	case address <= 0xdfff:
		return WRAM, address - 0xc000
	case address <= 0xfdff:
		// echo RAM
		return WRAM, address - 0xe000
	case address <= 0xfe9f:
		return OAM, address - 0xfe00
	case address <= 0xfeff:
		return Unusable, address - 0xfea0
	case address <= 0xff7f:
		return IO, address
	case address <= 0xfffe:
		return HRAM, address - 0xff80
	}
	return IE, 0
}
