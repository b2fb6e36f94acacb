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

package cartridge

// cartMapper implementations hold the data from the loaded ROM and keep
// track of which banks are mapped into the two cartridge windows. The
// interface is satisfied only by the types in this package; the set of
// banking controllers is fixed by the hardware generation.
type cartMapper interface {
	id() string

	snapshot() cartMapper

	// return the control registers to their power on values. RAM content
	// and any independent clock are kept
	reset()

	// access the ROM window. the address is in the range 0x0000 to 0x7fff
	access(addr uint16) uint8

	// writes to the ROM window address control registers. unknown or
	// reserved values are masked or ignored, never fatal
	accessVolatile(addr uint16, data uint8)

	// access the cartridge RAM window. the offset is in the range 0x0000 to
	// 0x1fff. reads of disabled or missing RAM return the open bus value
	// and writes are no-ops
	accessRAM(offset uint16) uint8
	accessRAMVolatile(offset uint16, data uint8)

	// the number of ROM banks and the bank currently mapped into the
	// switchable window
	numBanks() int
	currentBank() int

	// the RAM content for external persistence. returns an empty slice when
	// the cartridge has no RAM
	ram() []byte
	setRAM(data []byte)

	// some controllers have independent clocks. the step function is called
	// with the clocks consumed by the previous CPU instruction
	step(clocks int)

	// the serialisable state of the controller. the ROM data is never part
	// of the state: restoreState is always called on a mapper that has
	// already been bound to the ROM of the attached cartridge
	saveState() mapperState
	restoreState(state mapperState)
}

// bankMask returns the mask that keeps a bank number inside the valid range
// for the number of banks. bank counts are always a power of two.
func bankMask(numBanks int) int {
	return numBanks - 1
}
