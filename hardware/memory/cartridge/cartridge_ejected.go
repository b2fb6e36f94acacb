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

// ejected is the mapper in place when there is no cartridge in the slot.
// Every read sees the open bus value.
type ejected struct {
}

func newEjected() *ejected {
	return &ejected{}
}

func (cart *ejected) id() string {
	return "ejected"
}

func (cart *ejected) snapshot() cartMapper {
	n := *cart
	return &n
}

func (cart *ejected) reset() {
}

func (cart *ejected) access(addr uint16) uint8 {
	return openBus
}

func (cart *ejected) accessVolatile(addr uint16, data uint8) {
}

func (cart *ejected) accessRAM(offset uint16) uint8 {
	return openBus
}

func (cart *ejected) accessRAMVolatile(offset uint16, data uint8) {
}

func (cart *ejected) numBanks() int {
	return 0
}

func (cart *ejected) currentBank() int {
	return 0
}

func (cart *ejected) ram() []byte {
	return []byte{}
}

func (cart *ejected) setRAM(data []byte) {
}

func (cart *ejected) step(clocks int) {
}
