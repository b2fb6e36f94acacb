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

// mbc0 is a cartridge with no banking controller at all: 32k of ROM wired
// straight to the bus, optionally with a RAM chip.
type mbc0 struct {
	data    []byte
	ramData []byte
}

func newMBC0(data []byte, ramSize int) *mbc0 {
	return &mbc0{
		data:    data,
		ramData: make([]byte, ramSize),
	}
}

func (cart *mbc0) id() string {
	return "ROM"
}

func (cart *mbc0) snapshot() cartMapper {
	n := *cart
	n.ramData = make([]byte, len(cart.ramData))
	copy(n.ramData, cart.ramData)
	return &n
}

func (cart *mbc0) reset() {
	// no control registers
}

func (cart *mbc0) access(addr uint16) uint8 {
	if int(addr) >= len(cart.data) {
		return openBus
	}
	return cart.data[addr]
}

func (cart *mbc0) accessVolatile(addr uint16, data uint8) {
	// no control registers
}

func (cart *mbc0) accessRAM(offset uint16) uint8 {
	if int(offset) >= len(cart.ramData) {
		return openBus
	}
	return cart.ramData[offset]
}

func (cart *mbc0) accessRAMVolatile(offset uint16, data uint8) {
	if int(offset) >= len(cart.ramData) {
		return
	}
	cart.ramData[offset] = data
}

func (cart *mbc0) numBanks() int {
	return 2
}

func (cart *mbc0) currentBank() int {
	return 1
}

func (cart *mbc0) ram() []byte {
	return cart.ramData
}

func (cart *mbc0) setRAM(data []byte) {
	copy(cart.ramData, data)
}

func (cart *mbc0) step(clocks int) {
}
