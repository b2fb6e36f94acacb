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

// mbc2 has a 4 bit bank register and 512 half-bytes of RAM built into the
// controller itself. A single address line (bit 8) decides whether a
// control write selects the bank or toggles RAM enable.
type mbc2 struct {
	data    []byte
	ramData []byte

	ramEnabled bool
	bankReg    uint8
}

// the RAM built into the controller. only the low nibble of each byte
// exists.
const mbc2RAMSize = 512

func newMBC2(data []byte) *mbc2 {
	return &mbc2{
		data:    data,
		ramData: make([]byte, mbc2RAMSize),
	}
}

func (cart *mbc2) id() string {
	return "MBC2"
}

func (cart *mbc2) snapshot() cartMapper {
	n := *cart
	n.ramData = make([]byte, len(cart.ramData))
	copy(n.ramData, cart.ramData)
	return &n
}

func (cart *mbc2) reset() {
	cart.ramEnabled = false
	cart.bankReg = 0
}

func (cart *mbc2) numBanks() int {
	return len(cart.data) / bankSize
}

func (cart *mbc2) currentBank() int {
	bank := int(cart.bankReg)
	if bank == 0 {
		bank = 1
	}
	return bank & bankMask(cart.numBanks())
}

func (cart *mbc2) access(addr uint16) uint8 {
	var offset int
	if addr < 0x4000 {
		offset = int(addr)
	} else {
		offset = cart.currentBank()*bankSize + int(addr-0x4000)
	}
	if offset >= len(cart.data) {
		return openBus
	}
	return cart.data[offset]
}

func (cart *mbc2) accessVolatile(addr uint16, data uint8) {
	if addr >= 0x4000 {
		return
	}

	// address bit 8 selects between the two control registers
	if addr&0x0100 == 0x0100 {
		cart.bankReg = data & 0x0f
	} else {
		cart.ramEnabled = data&0x0f == 0x0a
	}
}

func (cart *mbc2) accessRAM(offset uint16) uint8 {
	if !cart.ramEnabled {
		return openBus
	}
	// the 512 half-bytes repeat through the whole RAM window. the upper
	// nibble does not exist and reads as set
	return cart.ramData[offset&0x01ff] | 0xf0
}

func (cart *mbc2) accessRAMVolatile(offset uint16, data uint8) {
	if !cart.ramEnabled {
		return
	}
	cart.ramData[offset&0x01ff] = data & 0x0f
}

func (cart *mbc2) ram() []byte {
	return cart.ramData
}

func (cart *mbc2) setRAM(data []byte) {
	copy(cart.ramData, data)
}

func (cart *mbc2) step(clocks int) {
}
