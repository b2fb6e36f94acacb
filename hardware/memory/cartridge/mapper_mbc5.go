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

// mbc5 has a 9 bit bank register split over two control addresses and,
// unlike the earlier controllers, allows bank 0 to be mapped into the
// switchable window.
type mbc5 struct {
	data    []byte
	ramData []byte

	ramEnabled bool
	bankLow    uint8
	bankHigh   uint8
	ramBankReg uint8
}

func newMBC5(data []byte, ramSize int) *mbc5 {
	return &mbc5{
		data:    data,
		ramData: make([]byte, ramSize),
		// the switchable window starts at bank 1 at power on
		bankLow: 1,
	}
}

func (cart *mbc5) id() string {
	return "MBC5"
}

func (cart *mbc5) snapshot() cartMapper {
	n := *cart
	n.ramData = make([]byte, len(cart.ramData))
	copy(n.ramData, cart.ramData)
	return &n
}

func (cart *mbc5) reset() {
	cart.ramEnabled = false
	cart.bankLow = 1
	cart.bankHigh = 0
	cart.ramBankReg = 0
}

func (cart *mbc5) numBanks() int {
	return len(cart.data) / bankSize
}

func (cart *mbc5) currentBank() int {
	bank := int(cart.bankHigh)<<8 | int(cart.bankLow)
	return bank & bankMask(cart.numBanks())
}

func (cart *mbc5) ramBank() int {
	if len(cart.ramData) <= ramBankSize {
		return 0
	}
	return int(cart.ramBankReg) & bankMask(len(cart.ramData)/ramBankSize)
}

func (cart *mbc5) access(addr uint16) uint8 {
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

func (cart *mbc5) accessVolatile(addr uint16, data uint8) {
	switch {
	case addr < 0x2000:
		cart.ramEnabled = data&0x0f == 0x0a
	case addr < 0x3000:
		cart.bankLow = data
	case addr < 0x4000:
		cart.bankHigh = data & 0x01
	case addr < 0x6000:
		cart.ramBankReg = data & 0x0f
	}
}

func (cart *mbc5) accessRAM(offset uint16) uint8 {
	if !cart.ramEnabled {
		return openBus
	}
	o := cart.ramBank()*ramBankSize + int(offset)
	if o >= len(cart.ramData) {
		return openBus
	}
	return cart.ramData[o]
}

func (cart *mbc5) accessRAMVolatile(offset uint16, data uint8) {
	if !cart.ramEnabled {
		return
	}
	o := cart.ramBank()*ramBankSize + int(offset)
	if o >= len(cart.ramData) {
		return
	}
	cart.ramData[o] = data
}

func (cart *mbc5) ram() []byte {
	return cart.ramData
}

func (cart *mbc5) setRAM(data []byte) {
	copy(cart.ramData, data)
}

func (cart *mbc5) step(clocks int) {
}
