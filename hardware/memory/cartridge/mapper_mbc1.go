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

// mbc1 is the most common banking controller: a 5 bit bank register, a 2
// bit secondary register and a mode flag that decides whether the secondary
// register extends the ROM bank number or selects a RAM bank.
type mbc1 struct {
	data    []byte
	ramData []byte

	ramEnabled bool

	// the 5 bit and 2 bit bank registers as last written, before any
	// masking. masking happens on access because the mask depends on which
	// window is being read
	bankReg  uint8
	bank2Reg uint8

	// mode 0: bank2 applies to the fixed window and RAM bank is always 0
	// mode 1: bank2 selects the RAM bank and offsets the fixed window
	mode uint8
}

func newMBC1(data []byte, ramSize int) *mbc1 {
	return &mbc1{
		data:    data,
		ramData: make([]byte, ramSize),
	}
}

func (cart *mbc1) id() string {
	return "MBC1"
}

func (cart *mbc1) snapshot() cartMapper {
	n := *cart
	n.ramData = make([]byte, len(cart.ramData))
	copy(n.ramData, cart.ramData)
	return &n
}

func (cart *mbc1) reset() {
	cart.ramEnabled = false
	cart.bankReg = 0
	cart.bank2Reg = 0
	cart.mode = 0
}

func (cart *mbc1) numBanks() int {
	return len(cart.data) / bankSize
}

func (cart *mbc1) currentBank() int {
	bank := int(cart.bankReg)
	if bank == 0 {
		bank = 1
	}
	bank |= int(cart.bank2Reg) << 5
	return bank & bankMask(cart.numBanks())
}

// the bank mapped into the fixed window. normally zero but in mode 1 large
// cartridges see the secondary register here too.
func (cart *mbc1) fixedBank() int {
	if cart.mode == 0 {
		return 0
	}
	return (int(cart.bank2Reg) << 5) & bankMask(cart.numBanks())
}

func (cart *mbc1) ramBank() int {
	if cart.mode == 0 || len(cart.ramData) <= ramBankSize {
		return 0
	}
	return int(cart.bank2Reg) & bankMask(len(cart.ramData)/ramBankSize)
}

func (cart *mbc1) access(addr uint16) uint8 {
	var offset int
	if addr < 0x4000 {
		offset = cart.fixedBank()*bankSize + int(addr)
	} else {
		offset = cart.currentBank()*bankSize + int(addr-0x4000)
	}
	if offset >= len(cart.data) {
		return openBus
	}
	return cart.data[offset]
}

func (cart *mbc1) accessVolatile(addr uint16, data uint8) {
	switch {
	case addr < 0x2000:
		cart.ramEnabled = data&0x0f == 0x0a
	case addr < 0x4000:
		cart.bankReg = data & 0x1f
	case addr < 0x6000:
		cart.bank2Reg = data & 0x03
	default:
		cart.mode = data & 0x01
	}
}

func (cart *mbc1) accessRAM(offset uint16) uint8 {
	if !cart.ramEnabled {
		return openBus
	}
	o := cart.ramBank()*ramBankSize + int(offset)
	if o >= len(cart.ramData) {
		return openBus
	}
	return cart.ramData[o]
}

func (cart *mbc1) accessRAMVolatile(offset uint16, data uint8) {
	if !cart.ramEnabled {
		return
	}
	o := cart.ramBank()*ramBankSize + int(offset)
	if o >= len(cart.ramData) {
		return
	}
	cart.ramData[o] = data
}

func (cart *mbc1) ram() []byte {
	return cart.ramData
}

func (cart *mbc1) setRAM(data []byte) {
	copy(cart.ramData, data)
}

func (cart *mbc1) step(clocks int) {
}
