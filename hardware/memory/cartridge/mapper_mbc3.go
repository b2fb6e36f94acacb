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

// the RTC registers as they appear to software when a clock register rather
// than a RAM bank is mapped into the RAM window.
const (
	rtcSeconds = 0x08
	rtcMinutes = 0x09
	rtcHours   = 0x0a
	rtcDaysLow = 0x0b
	rtcControl = 0x0c // day counter bit 8, halt flag, day carry flag
)

// the controller's clock crystal ticks the seconds register at one second
// intervals measured in machine clocks.
const clocksPerSecond = 4194304

// rtc is the real time clock found in MBC3 cartridges. It counts in machine
// clocks rather than wall time so the clock is deterministic and serializes
// with the rest of the machine.
type rtc struct {
	seconds uint8
	minutes uint8
	hours   uint8
	days    uint16
	halt    bool
	carry   bool

	// clocks accumulated towards the next second
	accumulate int

	// the latched copy presented to software
	latched      [5]uint8
	latchPrepare bool
}

func (r *rtc) step(clocks int) {
	if r.halt {
		return
	}

	r.accumulate += clocks
	for r.accumulate >= clocksPerSecond {
		r.accumulate -= clocksPerSecond
		r.tickSecond()
	}
}

func (r *rtc) tickSecond() {
	r.seconds++
	if r.seconds < 60 {
		return
	}
	r.seconds = 0
	r.minutes++
	if r.minutes < 60 {
		return
	}
	r.minutes = 0
	r.hours++
	if r.hours < 24 {
		return
	}
	r.hours = 0
	r.days++
	if r.days > 0x01ff {
		r.days = 0
		r.carry = true
	}
}

func (r *rtc) latch() {
	r.latched[0] = r.seconds
	r.latched[1] = r.minutes
	r.latched[2] = r.hours
	r.latched[3] = uint8(r.days)
	r.latched[4] = uint8(r.days>>8) & 0x01
	if r.halt {
		r.latched[4] |= 0x40
	}
	if r.carry {
		r.latched[4] |= 0x80
	}
}

func (r *rtc) read(reg uint8) uint8 {
	return r.latched[reg-rtcSeconds]
}

func (r *rtc) write(reg uint8, data uint8) {
	switch reg {
	case rtcSeconds:
		r.seconds = data & 0x3f
		r.accumulate = 0
	case rtcMinutes:
		r.minutes = data & 0x3f
	case rtcHours:
		r.hours = data & 0x1f
	case rtcDaysLow:
		r.days = r.days&0x0100 | uint16(data)
	case rtcControl:
		r.days = r.days&0x00ff | uint16(data&0x01)<<8
		r.halt = data&0x40 == 0x40
		r.carry = data&0x80 == 0x80
	}
}

// mbc3 has a 7 bit bank register and an optional real time clock. The RAM
// window shows either a RAM bank or one of the clock registers.
type mbc3 struct {
	data    []byte
	ramData []byte

	ramEnabled bool
	bankReg    uint8

	// values 0x00 to 0x03 select a RAM bank; 0x08 to 0x0c select an RTC
	// register
	ramSelect uint8

	hasRTC bool
	clock  rtc
}

func newMBC3(data []byte, ramSize int, hasRTC bool) *mbc3 {
	return &mbc3{
		data:    data,
		ramData: make([]byte, ramSize),
		hasRTC:  hasRTC,
	}
}

func (cart *mbc3) id() string {
	if cart.hasRTC {
		return "MBC3+RTC"
	}
	return "MBC3"
}

func (cart *mbc3) snapshot() cartMapper {
	n := *cart
	n.ramData = make([]byte, len(cart.ramData))
	copy(n.ramData, cart.ramData)
	return &n
}

// reset keeps the clock. an RTC ticks through a console reset.
func (cart *mbc3) reset() {
	cart.ramEnabled = false
	cart.bankReg = 0
	cart.ramSelect = 0
	cart.clock.latchPrepare = false
}

func (cart *mbc3) numBanks() int {
	return len(cart.data) / bankSize
}

func (cart *mbc3) currentBank() int {
	bank := int(cart.bankReg)
	if bank == 0 {
		bank = 1
	}
	return bank & bankMask(cart.numBanks())
}

func (cart *mbc3) access(addr uint16) uint8 {
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

func (cart *mbc3) accessVolatile(addr uint16, data uint8) {
	switch {
	case addr < 0x2000:
		cart.ramEnabled = data&0x0f == 0x0a
	case addr < 0x4000:
		cart.bankReg = data & 0x7f
	case addr < 0x6000:
		cart.ramSelect = data & 0x0f
	default:
		// the clock registers latch on a 0x00 to 0x01 write sequence
		if !cart.hasRTC {
			return
		}
		if data == 0x00 {
			cart.clock.latchPrepare = true
		} else if data == 0x01 && cart.clock.latchPrepare {
			cart.clock.latchPrepare = false
			cart.clock.latch()
		} else {
			cart.clock.latchPrepare = false
		}
	}
}

func (cart *mbc3) ramBank() int {
	if len(cart.ramData) <= ramBankSize {
		return 0
	}
	return int(cart.ramSelect) & bankMask(len(cart.ramData)/ramBankSize)
}

func (cart *mbc3) accessRAM(offset uint16) uint8 {
	if !cart.ramEnabled {
		return openBus
	}

	if cart.ramSelect >= rtcSeconds && cart.ramSelect <= rtcControl {
		if !cart.hasRTC {
			return openBus
		}
		return cart.clock.read(cart.ramSelect)
	}

	o := cart.ramBank()*ramBankSize + int(offset)
	if o >= len(cart.ramData) {
		return openBus
	}
	return cart.ramData[o]
}

func (cart *mbc3) accessRAMVolatile(offset uint16, data uint8) {
	if !cart.ramEnabled {
		return
	}

	if cart.ramSelect >= rtcSeconds && cart.ramSelect <= rtcControl {
		if cart.hasRTC {
			cart.clock.write(cart.ramSelect, data)
		}
		return
	}

	o := cart.ramBank()*ramBankSize + int(offset)
	if o >= len(cart.ramData) {
		return
	}
	cart.ramData[o] = data
}

func (cart *mbc3) ram() []byte {
	return cart.ramData
}

func (cart *mbc3) setRAM(data []byte) {
	copy(cart.ramData, data)
}

func (cart *mbc3) step(clocks int) {
	if cart.hasRTC {
		cart.clock.step(clocks)
	}
}
