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

// Package memory implements the memory bus. Every address in the 16 bit
// address space resolves to exactly one owner: work RAM and high RAM are
// owned by the bus itself; cartridge addresses dispatch to the attached
// mapper; video RAM, OAM and the hardware registers dispatch to the
// peripheral that owns them.
//
// Read() and Write() are total functions. An address with no owner reads
// the open bus value and swallows writes. Real software probes these areas
// so they must be defined behavior, not errors.
package memory

import (
	"github.com/jetsetilly/gopherboy/hardware/apu"
	"github.com/jetsetilly/gopherboy/hardware/interrupts"
	"github.com/jetsetilly/gopherboy/hardware/joypad"
	"github.com/jetsetilly/gopherboy/hardware/memory/addresses"
	"github.com/jetsetilly/gopherboy/hardware/memory/cartridge"
	"github.com/jetsetilly/gopherboy/hardware/memory/memorymap"
	"github.com/jetsetilly/gopherboy/hardware/ppu"
	"github.com/jetsetilly/gopherboy/hardware/serial"
	"github.com/jetsetilly/gopherboy/hardware/timer"
)

// sizes of the memory areas owned by the bus itself.
const (
	WRAMSize = 0x2000
	HRAMSize = 0x7f
)

// Bus is the memory system of the machine. It routes every access to the
// area that owns the address.
type Bus struct {
	Cart *cartridge.Cartridge
	WRAM RAM
	HRAM RAM

	PPU    *ppu.PPU
	APU    *apu.APU
	Timer  *timer.Timer
	Serial *serial.Serial
	Joypad *joypad.Joypad
	IRQ    *interrupts.Interrupts

	// the last value written to the DMA register. reads of the register see
	// this value, not anything about the copy it triggered
	dmaLast uint8
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus(cart *cartridge.Cartridge, p *ppu.PPU, a *apu.APU,
	tmr *timer.Timer, ser *serial.Serial, pad *joypad.Joypad,
	irq *interrupts.Interrupts) *Bus {
	return &Bus{
		Cart:   cart,
		WRAM:   NewRAM(WRAMSize),
		HRAM:   NewRAM(HRAMSize),
		PPU:    p,
		APU:    a,
		Timer:  tmr,
		Serial: ser,
		Joypad: pad,
		IRQ:    irq,
	}
}

// Snapshot creates a copy of the bus owned state: the RAM areas and the
// cartridge. Peripheral state is snapshotted by the peripherals themselves.
func (bus *Bus) Snapshot() *Bus {
	n := *bus
	n.WRAM = bus.WRAM.Snapshot()
	n.HRAM = bus.HRAM.Snapshot()
	n.Cart = bus.Cart.Snapshot()
	return &n
}

// Plumb the supplied peripherals into the bus. Used when restoring a
// snapshot.
func (bus *Bus) Plumb(p *ppu.PPU, a *apu.APU, tmr *timer.Timer,
	ser *serial.Serial, pad *joypad.Joypad, irq *interrupts.Interrupts) {
	bus.PPU = p
	bus.APU = a
	bus.Timer = tmr
	bus.Serial = ser
	bus.Joypad = pad
	bus.IRQ = irq
}

// Read a byte from the address. Never fails: addresses with no owner return
// the open bus value.
func (bus *Bus) Read(address uint16) uint8 {
	area, offset := memorymap.MapAddress(address)

	switch area {
	case memorymap.CartROM:
		return bus.Cart.Read(offset)
	case memorymap.VRAM:
		return bus.PPU.ReadVRAM(offset)
	case memorymap.CartRAM:
		return bus.Cart.ReadRAM(offset)
	case memorymap.WRAM:
		return bus.WRAM[offset]
	case memorymap.OAM:
		return bus.PPU.ReadOAM(offset)
	case memorymap.Unusable:
		return memorymap.OpenBus
	case memorymap.IO:
		return bus.readIO(offset)
	case memorymap.HRAM:
		return bus.HRAM[offset]
	case memorymap.IE:
		return bus.IRQ.ReadRegister(true)
	}

	return memorymap.OpenBus
}

// Write a byte to the address. Never fails: writes to addresses with no
// owner or to read only areas are no-ops.
func (bus *Bus) Write(address uint16, data uint8) {
	area, offset := memorymap.MapAddress(address)

	switch area {
	case memorymap.CartROM:
		bus.Cart.Write(offset, data)
	case memorymap.VRAM:
		bus.PPU.WriteVRAM(offset, data)
	case memorymap.CartRAM:
		bus.Cart.WriteRAM(offset, data)
	case memorymap.WRAM:
		bus.WRAM[offset] = data
	case memorymap.OAM:
		bus.PPU.WriteOAM(offset, data)
	case memorymap.Unusable:
		// no-op
	case memorymap.IO:
		bus.writeIO(offset, data)
	case memorymap.HRAM:
		bus.HRAM[offset] = data
	case memorymap.IE:
		bus.IRQ.WriteRegister(true, data)
	}
}

func (bus *Bus) readIO(address uint16) uint8 {
	switch {
	case address == addresses.JOYP:
		return bus.Joypad.ReadRegister()
	case address >= addresses.SB && address <= addresses.SC:
		return bus.Serial.ReadRegister(address - addresses.SB)
	case address >= addresses.DIV && address <= addresses.TAC:
		return bus.Timer.ReadRegister(address - addresses.DIV)
	case address == addresses.IF:
		return bus.IRQ.ReadRegister(false)
	case address >= addresses.NR10 && address <= addresses.WaveRAMEnd:
		return bus.APU.ReadRegister(address)
	case address == addresses.DMA:
		return bus.dmaLast
	case address >= addresses.LCDC && address <= addresses.WX:
		return bus.PPU.ReadRegister(address)
	}

	return memorymap.OpenBus
}

func (bus *Bus) writeIO(address uint16, data uint8) {
	switch {
	case address == addresses.JOYP:
		bus.Joypad.WriteRegister(data)
	case address >= addresses.SB && address <= addresses.SC:
		bus.Serial.WriteRegister(address-addresses.SB, data)
	case address >= addresses.DIV && address <= addresses.TAC:
		bus.Timer.WriteRegister(address-addresses.DIV, data)
	case address == addresses.IF:
		bus.IRQ.WriteRegister(false, data)
	case address >= addresses.NR10 && address <= addresses.WaveRAMEnd:
		bus.APU.WriteRegister(address, data)
	case address == addresses.DMA:
		bus.dmaLast = data
		bus.dmaTransfer(data)
	case address >= addresses.LCDC && address <= addresses.WX:
		bus.PPU.WriteRegister(address, data)
	}
}

// dmaTransfer copies 160 bytes from the source page to OAM. The copy is
// performed immediately; the bus restrictions the real machine imposes
// during the transfer are not modeled. The cycle cost is accounted for by
// the CPU's DMA register write.
func (bus *Bus) dmaTransfer(page uint8) {
	src := uint16(page) << 8
	for i := uint16(0); i < 0xa0; i++ {
		bus.PPU.WriteOAM(i, bus.Read(src+i))
	}
}
