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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gopherboy/cartridgeloader"
	"github.com/jetsetilly/gopherboy/hardware/apu"
	"github.com/jetsetilly/gopherboy/hardware/interrupts"
	"github.com/jetsetilly/gopherboy/hardware/joypad"
	"github.com/jetsetilly/gopherboy/hardware/memory"
	"github.com/jetsetilly/gopherboy/hardware/memory/cartridge"
	"github.com/jetsetilly/gopherboy/hardware/ppu"
	"github.com/jetsetilly/gopherboy/hardware/serial"
	"github.com/jetsetilly/gopherboy/hardware/timer"
	"github.com/jetsetilly/gopherboy/test"
)

func buildROM() []byte {
	data := make([]byte, 0x8000)

	copy(data[0x0134:], "BUS")
	var sum uint8
	for _, b := range data[0x0134:0x014d] {
		sum = sum - b - 1
	}
	data[0x014d] = sum

	return data
}

func newBus(t *testing.T) *memory.Bus {
	t.Helper()

	cart := cartridge.NewCartridge()
	err := cart.Attach(cartridgeloader.NewLoader("BUS", buildROM()))
	test.ExpectedSuccess(t, err)

	irq := interrupts.NewInterrupts()
	return memory.NewBus(cart, ppu.NewPPU(irq), apu.NewAPU(),
		timer.NewTimer(irq), serial.NewSerial(irq), joypad.NewJoypad(irq), irq)
}

func TestWorkRAM(t *testing.T) {
	bus := newBus(t)

	bus.Write(0xc000, 0x12)
	bus.Write(0xdfff, 0x34)
	test.ExpectEquality(t, bus.Read(0xc000), 0x12)
	test.ExpectEquality(t, bus.Read(0xdfff), 0x34)

	// echo RAM mirrors the first part of work RAM in both directions
	test.ExpectEquality(t, bus.Read(0xe000), 0x12)
	bus.Write(0xe001, 0x56)
	test.ExpectEquality(t, bus.Read(0xc001), 0x56)
}

func TestHighRAM(t *testing.T) {
	bus := newBus(t)

	bus.Write(0xff80, 0xab)
	bus.Write(0xfffe, 0xcd)
	test.ExpectEquality(t, bus.Read(0xff80), 0xab)
	test.ExpectEquality(t, bus.Read(0xfffe), 0xcd)
}

func TestOpenBus(t *testing.T) {
	bus := newBus(t)

	// the unusable area reads the open bus value and swallows writes
	bus.Write(0xfea0, 0x99)
	test.ExpectEquality(t, bus.Read(0xfea0), 0xff)
	test.ExpectEquality(t, bus.Read(0xfeff), 0xff)

	// unmapped IO addresses are the same
	test.ExpectEquality(t, bus.Read(0xff03), 0xff)
}

func TestROMIsReadOnly(t *testing.T) {
	bus := newBus(t)

	before := bus.Read(0x0134)
	bus.Write(0x0134, before+1)
	test.ExpectEquality(t, bus.Read(0x0134), before)
}

func TestVideoDispatch(t *testing.T) {
	bus := newBus(t)

	bus.Write(0x8000, 0x11)
	test.ExpectEquality(t, bus.PPU.ReadVRAM(0x0000), 0x11)

	bus.Write(0xfe00, 0x22)
	test.ExpectEquality(t, bus.PPU.ReadOAM(0x0000), 0x22)
}

func TestTimerDispatch(t *testing.T) {
	bus := newBus(t)

	bus.Write(0xff05, 0x42)
	test.ExpectEquality(t, bus.Read(0xff05), 0x42)

	// unused TAC bits read as set
	bus.Write(0xff07, 0x05)
	test.ExpectEquality(t, bus.Read(0xff07), 0xfd)
}

func TestInterruptRegisters(t *testing.T) {
	bus := newBus(t)

	bus.Write(0xffff, 0x1f)
	test.ExpectEquality(t, bus.Read(0xffff), 0x1f)

	// unused IF bits read as set
	bus.Write(0xff0f, 0x01)
	test.ExpectEquality(t, bus.Read(0xff0f), 0xe1)
}

func TestDMA(t *testing.T) {
	bus := newBus(t)

	for i := uint16(0); i < 0xa0; i++ {
		bus.Write(0xc000+i, uint8(i))
	}

	bus.Write(0xff46, 0xc0)
	for i := uint16(0); i < 0xa0; i++ {
		test.ExpectEquality(t, bus.PPU.ReadOAM(i), uint8(i))
	}

	// reads of the DMA register see the last value written
	test.ExpectEquality(t, bus.Read(0xff46), 0xc0)
}
