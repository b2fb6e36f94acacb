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

package joypad_test

import (
	"testing"

	"github.com/jetsetilly/gopherboy/hardware/interrupts"
	"github.com/jetsetilly/gopherboy/hardware/joypad"
	"github.com/jetsetilly/gopherboy/test"
)

func TestPressEdgeInterrupt(t *testing.T) {
	irq := interrupts.NewInterrupts()
	pad := joypad.NewJoypad(irq)

	// press edge raises the interrupt request
	pad.Latch(joypad.A)
	test.ExpectEquality(t, irq.Request&interrupts.Joypad.Mask(), interrupts.Joypad.Mask())

	// holding the same button is not an edge
	irq.Request = 0
	pad.Latch(joypad.A)
	test.ExpectEquality(t, irq.Request, uint8(0))

	// releasing is not an edge either
	pad.Latch(0)
	test.ExpectEquality(t, irq.Request, uint8(0))

	// a different button is a new edge
	pad.Latch(joypad.Start)
	test.ExpectEquality(t, irq.Request&interrupts.Joypad.Mask(), interrupts.Joypad.Mask())
}

func TestMatrixSelect(t *testing.T) {
	irq := interrupts.NewInterrupts()
	pad := joypad.NewJoypad(irq)

	pad.Latch(joypad.A | joypad.Down)

	// neither group selected: all lines high
	pad.WriteRegister(0x30)
	test.ExpectEquality(t, pad.ReadRegister(), 0xff)

	// buttons group: A reads low in bit 0
	pad.WriteRegister(0x10)
	test.ExpectEquality(t, pad.ReadRegister(), 0xde)

	// directions group: Down reads low in bit 3
	pad.WriteRegister(0x20)
	test.ExpectEquality(t, pad.ReadRegister(), 0xe7)
}
