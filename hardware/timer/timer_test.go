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

package timer_test

import (
	"testing"

	"github.com/jetsetilly/gopherboy/hardware/interrupts"
	"github.com/jetsetilly/gopherboy/hardware/timer"
	"github.com/jetsetilly/gopherboy/test"
)

func TestDivider(t *testing.T) {
	irq := interrupts.NewInterrupts()
	tmr := timer.NewTimer(irq)

	// the divider register is the top byte of the counter
	tmr.Step(255)
	test.ExpectEquality(t, tmr.ReadRegister(0), 0x00)
	tmr.Step(1)
	test.ExpectEquality(t, tmr.ReadRegister(0), 0x01)

	// the divider runs whether or not the configurable timer is enabled
	test.ExpectEquality(t, tmr.TAC&0x04, uint8(0))

	// any write resets the counter
	tmr.WriteRegister(0, 0xde)
	test.ExpectEquality(t, tmr.ReadRegister(0), 0x00)
}

func TestOverflowReloadsModulo(t *testing.T) {
	irq := interrupts.NewInterrupts()
	tmr := timer.NewTimer(irq)

	tmr.WriteRegister(2, 0xf0) // TMA
	tmr.WriteRegister(3, 0x05) // enable, 16 clocks per increment
	tmr.WriteRegister(1, 0xff) // TIMA at maximum

	// one increment, one overflow
	overflows := tmr.Step(16)
	test.ExpectEquality(t, overflows, 1)
	test.ExpectEquality(t, tmr.TIMA, uint8(0xf0))
	test.ExpectEquality(t, irq.Request&interrupts.Timer.Mask(), interrupts.Timer.Mask())
}

func TestMultipleOverflowsInOneStep(t *testing.T) {
	irq := interrupts.NewInterrupts()
	tmr := timer.NewTimer(irq)

	tmr.WriteRegister(2, 0xfe) // TMA: wraps every 2 increments after first overflow
	tmr.WriteRegister(3, 0x05) // enable, 16 clocks per increment
	tmr.WriteRegister(1, 0xff)

	// 5 increments: overflow at the first, then at every second increment.
	// that's 3 overflows with one increment left over
	overflows := tmr.Step(16 * 5)
	test.ExpectEquality(t, overflows, 3)
	test.ExpectEquality(t, tmr.TIMA, uint8(0xfe))
}

func TestDisabledTimer(t *testing.T) {
	irq := interrupts.NewInterrupts()
	tmr := timer.NewTimer(irq)

	tmr.WriteRegister(1, 0xff)
	overflows := tmr.Step(100000)
	test.ExpectEquality(t, overflows, 0)
	test.ExpectEquality(t, tmr.TIMA, uint8(0xff))
	test.ExpectEquality(t, irq.Request, uint8(0))
}

func TestResidualClocks(t *testing.T) {
	irq := interrupts.NewInterrupts()
	tmr := timer.NewTimer(irq)

	tmr.WriteRegister(3, 0x06) // enable, 64 clocks per increment

	// increments do not happen until a full interval has elapsed, including
	// across Step() boundaries
	tmr.Step(63)
	test.ExpectEquality(t, tmr.TIMA, uint8(0))
	tmr.Step(1)
	test.ExpectEquality(t, tmr.TIMA, uint8(1))
	tmr.Step(129)
	test.ExpectEquality(t, tmr.TIMA, uint8(3))
}
