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

package interrupts_test

import (
	"testing"

	"github.com/jetsetilly/gopherboy/hardware/interrupts"
	"github.com/jetsetilly/gopherboy/test"
)

func TestVectors(t *testing.T) {
	test.ExpectEquality(t, interrupts.VBlank.Vector(), 0x0040)
	test.ExpectEquality(t, interrupts.Stat.Vector(), 0x0048)
	test.ExpectEquality(t, interrupts.Timer.Vector(), 0x0050)
	test.ExpectEquality(t, interrupts.Serial.Vector(), 0x0058)
	test.ExpectEquality(t, interrupts.Joypad.Vector(), 0x0060)
}

func TestPendingWhileDisabled(t *testing.T) {
	irq := interrupts.NewInterrupts()

	// a source can be pending even when it is disabled
	irq.Raise(interrupts.Timer)
	test.ExpectedFailure(t, irq.Pending())
	test.ExpectEquality(t, irq.ReadRegister(false)&interrupts.Timer.Mask(), interrupts.Timer.Mask())

	// dispatch only occurs once the source is enabled
	irq.WriteRegister(true, interrupts.Timer.Mask())
	test.ExpectedSuccess(t, irq.Pending())
}

func TestPriority(t *testing.T) {
	irq := interrupts.NewInterrupts()
	irq.WriteRegister(true, 0x1f)

	irq.Raise(interrupts.Joypad)
	irq.Raise(interrupts.Timer)
	irq.Raise(interrupts.Stat)

	// highest priority source wins
	src, ok := irq.Next()
	test.ExpectedSuccess(t, ok)
	test.ExpectEquality(t, src, interrupts.Stat)

	// acknowledging clears only the serviced source
	irq.Acknowledge(src)
	test.ExpectEquality(t, irq.Request, interrupts.Timer.Mask()|interrupts.Joypad.Mask())

	src, ok = irq.Next()
	test.ExpectedSuccess(t, ok)
	test.ExpectEquality(t, src, interrupts.Timer)
}

func TestUnusedRequestBits(t *testing.T) {
	irq := interrupts.NewInterrupts()

	// the unused bits of the request register always read as set
	test.ExpectEquality(t, irq.ReadRegister(false), 0xe0)

	// and cannot be written
	irq.WriteRegister(false, 0xff)
	test.ExpectEquality(t, irq.Request, uint8(0x1f))
}
