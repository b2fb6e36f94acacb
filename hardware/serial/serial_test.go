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

package serial_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/gopherboy/hardware/interrupts"
	"github.com/jetsetilly/gopherboy/hardware/serial"
	"github.com/jetsetilly/gopherboy/test"
)

func TestInternalClockTransfer(t *testing.T) {
	irq := interrupts.NewInterrupts()
	ser := serial.NewSerial(irq)

	var out bytes.Buffer
	ser.Attach(&out)

	ser.WriteRegister(0, 'A')
	ser.WriteRegister(1, 0x81)

	// eight bits at 512 clocks per bit
	ser.Step(512 * 8)

	test.ExpectEquality(t, out.String(), "A")
	test.ExpectEquality(t, irq.Request&interrupts.Serial.Mask(), interrupts.Serial.Mask())

	// the disconnected line has shifted in all ones and the transfer has
	// ended
	test.ExpectEquality(t, ser.ReadRegister(0), uint8(0xff))
	test.ExpectEquality(t, ser.ReadRegister(1)&0x80, uint8(0x00))
}

func TestExternalClockNeverCompletes(t *testing.T) {
	irq := interrupts.NewInterrupts()
	ser := serial.NewSerial(irq)

	ser.WriteRegister(0, 'A')
	ser.WriteRegister(1, 0x80)

	ser.Step(512 * 8 * 10)

	// nothing plugged in means no external clock and no completion
	test.ExpectEquality(t, ser.ReadRegister(0), uint8('A'))
	test.ExpectEquality(t, irq.Request&interrupts.Serial.Mask(), uint8(0))
}
