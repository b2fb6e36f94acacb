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

// Package serial implements the link port. No remote machine is attached so
// a transfer clocked internally shifts in the disconnected-line value of
// 0xff and raises the serial interrupt when the last bit has shifted out. A
// transfer waiting on an external clock never completes, which is the
// behavior of real hardware with nothing plugged in.
//
// Outgoing bytes can be captured with the Attach() function. Many test ROMs
// report their results over the link port so this is the easiest way of
// seeing their output.
package serial

import (
	"fmt"
	"io"

	"github.com/jetsetilly/gopherboy/hardware/interrupts"
)

// the internal clock shifts one bit every 512 clocks (8192Hz).
const clocksPerBit = 512

// Serial implements the link port registers and transfer engine.
type Serial struct {
	irq *interrupts.Interrupts

	// transfer data and control registers
	SB uint8
	SC uint8

	// countdown to the end of an inflight transfer. zero when no transfer is
	// in progress
	remaining int

	// where outgoing bytes are sent. may be nil
	forward io.Writer
}

// NewSerial is the preferred method of initialisation for the Serial type.
func NewSerial(irq *interrupts.Interrupts) *Serial {
	return &Serial{irq: irq}
}

// Snapshot creates a copy of the serial port in its current state.
func (ser *Serial) Snapshot() *Serial {
	n := *ser
	return &n
}

// Plumb the supplied interrupt controller into the serial port.
func (ser *Serial) Plumb(irq *interrupts.Interrupts) {
	ser.irq = irq
}

func (ser *Serial) String() string {
	return fmt.Sprintf("SB=%#02x SC=%#02x remaining=%d", ser.SB, ser.SC, ser.remaining)
}

// Attach a writer to receive every byte sent out of the link port. A nil
// writer detaches.
func (ser *Serial) Attach(w io.Writer) {
	ser.forward = w
}

// Step the serial port forward by the number of clocks consumed by the
// previous CPU instruction.
func (ser *Serial) Step(clocks int) {
	if ser.remaining == 0 {
		return
	}

	ser.remaining -= clocks
	if ser.remaining > 0 {
		return
	}
	ser.remaining = 0

	if ser.forward != nil {
		ser.forward.Write([]byte{ser.SB})
	}

	// with no remote machine the incoming line is held high
	ser.SB = 0xff
	ser.SC &= 0x7f
	ser.irq.Raise(interrupts.Serial)
}

// ReadRegister reads the SB (reg 0) or SC (reg 1) register.
func (ser *Serial) ReadRegister(reg uint16) uint8 {
	if reg == 0 {
		return ser.SB
	}
	// unused SC bits read as set
	return ser.SC | 0x7e
}

// WriteRegister writes the SB (reg 0) or SC (reg 1) register. Writing the
// start bit together with the internal clock bit begins a transfer.
func (ser *Serial) WriteRegister(reg uint16, data uint8) {
	if reg == 0 {
		ser.SB = data
		return
	}

	ser.SC = data & 0x81
	if ser.SC == 0x81 {
		ser.remaining = clocksPerBit * 8
	} else {
		// a transfer on an external clock never completes
		ser.remaining = 0
	}
}
