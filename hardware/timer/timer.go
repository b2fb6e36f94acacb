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

// Package timer implements the divider and the configurable timer.
//
// The divider is the top byte of a free running 16 bit counter that
// increments every clock and cannot be stopped. Writing any value to the
// DIV register resets the whole counter to zero.
//
// The configurable timer increments at one of four rates derived from the
// divider. On overflow it reloads from the modulo register and raises a
// timer interrupt. One interrupt request is raised per overflow event, even
// when a single Step() spans more than one overflow.
package timer

import (
	"fmt"

	"github.com/jetsetilly/gopherboy/hardware/interrupts"
)

// Interval indicates how often (in clocks) the timer counter increments.
// Which of the four intervals is in effect is selected by the low two bits
// of the TAC register.
type Interval int

// The four selectable Interval values.
const (
	TAC1024 Interval = 1024
	TAC16   Interval = 16
	TAC64   Interval = 64
	TAC256  Interval = 256
)

func (in Interval) String() string {
	switch in {
	case TAC1024:
		return "4096Hz"
	case TAC16:
		return "262144Hz"
	case TAC64:
		return "65536Hz"
	case TAC256:
		return "16384Hz"
	}
	panic("unknown timer interval")
}

// interval select values as they appear in the TAC register.
var intervals = [4]Interval{TAC1024, TAC16, TAC64, TAC256}

// Timer implements the divider and the configurable timer.
type Timer struct {
	irq *interrupts.Interrupts

	// the free running counter. the DIV register is the top byte
	Divider uint16

	// the configurable timer registers
	TIMA uint8
	TMA  uint8
	TAC  uint8

	// residual clocks not yet accounted to a TIMA increment
	residual int
}

// NewTimer is the preferred method of initialisation for the Timer type.
func NewTimer(irq *interrupts.Interrupts) *Timer {
	return &Timer{irq: irq}
}

// Snapshot creates a copy of the timer in its current state.
func (tmr *Timer) Snapshot() *Timer {
	n := *tmr
	return &n
}

// Plumb the supplied interrupt controller into the timer.
func (tmr *Timer) Plumb(irq *interrupts.Interrupts) {
	tmr.irq = irq
}

func (tmr *Timer) String() string {
	return fmt.Sprintf("DIV=%#02x TIMA=%#02x TMA=%#02x intv=%s enabled=%v",
		uint8(tmr.Divider>>8), tmr.TIMA, tmr.TMA, tmr.interval(), tmr.enabled(),
	)
}

func (tmr *Timer) enabled() bool {
	return tmr.TAC&0x04 == 0x04
}

func (tmr *Timer) interval() Interval {
	return intervals[tmr.TAC&0x03]
}

// Step the timer forward by the number of clocks consumed by the previous
// CPU instruction. Returns the number of overflow events that occurred, each
// of which has raised a timer interrupt request.
func (tmr *Timer) Step(clocks int) int {
	tmr.Divider += uint16(clocks)

	if !tmr.enabled() {
		tmr.residual = 0
		return 0
	}

	period := int(tmr.interval())
	tmr.residual += clocks

	increments := tmr.residual / period
	tmr.residual %= period
	if increments == 0 {
		return 0
	}

	// number of increments before the first overflow
	space := 0x100 - int(tmr.TIMA)

	if increments < space {
		tmr.TIMA += uint8(increments)
		return 0
	}

	// every overflow reloads from the modulo register, so after the first
	// overflow the counter wraps every 0x100-TMA increments
	wrap := 0x100 - int(tmr.TMA)
	overflows := 1 + (increments-space)/wrap
	tmr.TIMA = tmr.TMA + uint8((increments-space)%wrap)

	// one interrupt request per overflow event. the request register only
	// has one bit per source but counting the events exactly matters to
	// software that clears the request between overflows
	for i := 0; i < overflows; i++ {
		tmr.irq.Raise(interrupts.Timer)
	}

	return overflows
}

// ReadRegister reads one of the timer registers. The address argument is the
// register offset relative to DIV: 0 for DIV, 1 for TIMA, 2 for TMA and 3
// for TAC.
func (tmr *Timer) ReadRegister(reg uint16) uint8 {
	switch reg {
	case 0:
		return uint8(tmr.Divider >> 8)
	case 1:
		return tmr.TIMA
	case 2:
		return tmr.TMA
	case 3:
		// unused TAC bits read as set
		return tmr.TAC | 0xf8
	}
	panic("timer: register out of range")
}

// WriteRegister writes one of the timer registers. Register offsets as for
// ReadRegister().
func (tmr *Timer) WriteRegister(reg uint16, data uint8) {
	switch reg {
	case 0:
		// any write resets the whole counter
		tmr.Divider = 0
	case 1:
		tmr.TIMA = data
	case 2:
		tmr.TMA = data
	case 3:
		tmr.TAC = data & 0x07
	}
}
