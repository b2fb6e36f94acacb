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

// Package joypad implements the button matrix. The collaborating front end
// reports the currently pressed buttons as a bitmask before each frame. The
// engine latches the mask and raises the joypad interrupt on a press edge,
// meaning a button that is down now but was not down at the previous latch.
//
// The JOYP register exposes the matrix to software: the high nibble selects
// the direction or button group and the low nibble reads the selected lines,
// active low.
package joypad

import (
	"fmt"

	"github.com/jetsetilly/gopherboy/hardware/interrupts"
)

// State is a bitmask of currently pressed buttons.
type State uint8

// The individual buttons in the State bitmask.
const (
	A State = 1 << iota
	B
	Select
	Start
	Right
	Left
	Up
	Down
)

func (s State) String() string {
	if s == 0 {
		return "none"
	}
	r := ""
	for i, l := range []string{"A", "B", "SELECT", "START", "RIGHT", "LEFT", "UP", "DOWN"} {
		if s&(1<<i) != 0 {
			if r != "" {
				r += " "
			}
			r += l
		}
	}
	return r
}

// Joypad implements the button matrix and the JOYP register.
type Joypad struct {
	irq *interrupts.Interrupts

	// the most recently latched button state
	Buttons State

	// matrix group select lines, active low in the JOYP register
	SelectDirections bool
	SelectButtons    bool
}

// NewJoypad is the preferred method of initialisation for the Joypad type.
func NewJoypad(irq *interrupts.Interrupts) *Joypad {
	return &Joypad{irq: irq}
}

// Snapshot creates a copy of the joypad in its current state.
func (pad *Joypad) Snapshot() *Joypad {
	n := *pad
	return &n
}

// Plumb the supplied interrupt controller into the joypad.
func (pad *Joypad) Plumb(irq *interrupts.Interrupts) {
	pad.irq = irq
}

func (pad *Joypad) String() string {
	return fmt.Sprintf("JOYP=%#02x pressed: %s", pad.ReadRegister(), pad.Buttons)
}

// Latch the current button state. Any button that is pressed now but was not
// pressed at the previous latch raises the joypad interrupt.
func (pad *Joypad) Latch(buttons State) {
	if buttons&^pad.Buttons != 0 {
		pad.irq.Raise(interrupts.Joypad)
	}
	pad.Buttons = buttons
}

// Pressed returns true if any button is currently pressed. Used by the CPU
// to decide when to leave the stopped state.
func (pad *Joypad) Pressed() bool {
	return pad.Buttons != 0
}

// ReadRegister reads the JOYP register. Selected lines read low for a
// pressed button. With neither group selected every line reads high.
func (pad *Joypad) ReadRegister() uint8 {
	// unused bits 6 and 7 read as set
	v := uint8(0xff)

	if pad.SelectDirections {
		v &^= uint8(0x10)
		v &^= uint8(pad.Buttons>>4) & 0x0f
	}
	if pad.SelectButtons {
		v &^= uint8(0x20)
		v &^= uint8(pad.Buttons) & 0x0f
	}

	return v
}

// WriteRegister writes the JOYP register. Only the group select bits are
// writable.
func (pad *Joypad) WriteRegister(data uint8) {
	pad.SelectDirections = data&0x10 == 0x00
	pad.SelectButtons = data&0x20 == 0x00
}
