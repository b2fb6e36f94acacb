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

// Package interrupts implements the interrupt controller. The controller
// merges requests from the five interrupt sources and decides which source,
// if any, should be dispatched next.
//
// Peripherals are given a reference to the Interrupts type but only ever
// call the Raise() function with their own source. The CPU is the only
// component that calls Next() and Acknowledge().
//
// A source may be pending even when it is disabled. The pending bit survives
// until software clears it or until the source is dispatched, which is a
// behavior software relies on when polling the request register with
// interrupts turned off.
package interrupts

import (
	"fmt"
	"strings"
)

// Source is one of the five hardware events that can request the attention
// of the CPU.
type Source int

// The five interrupt sources in priority order, highest first.
const (
	VBlank Source = iota
	Stat
	Timer
	Serial
	Joypad
	NumSources
)

func (s Source) String() string {
	switch s {
	case VBlank:
		return "VBLANK"
	case Stat:
		return "STAT"
	case Timer:
		return "TIMER"
	case Serial:
		return "SERIAL"
	case Joypad:
		return "JOYPAD"
	}
	return "unknown"
}

// Mask returns the bit the source occupies in the enable and request
// registers.
func (s Source) Mask() uint8 {
	return 1 << uint(s)
}

// Vector returns the address the CPU jumps to when the source is
// dispatched.
func (s Source) Vector() uint16 {
	return 0x0040 + uint16(s)*0x0008
}

// only the low five bits of the enable and request registers exist in
// the hardware.
const sourceBits = 0x1f

// Interrupts is the interrupt controller. It owns the IE and IF registers.
type Interrupts struct {
	// enable mask. a disabled source can still be pending
	Enable uint8

	// pending request mask
	Request uint8
}

// NewInterrupts is the preferred method of initialisation for the Interrupts
// type.
func NewInterrupts() *Interrupts {
	return &Interrupts{}
}

// Snapshot creates a copy of the interrupt controller in its current state.
func (irq *Interrupts) Snapshot() *Interrupts {
	n := *irq
	return &n
}

func (irq *Interrupts) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("IE=%#02x IF=%#02x pending: [", irq.Enable, irq.Request))
	sep := ""
	for src := VBlank; src < NumSources; src++ {
		if irq.Request&src.Mask() == src.Mask() {
			s.WriteString(sep)
			s.WriteString(src.String())
			sep = " "
		}
	}
	s.WriteString("]")
	return s.String()
}

// Raise marks the source as pending. Whether the source is dispatched
// depends on the enable mask and the CPU's master enable flag.
func (irq *Interrupts) Raise(src Source) {
	irq.Request |= src.Mask()
}

// Pending returns true if any source is both pending and enabled.
func (irq *Interrupts) Pending() bool {
	return irq.Enable&irq.Request&sourceBits != 0
}

// Next returns the highest priority source that is both pending and enabled.
// The boolean return value is false if there is no such source.
func (irq *Interrupts) Next() (Source, bool) {
	v := irq.Enable & irq.Request & sourceBits
	for src := VBlank; src < NumSources; src++ {
		if v&src.Mask() == src.Mask() {
			return src, true
		}
	}
	return NumSources, false
}

// Acknowledge clears the request bit for the source being dispatched. No
// other request bit is affected.
func (irq *Interrupts) Acknowledge(src Source) {
	irq.Request &^= src.Mask()
}

// ReadRegister reads the IE or IF register. The unused upper bits of the
// request register always read as set.
func (irq *Interrupts) ReadRegister(enable bool) uint8 {
	if enable {
		return irq.Enable
	}
	return irq.Request | ^uint8(sourceBits)
}

// WriteRegister writes the IE or IF register. Software can raise and clear
// requests directly through the request register.
func (irq *Interrupts) WriteRegister(enable bool, data uint8) {
	if enable {
		irq.Enable = data
	} else {
		irq.Request = data & sourceBits
	}
}
