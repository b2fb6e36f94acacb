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

package hardware

import (
	"strings"

	"github.com/jetsetilly/gopherboy/hardware/memory/addresses"
)

// Revision is the model of console being emulated. The boot ROM is not
// emulated; the revision decides the register state the boot ROM would have
// left behind, which is how games that sniff the model tell them apart.
type Revision int

// The supported console revisions.
const (
	RevDMG Revision = iota
	RevMGB
)

func (rev Revision) String() string {
	switch rev {
	case RevMGB:
		return "MGB"
	}
	return "DMG"
}

// ParseRevision converts a revision name to a Revision. Unrecognised names
// parse as RevDMG.
func ParseRevision(s string) Revision {
	if strings.ToUpper(strings.TrimSpace(s)) == "MGB" {
		return RevMGB
	}
	return RevDMG
}

// applyRevision sets the register state the boot ROM leaves behind.
func (gb *GameBoy) applyRevision() {
	r := &gb.CPU.Regs

	switch gb.Revision {
	case RevMGB:
		r.A = 0xff
	default:
		r.A = 0x01
	}

	r.Status.Zero = true
	r.SetBC(0x0013)
	r.SetDE(0x00d8)
	r.SetHL(0x014d)
	r.SP = 0xfffe
	r.PC = 0x0100

	// the boot ROM computes the header checksum on its way through; the
	// carry and half carry flags are left set unless it came to zero
	if gb.Cart.Header.Checksum != 0 {
		r.Status.HalfCarry = true
		r.Status.Carry = true
	}

	// the divider has been running since power on
	gb.Timer.Divider = 0xabcc

	// one vblank has been requested by the time control is handed over
	gb.IRQ.Request = 0x01

	gb.PPU.WriteRegister(addresses.LCDC, 0x91)
	gb.PPU.WriteRegister(addresses.BGP, 0xfc)
	gb.PPU.WriteRegister(addresses.OBP0, 0xff)
	gb.PPU.WriteRegister(addresses.OBP1, 0xff)

	// the boot ROM powers the sound unit up and plays its chime on the
	// first pulse channel. these are the register values it leaves behind,
	// without the chime still sounding
	gb.APU.WriteRegister(addresses.NR52, 0x80)
	gb.APU.WriteRegister(addresses.NR10, 0x00)
	gb.APU.WriteRegister(addresses.NR11, 0x80)
	gb.APU.WriteRegister(addresses.NR12, 0xf3)
	gb.APU.WriteRegister(addresses.NR50, 0x77)
	gb.APU.WriteRegister(addresses.NR51, 0xf3)
}
