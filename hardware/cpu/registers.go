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

package cpu

import "fmt"

// Status is the flags register. The four flags occupy the upper nibble of
// the F register; the lower nibble always reads zero.
type Status struct {
	Zero      bool
	Negative  bool
	HalfCarry bool
	Carry     bool
}

// Value packs the flags into the F register byte format.
func (st Status) Value() uint8 {
	var v uint8
	if st.Zero {
		v |= 0x80
	}
	if st.Negative {
		v |= 0x40
	}
	if st.HalfCarry {
		v |= 0x20
	}
	if st.Carry {
		v |= 0x10
	}
	return v
}

// SetValue unpacks an F register byte into the flags. The lower nibble of
// the argument is discarded.
func (st *Status) SetValue(v uint8) {
	st.Zero = v&0x80 == 0x80
	st.Negative = v&0x40 == 0x40
	st.HalfCarry = v&0x20 == 0x20
	st.Carry = v&0x10 == 0x10
}

// String returns the flags as a labelled bit pattern. An upper case letter
// means the flag is set.
func (st Status) String() string {
	var v string
	if st.Zero {
		v += "Z"
	} else {
		v += "z"
	}
	if st.Negative {
		v += "N"
	} else {
		v += "n"
	}
	if st.HalfCarry {
		v += "H"
	} else {
		v += "h"
	}
	if st.Carry {
		v += "C"
	} else {
		v += "c"
	}
	return v
}

// Registers is the register file. The eight bit registers pair up into the
// 16 bit combinations AF, BC, DE and HL.
type Registers struct {
	A      uint8
	Status Status
	B      uint8
	C      uint8
	D      uint8
	E      uint8
	H      uint8
	L      uint8
	SP     uint16
	PC     uint16
}

func (r Registers) String() string {
	return fmt.Sprintf("AF=%02x%02x BC=%02x%02x DE=%02x%02x HL=%02x%02x SP=%04x PC=%04x %s",
		r.A, r.Status.Value(), r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC, r.Status)
}

// AF returns the accumulator and flags as one 16 bit value.
func (r Registers) AF() uint16 {
	return uint16(r.A)<<8 | uint16(r.Status.Value())
}

// SetAF splits a 16 bit value into the accumulator and the flags.
func (r *Registers) SetAF(v uint16) {
	r.A = uint8(v >> 8)
	r.Status.SetValue(uint8(v))
}

// BC returns the B and C registers as one 16 bit value.
func (r Registers) BC() uint16 {
	return uint16(r.B)<<8 | uint16(r.C)
}

// SetBC splits a 16 bit value into the B and C registers.
func (r *Registers) SetBC(v uint16) {
	r.B = uint8(v >> 8)
	r.C = uint8(v)
}

// DE returns the D and E registers as one 16 bit value.
func (r Registers) DE() uint16 {
	return uint16(r.D)<<8 | uint16(r.E)
}

// SetDE splits a 16 bit value into the D and E registers.
func (r *Registers) SetDE(v uint16) {
	r.D = uint8(v >> 8)
	r.E = uint8(v)
}

// HL returns the H and L registers as one 16 bit value.
func (r Registers) HL() uint16 {
	return uint16(r.H)<<8 | uint16(r.L)
}

// SetHL splits a 16 bit value into the H and L registers.
func (r *Registers) SetHL(v uint16) {
	r.H = uint8(v >> 8)
	r.L = uint8(v)
}
