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

import (
	"fmt"

	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/hardware/interrupts"
)

// error patterns for CPU execution.
const (
	// the opcode is one of the eleven holes in the opcode space
	IllegalOpcode = "cpu: illegal opcode: %v"
)

// Memory is the bus as the CPU sees it. Every Read and Write costs four
// clocks.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// CPU implements the SM83 core. Register logic is implemented by the
// Registers type.
type CPU struct {
	Regs Registers

	mem Memory
	irq *interrupts.Interrupts

	// interrupt master enable. EI sets imePending rather than IME; the
	// master enable is raised one instruction later
	IME        bool
	imePending bool

	// a halted CPU consumes clocks without fetching. it wakes on any
	// pending interrupt, whether or not the master enable is set
	Halted bool

	// a stopped CPU consumes clocks until the machine wakes it on a button
	// press
	Stopped bool

	// HALT with the master enable clear and an interrupt already pending
	// fails to advance the program counter for the next fetch
	haltBug bool

	// clocks consumed by the instruction being executed
	cycles int
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem Memory, irq *interrupts.Interrupts) *CPU {
	return &CPU{
		mem: mem,
		irq: irq,
	}
}

// Snapshot creates a copy of the CPU in its current state.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	return &n
}

// Plumb a new memory bus and interrupt controller into the CPU.
func (mc *CPU) Plumb(mem Memory, irq *interrupts.Interrupts) {
	mc.mem = mem
	mc.irq = irq
}

func (mc *CPU) String() string {
	s := mc.Regs.String()
	if mc.IME {
		s += " IME"
	}
	if mc.Halted {
		s += " halted"
	}
	if mc.Stopped {
		s += " stopped"
	}
	return s
}

// memory access and internal delay primitives. all cycle counting happens
// here and in the few explicit internal() calls in the execution functions.

func (mc *CPU) read8(address uint16) uint8 {
	mc.cycles += 4
	return mc.mem.Read(address)
}

func (mc *CPU) write8(address uint16, data uint8) {
	mc.cycles += 4
	mc.mem.Write(address, data)
}

func (mc *CPU) internal() {
	mc.cycles += 4
}

func (mc *CPU) fetch() uint8 {
	v := mc.read8(mc.Regs.PC)
	if mc.haltBug {
		mc.haltBug = false
	} else {
		mc.Regs.PC++
	}
	return v
}

func (mc *CPU) fetch16() uint16 {
	lo := mc.fetch()
	hi := mc.fetch()
	return uint16(hi)<<8 | uint16(lo)
}

func (mc *CPU) push16(v uint16) {
	mc.Regs.SP--
	mc.write8(mc.Regs.SP, uint8(v>>8))
	mc.Regs.SP--
	mc.write8(mc.Regs.SP, uint8(v))
}

func (mc *CPU) pop16() uint16 {
	lo := mc.read8(mc.Regs.SP)
	mc.Regs.SP++
	hi := mc.read8(mc.Regs.SP)
	mc.Regs.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// ExecuteInstruction runs the CPU for one instruction, or for one interrupt
// dispatch or idle period, and returns the number of clocks consumed. The
// clock count is always a multiple of four.
func (mc *CPU) ExecuteInstruction() (int, error) {
	mc.cycles = 0

	// a pending interrupt always ends a halt. dispatch only happens with
	// the master enable set
	if src, ok := mc.irq.Next(); ok {
		mc.Halted = false
		if mc.IME {
			mc.dispatch(src)
			return mc.cycles, nil
		}
	}

	// the pending master enable from an EI is raised here, after the
	// interrupt check, so that the instruction following the EI always runs
	if mc.imePending {
		mc.IME = true
		mc.imePending = false
	}

	if mc.Halted || mc.Stopped {
		mc.internal()
		return mc.cycles, nil
	}

	opcode := mc.fetch()
	err := mc.execute(opcode)
	return mc.cycles, err
}

// dispatch an interrupt: two idle periods, the program counter is pushed
// and execution restarts at the interrupt vector. Twenty clocks in all.
func (mc *CPU) dispatch(src interrupts.Source) {
	mc.internal()
	mc.internal()
	mc.push16(mc.Regs.PC)
	mc.internal()
	mc.Regs.PC = src.Vector()
	mc.IME = false
	mc.imePending = false
	mc.Stopped = false
	mc.irq.Acknowledge(src)
}

// register access by opcode index. index six is the memory location
// addressed by HL.

func (mc *CPU) getReg(i uint8) uint8 {
	switch i {
	case 0:
		return mc.Regs.B
	case 1:
		return mc.Regs.C
	case 2:
		return mc.Regs.D
	case 3:
		return mc.Regs.E
	case 4:
		return mc.Regs.H
	case 5:
		return mc.Regs.L
	case 6:
		return mc.read8(mc.Regs.HL())
	}
	return mc.Regs.A
}

func (mc *CPU) setReg(i uint8, v uint8) {
	switch i {
	case 0:
		mc.Regs.B = v
	case 1:
		mc.Regs.C = v
	case 2:
		mc.Regs.D = v
	case 3:
		mc.Regs.E = v
	case 4:
		mc.Regs.H = v
	case 5:
		mc.Regs.L = v
	case 6:
		mc.write8(mc.Regs.HL(), v)
	default:
		mc.Regs.A = v
	}
}

// register pair access by opcode index: BC, DE, HL, SP.

func (mc *CPU) getPair(i uint8) uint16 {
	switch i {
	case 0:
		return mc.Regs.BC()
	case 1:
		return mc.Regs.DE()
	case 2:
		return mc.Regs.HL()
	}
	return mc.Regs.SP
}

func (mc *CPU) setPair(i uint8, v uint16) {
	switch i {
	case 0:
		mc.Regs.SetBC(v)
	case 1:
		mc.Regs.SetDE(v)
	case 2:
		mc.Regs.SetHL(v)
	default:
		mc.Regs.SP = v
	}
}

// condition by opcode index: NZ, Z, NC, C.
func (mc *CPU) condition(i uint8) bool {
	switch i {
	case 0:
		return !mc.Regs.Status.Zero
	case 1:
		return mc.Regs.Status.Zero
	case 2:
		return !mc.Regs.Status.Carry
	}
	return mc.Regs.Status.Carry
}

// execute decodes and runs one opcode. Decoding works on the octal digits
// of the opcode rather than a 256 entry table.
func (mc *CPU) execute(opcode uint8) error {
	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07
	p := y >> 1

	switch x {
	case 0:
		mc.executeQuarter0(y, z, p)
	case 1:
		if opcode == 0x76 {
			mc.halt()
		} else {
			mc.setReg(y, mc.getReg(z))
		}
	case 2:
		mc.alu(y, mc.getReg(z))
	default:
		return mc.executeQuarter3(opcode, y, z, p)
	}
	return nil
}

func (mc *CPU) executeQuarter0(y uint8, z uint8, p uint8) {
	r := &mc.Regs

	switch z {
	case 0:
		switch y {
		case 0: // NOP
		case 1: // LD (a16),SP
			addr := mc.fetch16()
			mc.write8(addr, uint8(r.SP))
			mc.write8(addr+1, uint8(r.SP>>8))
		case 2: // STOP
			// the byte after a STOP is skipped without a memory cycle
			mc.Stopped = true
			mc.Regs.PC++
		case 3: // JR r8
			mc.jumpRelative(true)
		default: // JR cc,r8
			mc.jumpRelative(mc.condition(y - 4))
		}
	case 1:
		if y&0x01 == 0x01 { // ADD HL,rp
			mc.addHL(mc.getPair(p))
		} else { // LD rp,d16
			mc.setPair(p, mc.fetch16())
		}
	case 2:
		addr := [4]func() uint16{
			r.BC,
			r.DE,
			func() uint16 { v := r.HL(); r.SetHL(v + 1); return v },
			func() uint16 { v := r.HL(); r.SetHL(v - 1); return v },
		}[p]()
		if y&0x01 == 0x01 { // LD A,(rp)
			r.A = mc.read8(addr)
		} else { // LD (rp),A
			mc.write8(addr, r.A)
		}
	case 3: // INC rp / DEC rp
		mc.internal()
		if y&0x01 == 0x01 {
			mc.setPair(p, mc.getPair(p)-1)
		} else {
			mc.setPair(p, mc.getPair(p)+1)
		}
	case 4: // INC r
		mc.setReg(y, mc.inc8(mc.getReg(y)))
	case 5: // DEC r
		mc.setReg(y, mc.dec8(mc.getReg(y)))
	case 6: // LD r,d8
		mc.setReg(y, mc.fetch())
	default:
		switch y {
		case 0: // RLCA
			r.A = mc.rlc(r.A)
			r.Status.Zero = false
		case 1: // RRCA
			r.A = mc.rrc(r.A)
			r.Status.Zero = false
		case 2: // RLA
			r.A = mc.rl(r.A)
			r.Status.Zero = false
		case 3: // RRA
			r.A = mc.rr(r.A)
			r.Status.Zero = false
		case 4:
			mc.daa()
		case 5: // CPL
			r.A = ^r.A
			r.Status.Negative = true
			r.Status.HalfCarry = true
		case 6: // SCF
			r.Status.Negative = false
			r.Status.HalfCarry = false
			r.Status.Carry = true
		default: // CCF
			r.Status.Negative = false
			r.Status.HalfCarry = false
			r.Status.Carry = !r.Status.Carry
		}
	}
}

func (mc *CPU) executeQuarter3(opcode uint8, y uint8, z uint8, p uint8) error {
	r := &mc.Regs

	switch z {
	case 0:
		switch y {
		case 4: // LDH (a8),A
			mc.write8(0xff00|uint16(mc.fetch()), r.A)
		case 5: // ADD SP,r8
			r.SP = mc.addSigned(r.SP)
			mc.internal()
			mc.internal()
		case 6: // LDH A,(a8)
			r.A = mc.read8(0xff00 | uint16(mc.fetch()))
		case 7: // LD HL,SP+r8
			r.SetHL(mc.addSigned(r.SP))
			mc.internal()
		default: // RET cc
			mc.internal()
			if mc.condition(y) {
				r.PC = mc.pop16()
				mc.internal()
			}
		}
	case 1:
		if y&0x01 == 0x01 {
			switch p {
			case 0: // RET
				r.PC = mc.pop16()
				mc.internal()
			case 1: // RETI
				r.PC = mc.pop16()
				mc.internal()
				mc.IME = true
			case 2: // JP HL
				r.PC = r.HL()
			default: // LD SP,HL
				r.SP = r.HL()
				mc.internal()
			}
		} else { // POP rp
			v := mc.pop16()
			switch p {
			case 0:
				r.SetBC(v)
			case 1:
				r.SetDE(v)
			case 2:
				r.SetHL(v)
			default:
				r.SetAF(v)
			}
		}
	case 2:
		switch y {
		case 4: // LD (C),A
			mc.write8(0xff00|uint16(r.C), r.A)
		case 5: // LD (a16),A
			mc.write8(mc.fetch16(), r.A)
		case 6: // LD A,(C)
			r.A = mc.read8(0xff00 | uint16(r.C))
		case 7: // LD A,(a16)
			r.A = mc.read8(mc.fetch16())
		default: // JP cc,a16
			addr := mc.fetch16()
			if mc.condition(y) {
				r.PC = addr
				mc.internal()
			}
		}
	case 3:
		switch y {
		case 0: // JP a16
			r.PC = mc.fetch16()
			mc.internal()
		case 1: // the prefixed page
			mc.executePrefixed(mc.fetch())
		case 6: // DI
			mc.IME = false
			mc.imePending = false
		case 7: // EI
			mc.imePending = true
		default:
			return mc.illegal(opcode)
		}
	case 4:
		if y >= 4 {
			return mc.illegal(opcode)
		}
		// CALL cc,a16
		addr := mc.fetch16()
		if mc.condition(y) {
			mc.internal()
			mc.push16(r.PC)
			r.PC = addr
		}
	case 5:
		if y&0x01 == 0x01 {
			if p != 0 {
				return mc.illegal(opcode)
			}
			// CALL a16
			addr := mc.fetch16()
			mc.internal()
			mc.push16(r.PC)
			r.PC = addr
		} else { // PUSH rp
			mc.internal()
			switch p {
			case 0:
				mc.push16(r.BC())
			case 1:
				mc.push16(r.DE())
			case 2:
				mc.push16(r.HL())
			default:
				mc.push16(r.AF())
			}
		}
	case 6: // ALU d8
		mc.alu(y, mc.fetch())
	default: // RST
		mc.internal()
		mc.push16(r.PC)
		r.PC = uint16(y) * 8
	}
	return nil
}

// executePrefixed runs one opcode from the prefixed page: the rotates and
// shifts, and the BIT, RES and SET families.
func (mc *CPU) executePrefixed(opcode uint8) {
	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07

	switch x {
	case 0:
		v := mc.getReg(z)
		switch y {
		case 0:
			v = mc.rlc(v)
		case 1:
			v = mc.rrc(v)
		case 2:
			v = mc.rl(v)
		case 3:
			v = mc.rr(v)
		case 4:
			v = mc.sla(v)
		case 5:
			v = mc.sra(v)
		case 6:
			v = mc.swap(v)
		default:
			v = mc.srl(v)
		}
		mc.setReg(z, v)
	case 1: // BIT b,r
		mc.Regs.Status.Zero = mc.getReg(z)&(1<<y) == 0
		mc.Regs.Status.Negative = false
		mc.Regs.Status.HalfCarry = true
	case 2: // RES b,r
		mc.setReg(z, mc.getReg(z)&^(1<<y))
	default: // SET b,r
		mc.setReg(z, mc.getReg(z)|1<<y)
	}
}

func (mc *CPU) illegal(opcode uint8) error {
	return curated.Errorf(IllegalOpcode, fmt.Sprintf("%#02x at %#04x", opcode, mc.Regs.PC-1))
}

// halt stops the CPU until an interrupt is pending. A halt entered with the
// master enable clear and an interrupt already pending triggers the fetch
// bug instead.
func (mc *CPU) halt() {
	if !mc.IME && mc.irq.Pending() {
		mc.haltBug = true
		return
	}
	mc.Halted = true
}

func (mc *CPU) jumpRelative(taken bool) {
	offset := int8(mc.fetch())
	if taken {
		mc.Regs.PC = uint16(int32(mc.Regs.PC) + int32(offset))
		mc.internal()
	}
}

// the eight accumulator operations, by opcode index: ADD, ADC, SUB, SBC,
// AND, XOR, OR, CP.
func (mc *CPU) alu(i uint8, v uint8) {
	r := &mc.Regs
	switch i {
	case 0:
		mc.add(v, false)
	case 1:
		mc.add(v, r.Status.Carry)
	case 2:
		r.A = mc.sub(v, false)
	case 3:
		r.A = mc.sub(v, r.Status.Carry)
	case 4:
		r.A &= v
		r.Status = Status{Zero: r.A == 0, HalfCarry: true}
	case 5:
		r.A ^= v
		r.Status = Status{Zero: r.A == 0}
	case 6:
		r.A |= v
		r.Status = Status{Zero: r.A == 0}
	default:
		mc.sub(v, false)
	}
}

func (mc *CPU) add(v uint8, carry bool) {
	r := &mc.Regs
	c := uint16(0)
	if carry {
		c = 1
	}
	sum := uint16(r.A) + uint16(v) + c
	r.Status.HalfCarry = uint16(r.A&0x0f)+uint16(v&0x0f)+c > 0x0f
	r.Status.Carry = sum > 0xff
	r.Status.Negative = false
	r.A = uint8(sum)
	r.Status.Zero = r.A == 0
}

// sub returns the difference rather than assigning it so that CP can share
// the implementation.
func (mc *CPU) sub(v uint8, carry bool) uint8 {
	r := &mc.Regs
	c := uint16(0)
	if carry {
		c = 1
	}
	diff := uint16(r.A) - uint16(v) - c
	r.Status.HalfCarry = uint16(r.A&0x0f) < uint16(v&0x0f)+c
	r.Status.Carry = diff > 0xff
	r.Status.Negative = true
	r.Status.Zero = uint8(diff) == 0
	return uint8(diff)
}

func (mc *CPU) inc8(v uint8) uint8 {
	r := &mc.Regs
	v++
	r.Status.Zero = v == 0
	r.Status.Negative = false
	r.Status.HalfCarry = v&0x0f == 0x00
	return v
}

func (mc *CPU) dec8(v uint8) uint8 {
	r := &mc.Regs
	v--
	r.Status.Zero = v == 0
	r.Status.Negative = true
	r.Status.HalfCarry = v&0x0f == 0x0f
	return v
}

func (mc *CPU) addHL(v uint16) {
	r := &mc.Regs
	hl := r.HL()
	sum := uint32(hl) + uint32(v)
	r.Status.HalfCarry = hl&0x0fff+v&0x0fff > 0x0fff
	r.Status.Carry = sum > 0xffff
	r.Status.Negative = false
	r.SetHL(uint16(sum))
	mc.internal()
}

// addSigned adds a fetched signed offset to a 16 bit value. The flags come
// from the unsigned arithmetic of the low byte.
func (mc *CPU) addSigned(v uint16) uint16 {
	r := &mc.Regs
	offset := int8(mc.fetch())
	r.Status.Zero = false
	r.Status.Negative = false
	r.Status.HalfCarry = v&0x0f+uint16(uint8(offset))&0x0f > 0x0f
	r.Status.Carry = v&0xff+uint16(uint8(offset)) > 0xff
	return uint16(int32(v) + int32(offset))
}

// daa adjusts the accumulator after a binary addition or subtraction of two
// binary coded decimal values.
func (mc *CPU) daa() {
	r := &mc.Regs
	if !r.Status.Negative {
		if r.Status.Carry || r.A > 0x99 {
			r.A += 0x60
			r.Status.Carry = true
		}
		if r.Status.HalfCarry || r.A&0x0f > 0x09 {
			r.A += 0x06
		}
	} else {
		if r.Status.Carry {
			r.A -= 0x60
		}
		if r.Status.HalfCarry {
			r.A -= 0x06
		}
	}
	r.Status.Zero = r.A == 0
	r.Status.HalfCarry = false
}

// the rotate and shift primitives. all of them set the zero flag from the
// result; the RLCA group of instructions clears it again.

func (mc *CPU) rlc(v uint8) uint8 {
	carry := v >> 7
	v = v<<1 | carry
	mc.Regs.Status = Status{Zero: v == 0, Carry: carry == 1}
	return v
}

func (mc *CPU) rrc(v uint8) uint8 {
	carry := v & 0x01
	v = v>>1 | carry<<7
	mc.Regs.Status = Status{Zero: v == 0, Carry: carry == 1}
	return v
}

func (mc *CPU) rl(v uint8) uint8 {
	carry := v >> 7
	v <<= 1
	if mc.Regs.Status.Carry {
		v |= 0x01
	}
	mc.Regs.Status = Status{Zero: v == 0, Carry: carry == 1}
	return v
}

func (mc *CPU) rr(v uint8) uint8 {
	carry := v & 0x01
	v >>= 1
	if mc.Regs.Status.Carry {
		v |= 0x80
	}
	mc.Regs.Status = Status{Zero: v == 0, Carry: carry == 1}
	return v
}

func (mc *CPU) sla(v uint8) uint8 {
	carry := v >> 7
	v <<= 1
	mc.Regs.Status = Status{Zero: v == 0, Carry: carry == 1}
	return v
}

func (mc *CPU) sra(v uint8) uint8 {
	carry := v & 0x01
	v = v>>1 | v&0x80
	mc.Regs.Status = Status{Zero: v == 0, Carry: carry == 1}
	return v
}

func (mc *CPU) swap(v uint8) uint8 {
	v = v<<4 | v>>4
	mc.Regs.Status = Status{Zero: v == 0}
	return v
}

func (mc *CPU) srl(v uint8) uint8 {
	carry := v & 0x01
	v >>= 1
	mc.Regs.Status = Status{Zero: v == 0, Carry: carry == 1}
	return v
}
