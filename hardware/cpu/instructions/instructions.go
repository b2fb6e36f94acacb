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

// Package instructions describes the instruction set. The Definitions and
// Prefixed tables are decoded once at startup from the regular structure of
// the opcode space rather than written out by hand.
//
// The tables drive the disassembler. The execution core decodes opcodes for
// itself but its cycle counts agree with the Cycles and CyclesBranch fields
// here.
package instructions

import "fmt"

// Definition describes one instruction.
type Definition struct {
	OpCode   uint8
	Mnemonic string

	// total length including the opcode byte. the prefix byte of a prefixed
	// instruction is counted
	Bytes int

	// duration in clocks. conditional instructions take CyclesBranch clocks
	// when the condition passes
	Cycles       int
	CyclesBranch int

	// instruction is from the prefixed page of the opcode space
	Prefixed bool

	// Defined is false for the unused opcodes
	Defined bool
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if !defn.Defined {
		return fmt.Sprintf("%02x undefined", defn.OpCode)
	}
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles)", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles)
}

// Definitions is the unprefixed page of the opcode space, indexed by opcode.
var Definitions [256]Definition

// Prefixed is the 0xcb prefixed page of the opcode space, indexed by the
// byte following the prefix.
var Prefixed [256]Definition

// register and register pair names in opcode decoding order.
var regNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var pairNames = [4]string{"BC", "DE", "HL", "SP"}
var stackPairNames = [4]string{"BC", "DE", "HL", "AF"}
var condNames = [4]string{"NZ", "Z", "NC", "C"}
var aluNames = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
var rotNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

func init() {
	for op := 0; op < 256; op++ {
		Definitions[op] = decode(uint8(op))
		Definitions[op].OpCode = uint8(op)
		Prefixed[op] = decodePrefixed(uint8(op))
		Prefixed[op].OpCode = uint8(op)
	}
}

// define is a convenience for building a Definition in the decode functions.
func define(mnemonic string, bytes int, cycles int) Definition {
	return Definition{
		Mnemonic: mnemonic,
		Bytes:    bytes,
		Cycles:   cycles,
		Defined:  true,
	}
}

func defineBranch(mnemonic string, bytes int, cycles int, cyclesBranch int) Definition {
	defn := define(mnemonic, bytes, cycles)
	defn.CyclesBranch = cyclesBranch
	return defn
}

// decode one opcode from the unprefixed page. The opcode space decomposes on
// the octal digits of the opcode.
func decode(op uint8) Definition {
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07
	p := y >> 1

	switch x {
	case 0:
		switch z {
		case 0:
			switch y {
			case 0:
				return define("NOP", 1, 4)
			case 1:
				return define("LD (a16),SP", 3, 20)
			case 2:
				return define("STOP", 2, 4)
			case 3:
				return define("JR r8", 2, 12)
			default:
				return defineBranch(fmt.Sprintf("JR %s,r8", condNames[y-4]), 2, 8, 12)
			}
		case 1:
			if y&0x01 == 0x01 {
				return define(fmt.Sprintf("ADD HL,%s", pairNames[p]), 1, 8)
			}
			return define(fmt.Sprintf("LD %s,d16", pairNames[p]), 3, 12)
		case 2:
			target := [4]string{"(BC)", "(DE)", "(HL+)", "(HL-)"}[p]
			if y&0x01 == 0x01 {
				return define(fmt.Sprintf("LD A,%s", target), 1, 8)
			}
			return define(fmt.Sprintf("LD %s,A", target), 1, 8)
		case 3:
			if y&0x01 == 0x01 {
				return define(fmt.Sprintf("DEC %s", pairNames[p]), 1, 8)
			}
			return define(fmt.Sprintf("INC %s", pairNames[p]), 1, 8)
		case 4, 5:
			mnemonic := "INC"
			if z == 5 {
				mnemonic = "DEC"
			}
			cycles := 4
			if y == 6 {
				cycles = 12
			}
			return define(fmt.Sprintf("%s %s", mnemonic, regNames[y]), 1, cycles)
		case 6:
			cycles := 8
			if y == 6 {
				cycles = 12
			}
			return define(fmt.Sprintf("LD %s,d8", regNames[y]), 2, cycles)
		default:
			return define([8]string{"RLCA", "RRCA", "RLA", "RRA", "DAA", "CPL", "SCF", "CCF"}[y], 1, 4)
		}

	case 1:
		if op == 0x76 {
			return define("HALT", 1, 4)
		}
		cycles := 4
		if y == 6 || z == 6 {
			cycles = 8
		}
		return define(fmt.Sprintf("LD %s,%s", regNames[y], regNames[z]), 1, cycles)

	case 2:
		cycles := 4
		if z == 6 {
			cycles = 8
		}
		return define(aluNames[y]+regNames[z], 1, cycles)
	}

	// x == 3
	switch z {
	case 0:
		switch y {
		case 4:
			return define("LDH (a8),A", 2, 12)
		case 5:
			return define("ADD SP,r8", 2, 16)
		case 6:
			return define("LDH A,(a8)", 2, 12)
		case 7:
			return define("LD HL,SP+r8", 2, 12)
		default:
			return defineBranch(fmt.Sprintf("RET %s", condNames[y]), 1, 8, 20)
		}
	case 1:
		if y&0x01 == 0x01 {
			return [4]Definition{
				define("RET", 1, 16),
				define("RETI", 1, 16),
				define("JP HL", 1, 4),
				define("LD SP,HL", 1, 8),
			}[p]
		}
		return define(fmt.Sprintf("POP %s", stackPairNames[p]), 1, 12)
	case 2:
		switch y {
		case 4:
			return define("LD (C),A", 1, 8)
		case 5:
			return define("LD (a16),A", 3, 16)
		case 6:
			return define("LD A,(C)", 1, 8)
		case 7:
			return define("LD A,(a16)", 3, 16)
		default:
			return defineBranch(fmt.Sprintf("JP %s,a16", condNames[y]), 3, 12, 16)
		}
	case 3:
		switch y {
		case 0:
			return define("JP a16", 3, 16)
		case 1:
			// the 0xcb prefix. the Prefixed table describes the full
			// instruction
			return define("PREFIX", 1, 4)
		case 6:
			return define("DI", 1, 4)
		case 7:
			return define("EI", 1, 4)
		}
	case 4:
		if y < 4 {
			return defineBranch(fmt.Sprintf("CALL %s,a16", condNames[y]), 3, 12, 24)
		}
	case 5:
		if y&0x01 == 0x00 {
			return define(fmt.Sprintf("PUSH %s", stackPairNames[p]), 1, 16)
		}
		if p == 0 {
			return define("CALL a16", 3, 24)
		}
	case 6:
		return define(aluNames[y]+"d8", 2, 8)
	case 7:
		return define(fmt.Sprintf("RST %02XH", int(y)*8), 1, 16)
	}

	// the eleven holes in the opcode space
	return Definition{}
}

// decodePrefixed decodes one opcode from the 0xcb prefixed page. Every
// opcode on the page is defined.
func decodePrefixed(op uint8) Definition {
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07

	// cycle counts include the four clocks of the prefix fetch
	cycles := 8
	if z == 6 {
		// BIT only reads the memory operand
		if x == 1 {
			cycles = 12
		} else {
			cycles = 16
		}
	}

	var defn Definition
	switch x {
	case 0:
		defn = define(fmt.Sprintf("%s %s", rotNames[y], regNames[z]), 2, cycles)
	case 1:
		defn = define(fmt.Sprintf("BIT %d,%s", y, regNames[z]), 2, cycles)
	case 2:
		defn = define(fmt.Sprintf("RES %d,%s", y, regNames[z]), 2, cycles)
	default:
		defn = define(fmt.Sprintf("SET %d,%s", y, regNames[z]), 2, cycles)
	}

	defn.Prefixed = true
	return defn
}
