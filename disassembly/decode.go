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

package disassembly

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherboy/hardware/cpu/instructions"
)

// decodeBank sweeps one ROM bank from its first byte. origin is the
// address the bank is mapped at.
func decodeBank(data []byte, bank int, origin uint16) []Entry {
	entries := make([]Entry, 0, len(data)/2)

	i := 0
	for i < len(data) {
		addr := origin + uint16(i)
		opcode := data[i]

		defn := instructions.Definitions[opcode]
		if opcode == 0xcb && i+1 < len(data) {
			defn = instructions.Prefixed[data[i+1]]
		}

		// undefined opcodes and instructions truncated by the end of the
		// bank appear as raw byte definitions
		if !defn.Defined || i+defn.Bytes > len(data) {
			entries = append(entries, Entry{
				Bank:     bank,
				Address:  addr,
				ByteCode: []uint8{opcode},
				Operator: fmt.Sprintf(".db $%02x", opcode),
				Cycles:   "-",
			})
			i++
			continue
		}

		bytecode := make([]uint8, defn.Bytes)
		copy(bytecode, data[i:i+defn.Bytes])

		cycles := fmt.Sprintf("%d", defn.Cycles)
		if defn.CyclesBranch > 0 {
			cycles = fmt.Sprintf("%d/%d", defn.CyclesBranch, defn.Cycles)
		}

		entries = append(entries, Entry{
			Bank:     bank,
			Address:  addr,
			ByteCode: bytecode,
			Operator: substitute(defn, bytecode, addr),
			Cycles:   cycles,
		})

		i += defn.Bytes
	}

	return entries
}

// substitute the operand placeholders in the mnemonic with the operand
// values from the instruction bytes.
func substitute(defn instructions.Definition, bytecode []uint8, addr uint16) string {
	operator := defn.Mnemonic

	switch {
	case strings.Contains(operator, "d16"), strings.Contains(operator, "a16"):
		v := uint16(bytecode[defn.Bytes-2]) | uint16(bytecode[defn.Bytes-1])<<8
		operator = strings.Replace(operator, "d16", fmt.Sprintf("$%04x", v), 1)
		operator = strings.Replace(operator, "a16", fmt.Sprintf("$%04x", v), 1)

	case strings.Contains(operator, "d8"), strings.Contains(operator, "a8"):
		operator = strings.Replace(operator, "d8", fmt.Sprintf("$%02x", bytecode[1]), 1)
		operator = strings.Replace(operator, "a8", fmt.Sprintf("$%02x", bytecode[1]), 1)

	case strings.Contains(operator, "SP+r8"):
		operator = strings.Replace(operator, "+r8", fmt.Sprintf("%+d", int8(bytecode[1])), 1)

	case strings.Contains(operator, "r8"):
		v := int8(bytecode[1])
		if strings.HasPrefix(operator, "JR") {
			// relative jumps read more usefully as their resolved target
			target := addr + uint16(defn.Bytes) + uint16(v)
			operator = strings.Replace(operator, "r8", fmt.Sprintf("$%04x", target), 1)
		} else {
			operator = strings.Replace(operator, "r8", fmt.Sprintf("%d", v), 1)
		}
	}

	return operator
}
