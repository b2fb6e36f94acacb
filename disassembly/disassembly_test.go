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

package disassembly_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopherboy/cartridgeloader"
	"github.com/jetsetilly/gopherboy/disassembly"
	"github.com/jetsetilly/gopherboy/test"
)

func buildROM(code ...uint8) []byte {
	data := make([]byte, 0x8000)
	copy(data[0x0100:], code)

	copy(data[0x0134:], "TEST")
	var sum uint8
	for _, b := range data[0x0134:0x014d] {
		sum = sum - b - 1
	}
	data[0x014d] = sum

	return data
}

func disassemble(t *testing.T, code ...uint8) *disassembly.Disassembly {
	t.Helper()
	dsm, err := disassembly.FromCartridge(cartridgeloader.NewLoader("test", buildROM(code...)))
	test.ExpectedSuccess(t, err)
	return dsm
}

func findEntry(t *testing.T, dsm *disassembly.Disassembly, bank int, addr uint16) disassembly.Entry {
	t.Helper()
	for _, e := range dsm.Entries[bank] {
		if e.Address == addr {
			return e
		}
	}
	t.Fatalf("no entry at %04x in bank %d", addr, bank)
	return disassembly.Entry{}
}

func TestOperandSubstitution(t *testing.T) {
	dsm := disassemble(t,
		0x00,             // 0100 NOP
		0x3e, 0x42,       // 0101 LD A,$42
		0xc3, 0x50, 0x01, // 0103 JP $0150
		0xcb, 0x37,       // 0106 SWAP A
		0x18, 0xfe,       // 0108 JR $0108
		0xe0, 0x44,       // 010a LDH ($44),A
		0xf8, 0xfd,       // 010c LD HL,SP-3
	)

	test.ExpectEquality(t, len(dsm.Entries), 2)

	test.ExpectEquality(t, findEntry(t, dsm, 0, 0x0100).Operator, "NOP")
	test.ExpectEquality(t, findEntry(t, dsm, 0, 0x0101).Operator, "LD A,$42")
	test.ExpectEquality(t, findEntry(t, dsm, 0, 0x0103).Operator, "JP $0150")
	test.ExpectEquality(t, findEntry(t, dsm, 0, 0x0106).Operator, "SWAP A")
	test.ExpectEquality(t, findEntry(t, dsm, 0, 0x0108).Operator, "JR $0108")
	test.ExpectEquality(t, findEntry(t, dsm, 0, 0x010a).Operator, "LDH ($44),A")
	test.ExpectEquality(t, findEntry(t, dsm, 0, 0x010c).Operator, "LD HL,SP-3")
}

func TestUndefinedOpcode(t *testing.T) {
	dsm := disassemble(t, 0xd3)
	e := findEntry(t, dsm, 0, 0x0100)
	test.ExpectEquality(t, e.Operator, ".db $d3")
	test.ExpectEquality(t, e.Cycles, "-")
}

func TestConditionalCycles(t *testing.T) {
	dsm := disassemble(t, 0x20, 0x05) // JR NZ
	test.ExpectEquality(t, findEntry(t, dsm, 0, 0x0100).Cycles, "12/8")
}

func TestBankOrigins(t *testing.T) {
	dsm := disassemble(t)

	// the switchable bank is listed at its mapped address
	test.ExpectEquality(t, dsm.Entries[1][0].Address, uint16(0x4000))

	b := &strings.Builder{}
	test.ExpectedSuccess(t, dsm.Write(b))
	test.ExpectedSuccess(t, strings.Contains(b.String(), "--- bank 1 ---"))
}
