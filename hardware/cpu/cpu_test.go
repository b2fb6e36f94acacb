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

package cpu_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/hardware/cpu"
	"github.com/jetsetilly/gopherboy/hardware/cpu/instructions"
	"github.com/jetsetilly/gopherboy/hardware/interrupts"
	"github.com/jetsetilly/gopherboy/test"
)

// flat memory with none of the bus behaviour. good enough for instruction
// level tests.
type testMem struct {
	data [0x10000]uint8
}

func (m *testMem) Read(address uint16) uint8 {
	return m.data[address]
}

func (m *testMem) Write(address uint16, data uint8) {
	m.data[address] = data
}

func newTestCPU(program ...uint8) (*cpu.CPU, *testMem, *interrupts.Interrupts) {
	mem := &testMem{}
	copy(mem.data[:], program)
	irq := interrupts.NewInterrupts()
	mc := cpu.NewCPU(mem, irq)
	mc.Regs.SP = 0xfffe
	return mc, mem, irq
}

func step(t *testing.T, mc *cpu.CPU) int {
	t.Helper()
	clocks, err := mc.ExecuteInstruction()
	test.ExpectedSuccess(t, err)
	return clocks
}

func TestCycleCounts(t *testing.T) {
	mc, _, _ := newTestCPU(
		0x00,             // NOP
		0x06, 0x12,       // LD B,d8
		0x21, 0x00, 0xc0, // LD HL,d16
		0x36, 0x34,       // LD (HL),d8
		0xc5,             // PUSH BC
		0xc1,             // POP BC
		0xcd, 0x00, 0x10, // CALL a16
	)

	test.ExpectEquality(t, step(t, mc), 4)
	test.ExpectEquality(t, step(t, mc), 8)
	test.ExpectEquality(t, step(t, mc), 12)
	test.ExpectEquality(t, step(t, mc), 12)
	test.ExpectEquality(t, step(t, mc), 16)
	test.ExpectEquality(t, step(t, mc), 12)
	test.ExpectEquality(t, step(t, mc), 24)
	test.ExpectEquality(t, mc.Regs.PC, uint16(0x1000))
}

func TestConditionalCycleCounts(t *testing.T) {
	mc, _, _ := newTestCPU(
		0x20, 0x02, // JR NZ,+2      taken (zero flag clear on reset)
		0x00, 0x00,
		0x28, 0x00, // JR Z,+0       not taken
		0xc0,       // RET NZ        taken
	)

	test.ExpectEquality(t, step(t, mc), 12)
	test.ExpectEquality(t, mc.Regs.PC, uint16(0x0004))
	test.ExpectEquality(t, step(t, mc), 8)
	test.ExpectEquality(t, step(t, mc), 20)
}

// runForCycles executes a single instruction against zeroed memory and
// returns the clocks consumed. conditional instructions have their condition
// forced to the requested outcome before executing.
func runForCycles(t *testing.T, program []uint8, condition string, taken bool) int {
	t.Helper()
	mc, _, _ := newTestCPU(program...)

	switch condition {
	case "NZ":
		mc.Regs.Status.Zero = !taken
	case "Z":
		mc.Regs.Status.Zero = taken
	case "NC":
		mc.Regs.Status.Carry = !taken
	case "C":
		mc.Regs.Status.Carry = taken
	}

	return step(t, mc)
}

// conditionOf extracts the condition name from a conditional mnemonic, for
// example "JR NZ,r8" or "RET C".
func conditionOf(mnemonic string) string {
	f := strings.Fields(mnemonic)[1]
	if i := strings.IndexByte(f, ','); i >= 0 {
		f = f[:i]
	}
	return f
}

// TestCycleCountsAgree checks every defined opcode on both pages of the
// opcode space against the durations in the instructions package. operand
// bytes are zero, so jumps land at the start of memory and stack traffic
// stays inside the test memory.
func TestCycleCountsAgree(t *testing.T) {
	for op := 0; op < 256; op++ {
		defn := instructions.Definitions[op]
		if !defn.Defined {
			continue
		}

		// the prefix byte is not an instruction on its own. the prefixed
		// page is swept below with the full two byte encoding
		if defn.Mnemonic == "PREFIX" {
			continue
		}

		t.Run(fmt.Sprintf("%02x %s", op, defn.Mnemonic), func(t *testing.T) {
			program := []uint8{uint8(op), 0x00, 0x00}

			if defn.CyclesBranch == 0 {
				test.ExpectEquality(t, runForCycles(t, program, "", false), defn.Cycles)
				return
			}

			cond := conditionOf(defn.Mnemonic)
			test.ExpectEquality(t, runForCycles(t, program, cond, false), defn.Cycles)
			test.ExpectEquality(t, runForCycles(t, program, cond, true), defn.CyclesBranch)
		})
	}

	for op := 0; op < 256; op++ {
		defn := instructions.Prefixed[op]
		t.Run(fmt.Sprintf("cb%02x %s", op, defn.Mnemonic), func(t *testing.T) {
			program := []uint8{0xcb, uint8(op)}
			test.ExpectEquality(t, runForCycles(t, program, "", false), defn.Cycles)
		})
	}
}

func TestALUFlags(t *testing.T) {
	mc, _, _ := newTestCPU(
		0x3e, 0x0f, // LD A,0x0f
		0xc6, 0x01, // ADD A,0x01    half carry
		0xc6, 0xf0, // ADD A,0xf0    carry and zero
		0xd6, 0x01, // SUB 0x01      borrow
	)

	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.Regs.A, uint8(0x10))
	test.ExpectedSuccess(t, mc.Regs.Status.HalfCarry)
	test.ExpectedFailure(t, mc.Regs.Status.Carry)

	step(t, mc)
	test.ExpectEquality(t, mc.Regs.A, uint8(0x00))
	test.ExpectedSuccess(t, mc.Regs.Status.Zero)
	test.ExpectedSuccess(t, mc.Regs.Status.Carry)

	step(t, mc)
	test.ExpectEquality(t, mc.Regs.A, uint8(0xff))
	test.ExpectedSuccess(t, mc.Regs.Status.Carry)
	test.ExpectedSuccess(t, mc.Regs.Status.Negative)
}

func TestDAA(t *testing.T) {
	mc, _, _ := newTestCPU(
		0x3e, 0x15, // LD A,0x15
		0xc6, 0x27, // ADD A,0x27
		0x27,       // DAA           0x15 + 0x27 = 0x42 in BCD
		0xd6, 0x13, // SUB 0x13
		0x27,       // DAA           0x42 - 0x13 = 0x29 in BCD
	)

	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.Regs.A, uint8(0x42))

	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.Regs.A, uint8(0x29))
}

func TestPopAFMasksFlags(t *testing.T) {
	mc, _, _ := newTestCPU(
		0x01, 0xff, 0x12, // LD BC,0x12ff
		0xc5, // PUSH BC
		0xf1, // POP AF
		0xf5, // PUSH AF
		0xd1, // POP DE
	)

	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.Regs.A, uint8(0x12))

	// the lower nibble of F does not exist; it reads back zero
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.Regs.DE(), uint16(0x12f0))
}

func TestInterruptDispatch(t *testing.T) {
	mc, mem, irq := newTestCPU(
		0xfb, // EI
		0x00, // NOP
		0x00, // NOP
	)

	irq.Enable = interrupts.Timer.Mask()
	irq.Raise(interrupts.Timer)

	// EI does not take effect until after the following instruction
	step(t, mc)
	test.ExpectedFailure(t, mc.IME)
	step(t, mc)
	test.ExpectedSuccess(t, mc.IME)

	// dispatch takes twenty clocks and pushes the program counter
	clocks := step(t, mc)
	test.ExpectEquality(t, clocks, 20)
	test.ExpectEquality(t, mc.Regs.PC, interrupts.Timer.Vector())
	test.ExpectedFailure(t, mc.IME)
	test.ExpectEquality(t, mem.data[0xfffd], uint8(0x00))
	test.ExpectEquality(t, mem.data[0xfffc], uint8(0x02))

	// the request bit has been acknowledged
	test.ExpectEquality(t, irq.Request&interrupts.Timer.Mask(), uint8(0))
}

func TestHaltWakes(t *testing.T) {
	mc, _, irq := newTestCPU(
		0x76, // HALT
		0x3c, // INC A
	)

	step(t, mc)
	test.ExpectedSuccess(t, mc.Halted)

	// a halted CPU consumes clocks without executing
	test.ExpectEquality(t, step(t, mc), 4)
	test.ExpectEquality(t, mc.Regs.A, uint8(0))

	// a pending interrupt ends the halt even with the master enable clear.
	// the source is not dispatched
	irq.Enable = interrupts.Joypad.Mask()
	irq.Raise(interrupts.Joypad)
	step(t, mc)
	test.ExpectedFailure(t, mc.Halted)
	test.ExpectEquality(t, mc.Regs.A, uint8(1))
	test.ExpectEquality(t, irq.Request&interrupts.Joypad.Mask(), interrupts.Joypad.Mask())
}

func TestHaltBug(t *testing.T) {
	mc, _, irq := newTestCPU(
		0x76, // HALT
		0x3c, // INC A
		0x00, // NOP
	)

	// HALT with the master enable clear and an interrupt already pending
	// does not halt. the following fetch fails to advance the program
	// counter so the next instruction byte executes twice
	irq.Enable = interrupts.Timer.Mask()
	irq.Raise(interrupts.Timer)

	step(t, mc)
	test.ExpectedFailure(t, mc.Halted)

	step(t, mc)
	test.ExpectEquality(t, mc.Regs.A, uint8(1))
	test.ExpectEquality(t, mc.Regs.PC, uint16(0x0001))

	step(t, mc)
	test.ExpectEquality(t, mc.Regs.A, uint8(2))
	test.ExpectEquality(t, mc.Regs.PC, uint16(0x0002))
}

func TestIllegalOpcode(t *testing.T) {
	mc, _, _ := newTestCPU(0xd3)
	_, err := mc.ExecuteInstruction()
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, cpu.IllegalOpcode))
}

func TestPrefixedInstructions(t *testing.T) {
	mc, mem, _ := newTestCPU(
		0x3e, 0x81, // LD A,0x81
		0xcb, 0x37, // SWAP A
		0xcb, 0x47, // BIT 0,A
		0x21, 0x00, 0xc0, // LD HL,d16
		0x36, 0x01, // LD (HL),0x01
		0xcb, 0xfe, // SET 7,(HL)
	)

	step(t, mc)
	test.ExpectEquality(t, step(t, mc), 8)
	test.ExpectEquality(t, mc.Regs.A, uint8(0x18))

	step(t, mc)
	test.ExpectedSuccess(t, mc.Regs.Status.Zero)
	test.ExpectedSuccess(t, mc.Regs.Status.HalfCarry)

	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, step(t, mc), 16)
	test.ExpectEquality(t, mem.data[0xc000], uint8(0x81))
}

func TestHLIncrementDecrement(t *testing.T) {
	mc, mem, _ := newTestCPU(
		0x21, 0x00, 0xc0, // LD HL,0xc000
		0x3e, 0xaa, // LD A,0xaa
		0x22, // LD (HL+),A
		0x22, // LD (HL+),A
		0x3a, // LD A,(HL-)
	)

	step(t, mc)
	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mem.data[0xc000], uint8(0xaa))
	test.ExpectEquality(t, mem.data[0xc001], uint8(0xaa))
	test.ExpectEquality(t, mc.Regs.HL(), uint16(0xc002))

	mem.data[0xc002] = 0x55
	step(t, mc)
	test.ExpectEquality(t, mc.Regs.A, uint8(0x55))
	test.ExpectEquality(t, mc.Regs.HL(), uint16(0xc001))
}

func TestAddSP(t *testing.T) {
	mc, _, _ := newTestCPU(
		0xe8, 0xfe, // ADD SP,-2
		0xf8, 0x04, // LD HL,SP+4
	)
	mc.Regs.SP = 0xfff8

	test.ExpectEquality(t, step(t, mc), 16)
	test.ExpectEquality(t, mc.Regs.SP, uint16(0xfff6))

	test.ExpectEquality(t, step(t, mc), 12)
	test.ExpectEquality(t, mc.Regs.HL(), uint16(0xfffa))
	test.ExpectEquality(t, mc.Regs.SP, uint16(0xfff6))
}
