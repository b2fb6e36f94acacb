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

// Package disassembly turns ROM data into a listing of instructions. The
// disassembly is static: every ROM bank is swept linearly from its first
// byte, with no attempt to follow the flow of the program. Data areas will
// decode as nonsense instructions as a consequence. Bytes that decode to
// no instruction at all appear as raw byte definitions.
package disassembly

import (
	"fmt"
	"io"

	"github.com/jetsetilly/gopherboy/cartridgeloader"
	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/hardware/memory/cartridge"
)

// error pattern for disassembly failures.
const DisasmError = "disassembly: %v"

// Entry is one disassembled instruction.
type Entry struct {
	Bank    int
	Address uint16

	// the raw bytes of the instruction, including operands
	ByteCode []uint8

	// the mnemonic with operand values substituted in
	Operator string

	// clocks consumed by the instruction. conditional instructions list
	// both durations
	Cycles string
}

func (e Entry) String() string {
	bytecode := ""
	for _, b := range e.ByteCode {
		bytecode = fmt.Sprintf("%s%02x ", bytecode, b)
	}
	return fmt.Sprintf("%04x  %-9s %s", e.Address, bytecode, e.Operator)
}

// Disassembly of an entire cartridge, grouped by ROM bank.
type Disassembly struct {
	// the cartridge header, for titling the listing
	Header cartridge.Header

	// one slice of entries per ROM bank
	Entries [][]Entry
}

// FromCartridge disassembles every bank of the ROM described by the
// Loader. The ROM header is validated the same way as it would be on
// attachment to the emulation.
func FromCartridge(cartload cartridgeloader.Loader) (*Disassembly, error) {
	cart := cartridge.NewCartridge()
	if err := cart.Attach(cartload); err != nil {
		return nil, curated.Errorf(DisasmError, err)
	}

	dsm := &Disassembly{Header: cart.Header}

	numBanks := len(cartload.Data) / bankSize
	for bank := 0; bank < numBanks; bank++ {
		// the fixed bank is mapped at the bottom of the address space and
		// every switchable bank at the top of the cartridge window
		origin := uint16(bankSize)
		if bank == 0 {
			origin = 0x0000
		}

		data := cartload.Data[bank*bankSize : (bank+1)*bankSize]
		dsm.Entries = append(dsm.Entries, decodeBank(data, bank, origin))
	}

	return dsm, nil
}

// Write the entire disassembly to the io.Writer.
func (dsm *Disassembly) Write(output io.Writer) error {
	for bank := range dsm.Entries {
		if err := dsm.WriteBank(output, bank); err != nil {
			return err
		}
	}
	return nil
}

// WriteBank writes the disassembly of one ROM bank to the io.Writer.
func (dsm *Disassembly) WriteBank(output io.Writer, bank int) error {
	if bank < 0 || bank >= len(dsm.Entries) {
		return curated.Errorf(DisasmError, fmt.Sprintf("no such bank (%d)", bank))
	}

	if _, err := fmt.Fprintf(output, "--- bank %d ---\n", bank); err != nil {
		return err
	}

	for _, e := range dsm.Entries[bank] {
		if _, err := fmt.Fprintln(output, e.String()); err != nil {
			return err
		}
	}

	return nil
}

const bankSize = 0x4000
