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

package savestate_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jetsetilly/gopherboy/cartridgeloader"
	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/hardware"
	"github.com/jetsetilly/gopherboy/savestate"
	"github.com/jetsetilly/gopherboy/test"
)

func buildROM(title string) []byte {
	data := make([]byte, 0x8000)

	// jump in place at the entry point
	data[0x0100] = 0x18
	data[0x0101] = 0xfe

	copy(data[0x0134:], title)
	var sum uint8
	for _, b := range data[0x0134:0x014d] {
		sum = sum - b - 1
	}
	data[0x014d] = sum

	return data
}

func newMachine(t *testing.T, title string) *hardware.GameBoy {
	t.Helper()
	gb := hardware.NewGameBoy(hardware.RevDMG)
	err := gb.AttachCartridge(cartridgeloader.NewLoader(title, buildROM(title)))
	test.ExpectedSuccess(t, err)
	return gb
}

func TestRoundTrip(t *testing.T) {
	gb := newMachine(t, "TEST")

	// run a while so the saved state differs from the power on state
	for i := 0; i < 2; i++ {
		test.ExpectedSuccess(t, gb.RunForFrame())
	}
	savedPC := gb.CPU.Regs.PC
	savedLY := gb.PPU.LY
	savedDiv := gb.Timer.Divider

	b := &bytes.Buffer{}
	test.ExpectedSuccess(t, savestate.Save(gb, b))

	// let the machine diverge from the saved state
	for i := 0; i < 3; i++ {
		test.ExpectedSuccess(t, gb.RunForFrame())
	}
	test.ExpectInequality(t, gb.PPU.FrameNum(), 2)

	test.ExpectedSuccess(t, savestate.Load(gb, b))

	test.ExpectEquality(t, gb.CPU.Regs.PC, savedPC)
	test.ExpectEquality(t, gb.PPU.LY, savedLY)
	test.ExpectEquality(t, gb.Timer.Divider, savedDiv)
	test.ExpectEquality(t, gb.PPU.FrameNum(), 2)

	// the restored machine must be runnable
	test.ExpectedSuccess(t, gb.RunForFrame())
	test.ExpectEquality(t, gb.PPU.FrameNum(), 3)
}

func TestLoadIntoFreshMachine(t *testing.T) {
	gb := newMachine(t, "TEST")
	for i := 0; i < 2; i++ {
		test.ExpectedSuccess(t, gb.RunForFrame())
	}

	b := &bytes.Buffer{}
	test.ExpectedSuccess(t, savestate.Save(gb, b))

	// a different machine instance with the same cartridge attached
	fresh := newMachine(t, "TEST")
	test.ExpectedSuccess(t, savestate.Load(fresh, b))
	test.ExpectEquality(t, fresh.CPU.Regs.PC, gb.CPU.Regs.PC)
	test.ExpectEquality(t, fresh.PPU.FrameNum(), 2)
}

func TestWrongCartridge(t *testing.T) {
	gb := newMachine(t, "FIRST")

	b := &bytes.Buffer{}
	test.ExpectedSuccess(t, savestate.Save(gb, b))

	other := newMachine(t, "SECOND")
	err := savestate.Load(other, b)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, savestate.WrongCartridge))
}

func TestNotASaveState(t *testing.T) {
	gb := newMachine(t, "TEST")

	err := savestate.Load(gb, strings.NewReader("not a save state"))
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, savestate.NotASaveState))

	// the machine is untouched by the failed load
	test.ExpectEquality(t, gb.CPU.Regs.PC, uint16(0x0100))
}
