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
	"github.com/jetsetilly/gopherboy/hardware/apu"
	"github.com/jetsetilly/gopherboy/hardware/cpu"
	"github.com/jetsetilly/gopherboy/hardware/interrupts"
	"github.com/jetsetilly/gopherboy/hardware/joypad"
	"github.com/jetsetilly/gopherboy/hardware/memory"
	"github.com/jetsetilly/gopherboy/hardware/ppu"
	"github.com/jetsetilly/gopherboy/hardware/serial"
	"github.com/jetsetilly/gopherboy/hardware/timer"
)

// State is a snapshot of the console at one instant. It shares nothing with
// the machine it was taken from: the machine can run on and the State stays
// as it was.
type State struct {
	Revision Revision

	CPU    *cpu.CPU
	Bus    *memory.Bus
	PPU    *ppu.PPU
	APU    *apu.APU
	Timer  *timer.Timer
	Serial *serial.Serial
	Joypad *joypad.Joypad
	IRQ    *interrupts.Interrupts
}

// Snapshot creates a State from the machine as it currently stands. The
// cartridge, including its RAM and any mapper state, is snapshotted by the
// bus.
func (gb *GameBoy) Snapshot() *State {
	return &State{
		Revision: gb.Revision,
		CPU:      gb.CPU.Snapshot(),
		Bus:      gb.Bus.Snapshot(),
		PPU:      gb.PPU.Snapshot(),
		APU:      gb.APU.Snapshot(),
		Timer:    gb.Timer.Snapshot(),
		Serial:   gb.Serial.Snapshot(),
		Joypad:   gb.Joypad.Snapshot(),
		IRQ:      gb.IRQ.Snapshot(),
	}
}

// Plumb a State into the machine, replacing the machine's current state.
// The State itself is snapshotted first so the same State can be plumbed
// any number of times.
func (gb *GameBoy) Plumb(state *State) {
	gb.Revision = state.Revision

	gb.CPU = state.CPU.Snapshot()
	gb.Bus = state.Bus.Snapshot()
	gb.PPU = state.PPU.Snapshot()
	gb.APU = state.APU.Snapshot()
	gb.Timer = state.Timer.Snapshot()
	gb.Serial = state.Serial.Snapshot()
	gb.Joypad = state.Joypad.Snapshot()
	gb.IRQ = state.IRQ.Snapshot()
	gb.Cart = gb.Bus.Cart

	// reconnect every component to its peers and re-establish the
	// attachments that are not part of the snapshot
	gb.Bus.Plumb(gb.PPU, gb.APU, gb.Timer, gb.Serial, gb.Joypad, gb.IRQ)
	gb.CPU.Plumb(gb.Bus, gb.IRQ)
	gb.PPU.Plumb(gb.IRQ, gb.renderer)
	gb.APU.Plumb()
	gb.Timer.Plumb(gb.IRQ)
	gb.Serial.Plumb(gb.IRQ)
	gb.Joypad.Plumb(gb.IRQ)

	if gb.serialOut != nil {
		gb.Serial.Attach(gb.serialOut)
	}
}
