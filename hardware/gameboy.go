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
	"io"

	"github.com/jetsetilly/gopherboy/cartridgeloader"
	"github.com/jetsetilly/gopherboy/hardware/apu"
	"github.com/jetsetilly/gopherboy/hardware/cpu"
	"github.com/jetsetilly/gopherboy/hardware/display"
	"github.com/jetsetilly/gopherboy/hardware/interrupts"
	"github.com/jetsetilly/gopherboy/hardware/joypad"
	"github.com/jetsetilly/gopherboy/hardware/memory"
	"github.com/jetsetilly/gopherboy/hardware/memory/cartridge"
	"github.com/jetsetilly/gopherboy/hardware/ppu"
	"github.com/jetsetilly/gopherboy/hardware/serial"
	"github.com/jetsetilly/gopherboy/hardware/timer"
)

// GameBoy is the main container for the emulated components of the console.
type GameBoy struct {
	Revision Revision

	CPU    *cpu.CPU
	Bus    *memory.Bus
	Cart   *cartridge.Cartridge
	PPU    *ppu.PPU
	APU    *apu.APU
	Timer  *timer.Timer
	Serial *serial.Serial
	Joypad *joypad.Joypad
	IRQ    *interrupts.Interrupts

	// attachments survive a Reset() and a Plumb()
	renderer  display.PixelRenderer
	mixer     display.AudioMixer
	serialOut io.Writer
}

// NewGameBoy creates a new console and everything associated with the
// hardware. It is used for all aspects of emulation: headless runs,
// regression tests and regular play.
func NewGameBoy(rev Revision) *GameBoy {
	gb := &GameBoy{
		Revision: rev,
		Cart:     cartridge.NewCartridge(),
	}
	gb.build()
	gb.applyRevision()
	return gb
}

// build creates every component except the cartridge and wires them
// together.
func (gb *GameBoy) build() {
	gb.IRQ = interrupts.NewInterrupts()
	gb.Joypad = joypad.NewJoypad(gb.IRQ)
	gb.Timer = timer.NewTimer(gb.IRQ)
	gb.Serial = serial.NewSerial(gb.IRQ)
	gb.PPU = ppu.NewPPU(gb.IRQ)
	gb.APU = apu.NewAPU()
	gb.Bus = memory.NewBus(gb.Cart, gb.PPU, gb.APU, gb.Timer, gb.Serial, gb.Joypad, gb.IRQ)
	gb.CPU = cpu.NewCPU(gb.Bus, gb.IRQ)

	if gb.renderer != nil {
		gb.PPU.AddPixelRenderer(gb.renderer)
	}
	if gb.serialOut != nil {
		gb.Serial.Attach(gb.serialOut)
	}
}

// AddPixelRenderer registers the renderer that receives completed frames.
func (gb *GameBoy) AddPixelRenderer(renderer display.PixelRenderer) {
	gb.renderer = renderer
	gb.PPU.AddPixelRenderer(renderer)
}

// AddAudioMixer registers the mixer that receives the audio generated
// during each frame.
func (gb *GameBoy) AddAudioMixer(mixer display.AudioMixer) {
	gb.mixer = mixer
}

// AttachSerial registers a writer that receives every byte sent out of the
// serial port. Test ROMs report their results this way.
func (gb *GameBoy) AttachSerial(w io.Writer) {
	gb.serialOut = w
	gb.Serial.Attach(w)
}

// AttachCartridge loads a cartridge into the machine and resets it. An
// error from the loader leaves the previously attached cartridge in place.
func (gb *GameBoy) AttachCartridge(cartload cartridgeloader.Loader) error {
	err := gb.Cart.Attach(cartload)
	if err != nil {
		return err
	}
	return gb.Reset()
}

// Reset the machine to its post boot state. The cartridge and any
// attachments are kept.
func (gb *GameBoy) Reset() error {
	gb.Cart.Reset()
	gb.build()
	gb.applyRevision()
	return nil
}

// SetButtons latches the current state of the eight buttons. A press can
// raise the joypad interrupt and wakes a stopped CPU.
func (gb *GameBoy) SetButtons(buttons joypad.State) {
	gb.Joypad.Latch(buttons)
	if gb.CPU.Stopped && gb.Joypad.Pressed() {
		gb.CPU.Stopped = false
	}
}

// Step the machine by one CPU instruction. Every other component is run
// for the clocks the instruction consumed. Returns true if a video frame
// was completed during the step.
func (gb *GameBoy) Step() (bool, error) {
	clocks, err := gb.CPU.ExecuteInstruction()
	if err != nil {
		return false, err
	}

	gb.Timer.Step(clocks)
	gb.Serial.Step(clocks)
	gb.Cart.Step(clocks)
	gb.APU.Step(clocks)
	frame := gb.PPU.Step(clocks)

	if frame {
		if err := gb.mixAudio(); err != nil {
			return frame, err
		}
	}

	return frame, nil
}

// mixAudio drains the APU sample buffer into the attached mixer. Without a
// mixer the samples are dropped so the buffer cannot grow without bound.
func (gb *GameBoy) mixAudio() error {
	samples := gb.APU.ReadAudio()
	if gb.mixer == nil {
		return nil
	}
	return gb.mixer.SetAudio(samples)
}

func (gb *GameBoy) String() string {
	return gb.CPU.String()
}
