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

// Package playmode runs the emulation for playing, with the SDL window and
// the host sound device attached. No debugging features: the machine runs
// at the hardware frame rate until the window closes.
package playmode

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/jetsetilly/gopherboy/cartridgeloader"
	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/gui"
	"github.com/jetsetilly/gopherboy/gui/sdlplay"
	"github.com/jetsetilly/gopherboy/hardware"
	"github.com/jetsetilly/gopherboy/hardware/joypad"
	"github.com/jetsetilly/gopherboy/hardware/ppu"
	"github.com/jetsetilly/gopherboy/logger"
	"github.com/jetsetilly/gopherboy/resources"
)

// error pattern for play mode failures.
const PlayError = "playmode: %v"

// sentinel error pattern raised when the user asks to quit.
const quitEvent = "playmode: quit event"

type playmode struct {
	gb  *hardware.GameBoy
	scr *sdlplay.SdlPlay

	// buttons currently held down, latched into the machine once per frame
	buttons joypad.State

	// save states and battery RAM are keyed by cartridge hash so that each
	// cartridge gets its own slot
	stateFile   string
	batteryFile string

	intChan chan os.Signal
	fpsCap  bool
}

// Options gathers the play session settings chosen on the command line or
// loaded from the prefs file.
type Options struct {
	Scale         int
	FPSCap        bool
	SampleRate    int
	Mode3Model    ppu.Mode3Model
	BlankDisabled bool
}

// Play sets the emulation running.
func Play(cartload cartridgeloader.Loader, rev hardware.Revision, opts Options) error {
	scr, err := sdlplay.NewSdlPlay(opts.Scale, opts.SampleRate)
	if err != nil {
		return curated.Errorf(PlayError, err)
	}
	defer scr.EndRendering()

	snd := scr.AudioMixer()
	defer snd.EndMixing()

	gb := hardware.NewGameBoy(rev)
	gb.AddPixelRenderer(scr)
	gb.AddAudioMixer(snd)

	if err := gb.AttachCartridge(cartload); err != nil {
		return curated.Errorf(PlayError, err)
	}

	// attachment resets the machine so configuration comes after
	gb.APU.SetSampleRate(opts.SampleRate)
	gb.PPU.Model = opts.Mode3Model
	gb.PPU.BlankDisabled = opts.BlankDisabled

	scr.SetFPSCap(opts.FPSCap)

	pl := &playmode{
		gb:      gb,
		scr:     scr,
		intChan: make(chan os.Signal, 1),
		fpsCap:  opts.FPSCap,
	}

	pl.stateFile, err = resources.JoinPath("savestates", fmt.Sprintf("%s.state", cartload.Hash))
	if err != nil {
		return curated.Errorf(PlayError, err)
	}

	// battery backed cartridge RAM persists between sessions
	if gb.Cart.HasBattery {
		pl.batteryFile, err = resources.JoinPath("saveram", fmt.Sprintf("%s.sav", cartload.Hash))
		if err != nil {
			return curated.Errorf(PlayError, err)
		}
		pl.loadBattery()
		defer pl.saveBattery()
	}

	// make sure the deferred teardown runs even when ctrl-c is pressed
	signal.Notify(pl.intChan, os.Interrupt)

	err = gb.Run(pl.continueCheck)
	if err != nil && !curated.Is(err, quitEvent) {
		return curated.Errorf(PlayError, err)
	}

	return nil
}

// continueCheck is called by the machine once per completed frame. The SDL
// window is serviced here, meaning everything happens on one goroutine.
func (pl *playmode) continueCheck() (bool, error) {
	if err := pl.scr.Service(); err != nil {
		return false, err
	}

	select {
	case <-pl.intChan:
		return false, nil
	default:
	}

	for {
		select {
		case ev := <-pl.scr.Events():
			switch ev := ev.(type) {
			case gui.EventQuit:
				return false, nil
			case gui.EventKeyboard:
				if err := pl.keyboard(ev); err != nil {
					if curated.Is(err, quitEvent) {
						return false, nil
					}
					return false, err
				}
			}
		default:
			pl.gb.SetButtons(pl.buttons)
			return true, nil
		}
	}
}

func (pl *playmode) logError(err error) {
	if err != nil {
		logger.Logf("playmode", "%v", err)
	}
}

func (pl *playmode) loadBattery() {
	data, err := os.ReadFile(pl.batteryFile)
	if err != nil {
		// a missing file is the common case for a new cartridge
		if !os.IsNotExist(err) {
			pl.logError(err)
		}
		return
	}

	pl.gb.Cart.SetRAM(data)
	logger.Logf("playmode", "battery RAM loaded from %s", pl.batteryFile)
}

func (pl *playmode) saveBattery() {
	if err := os.WriteFile(pl.batteryFile, pl.gb.Cart.RAM(), 0600); err != nil {
		pl.logError(err)
		return
	}
	logger.Logf("playmode", "battery RAM saved to %s", pl.batteryFile)
}
