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

package playmode

import (
	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/gui"
	"github.com/jetsetilly/gopherboy/hardware/joypad"
	"github.com/jetsetilly/gopherboy/savestate"
)

// keyboard maps key events onto the button matrix and the handful of
// emulator functions. Failed save state operations are logged, not fatal.
func (pl *playmode) keyboard(ev gui.EventKeyboard) error {
	var button joypad.State

	switch ev.Key {
	case "Up":
		button = joypad.Up
	case "Down":
		button = joypad.Down
	case "Left":
		button = joypad.Left
	case "Right":
		button = joypad.Right
	case "X":
		button = joypad.A
	case "Z":
		button = joypad.B
	case "Return":
		button = joypad.Start
	case "Space", "Right Shift":
		button = joypad.Select

	case "Escape":
		if ev.Down {
			return curated.Errorf(quitEvent)
		}
		return nil

	case "F5":
		if ev.Down {
			pl.logError(savestate.SaveFile(pl.gb, pl.stateFile))
		}
		return nil

	case "F9":
		if ev.Down {
			pl.logError(savestate.LoadFile(pl.gb, pl.stateFile))
		}
		return nil

	case "F11":
		if ev.Down {
			pl.fpsCap = !pl.fpsCap
			pl.scr.SetFPSCap(pl.fpsCap)
		}
		return nil

	default:
		return nil
	}

	if ev.Down {
		pl.buttons |= button
	} else {
		pl.buttons &^= button
	}

	return nil
}
