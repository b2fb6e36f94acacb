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

package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/gopherboy/gui"
)

// serviceEvents drains the SDL event queue onto the gui event channel. The
// channel send never blocks: when the play loop falls behind, old input is
// less valuable than a responsive window.
func (scr *SdlPlay) serviceEvents() {
	for {
		ev := sdl.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			scr.send(gui.EventQuit{})

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			switch ev.Type {
			case sdl.KEYDOWN:
				scr.send(gui.EventKeyboard{
					Key:  sdl.GetKeyName(ev.Keysym.Sym),
					Down: true})
			case sdl.KEYUP:
				scr.send(gui.EventKeyboard{
					Key:  sdl.GetKeyName(ev.Keysym.Sym),
					Down: false})
			}
		}
	}
}

func (scr *SdlPlay) send(ev gui.Event) {
	select {
	case scr.events <- ev:
	default:
	}
}
