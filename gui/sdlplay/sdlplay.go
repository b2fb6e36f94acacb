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

// Package sdlplay is an SDL implementation of the display interfaces. The
// emulation and the window share the main goroutine: the play loop runs
// the machine and calls Service() once per completed frame to present the
// picture and report input.
package sdlplay

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/gui"
	"github.com/jetsetilly/gopherboy/hardware/clocks"
	"github.com/jetsetilly/gopherboy/hardware/display"
	"github.com/jetsetilly/gopherboy/performance/limiter"
)

// error pattern for SDL problems.
const SDLError = "sdlplay: %v"

const pixelDepth = 4

// SdlPlay is an SDL implementation of display.PixelRenderer and, through
// its sound type, display.AudioMixer.
type SdlPlay struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// all audio is handled by the sound type
	snd *sound

	// connects the SDL event queue with the play loop
	events chan gui.Event

	// limits presentation to the hardware frame rate
	lmtr   *limiter.FpsLimiter
	fpsCap bool

	// the pixel array copied to the texture on every completed frame. RGBA
	// ordering, alpha preset and never touched again
	crit   sync.Mutex
	pixels []byte
	dirty  bool
}

// NewSdlPlay is the preferred method of initialisation for the SdlPlay
// type. The window is shown immediately, scaled up by the scale argument.
func NewSdlPlay(scale int, sampleRate int) (*SdlPlay, error) {
	scr := &SdlPlay{
		events: make(chan gui.Event, 64),
		lmtr:   limiter.NewFPSLimiter(clocks.FrameRate),
		fpsCap: true,
		pixels: make([]byte, display.Width*display.Height*pixelDepth),
	}

	for i := pixelDepth - 1; i < len(scr.pixels); i += pixelDepth {
		scr.pixels[i] = 255
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	var err error

	scr.window, err = sdl.CreateWindow("Gopherboy",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(display.Width*scale), int32(display.Height*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	// the texture is the size of the LCD; the renderer scales it to the
	// window
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), display.Width, display.Height)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	scr.snd, err = newSound(sampleRate)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	// MOUSEMOTION events fill up the event queue quickly and we have no use
	// for them
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)

	return scr, nil
}

// Events returns the channel on which gui events are reported.
func (scr *SdlPlay) Events() <-chan gui.Event {
	return scr.events
}

// AudioMixer returns the display.AudioMixer that plays through the host
// sound device.
func (scr *SdlPlay) AudioMixer() display.AudioMixer {
	return scr.snd
}

// SetFPSCap controls whether presentation is limited to the hardware frame
// rate.
func (scr *SdlPlay) SetFPSCap(fpsCap bool) {
	scr.fpsCap = fpsCap
}

// NewFrame implements the display.PixelRenderer interface.
func (scr *SdlPlay) NewFrame(frameNum int) error {
	return nil
}

// SetPixels implements the display.PixelRenderer interface. Shade indices
// are converted to RGB immediately; the texture upload happens on the next
// call to Service().
func (scr *SdlPlay) SetPixels(frame display.Frame) error {
	scr.crit.Lock()
	defer scr.crit.Unlock()

	for i, shade := range frame {
		rgb := display.Shades[shade&0x03]
		o := i * pixelDepth
		scr.pixels[o] = rgb.R
		scr.pixels[o+1] = rgb.G
		scr.pixels[o+2] = rgb.B
	}
	scr.dirty = true

	return nil
}

// EndRendering implements the display.PixelRenderer interface.
func (scr *SdlPlay) EndRendering() error {
	scr.texture.Destroy()
	scr.renderer.Destroy()
	scr.window.Destroy()
	sdl.Quit()
	return nil
}

// Service presents the most recent frame, reports queued SDL events on the
// event channel and waits for the frame limiter. The play loop must call
// it regularly, typically once per completed frame, and always from the
// main goroutine.
func (scr *SdlPlay) Service() error {
	scr.serviceEvents()

	scr.crit.Lock()
	dirty := scr.dirty
	scr.dirty = false
	if dirty {
		if err := scr.texture.Update(nil, scr.pixels, display.Width*pixelDepth); err != nil {
			scr.crit.Unlock()
			return curated.Errorf(SDLError, err)
		}
	}
	scr.crit.Unlock()

	if dirty {
		if err := scr.renderer.Copy(scr.texture, nil, nil); err != nil {
			return curated.Errorf(SDLError, err)
		}
		scr.renderer.Present()
	}

	if scr.fpsCap {
		scr.lmtr.Wait()
	}

	return nil
}
