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

// Package display defines the interface between the emulation core and
// whatever is consuming the picture and sound. The core pushes one complete
// frame and the audio generated during that frame; it knows nothing about
// windows, textures or audio devices.
package display

// Pixel dimensions of the LCD.
const (
	Width  = 160
	Height = 144
)

// NumShades is the number of distinct shades a pixel can take. A frame is
// made of shade indices, not RGB values; turning a shade into a color is
// the renderer's business.
const NumShades = 4

// Frame is one complete screen of shade indices, row major.
type Frame []uint8

// NewFrame is the preferred method of initialisation for the Frame type.
func NewFrame() Frame {
	return make(Frame, Width*Height)
}

// Snapshot creates a copy of the frame.
func (f Frame) Snapshot() Frame {
	n := make(Frame, len(f))
	copy(n, f)
	return n
}

// PixelRenderer implementations display, or otherwise work with, completed
// frames. For example digest.Video.
type PixelRenderer interface {
	// NewFrame is called when a frame has been completed. SetPixels() with
	// the frame content follows immediately
	NewFrame(frameNum int) error

	// SetPixels passes the completed frame. The frame is the emulation's
	// front buffer and is valid until the next frame completes; renderers
	// that keep it longer should take a Snapshot()
	SetPixels(frame Frame) error

	// some renderers need to conclude and/or dispose of resources gently.
	// the PixelRenderer should be considered unusable after EndRendering()
	// has been called
	EndRendering() error
}

// AudioMixer implementations consume the audio samples generated during a
// frame. Samples are interleaved left/right pairs.
type AudioMixer interface {
	SetAudio(samples []int16) error

	// the AudioMixer should be considered unusable after EndMixing() has
	// been called
	EndMixing() error
}
