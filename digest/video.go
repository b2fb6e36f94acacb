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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/gopherboy/hardware/display"
)

// Video is an implementation of the display.PixelRenderer interface. It
// generates a SHA-1 value of the image every frame. It does not display the
// image anywhere.
//
// Note that the use of SHA-1 is fine for this application because this is
// not a cryptographic task.
type Video struct {
	digest   [sha1.Size]byte
	buffer   []byte
	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{
		// the frame content is hashed together with the digest of the frame
		// before it
		buffer: make([]byte, sha1.Size+display.Width*display.Height),
	}
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
}

// FrameNum returns the number of the last frame hashed.
func (dig *Video) FrameNum() int {
	return dig.frameNum
}

// NewFrame implements the display.PixelRenderer interface.
func (dig *Video) NewFrame(frameNum int) error {
	dig.frameNum = frameNum
	return nil
}

// SetPixels implements the display.PixelRenderer interface. The digest is
// chained: the previous digest value is hashed in ahead of the frame
// content.
func (dig *Video) SetPixels(frame display.Frame) error {
	copy(dig.buffer, dig.digest[:])
	copy(dig.buffer[sha1.Size:], frame)
	dig.digest = sha1.Sum(dig.buffer)
	return nil
}

// EndRendering implements the display.PixelRenderer interface.
func (dig *Video) EndRendering() error {
	return nil
}
