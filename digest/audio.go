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
)

// Audio is an implementation of the display.AudioMixer interface. It
// generates a chained SHA-1 value of the sample stream.
type Audio struct {
	digest [sha1.Size]byte
	buffer []byte
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{}
}

// Hash implements the Digest interface.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
}

// SetAudio implements the display.AudioMixer interface. Each block of
// samples is hashed together with the digest of the stream before it.
func (dig *Audio) SetAudio(samples []int16) error {
	if len(samples) == 0 {
		return nil
	}

	need := sha1.Size + len(samples)*2
	if cap(dig.buffer) < need {
		dig.buffer = make([]byte, need)
	}
	dig.buffer = dig.buffer[:need]

	copy(dig.buffer, dig.digest[:])
	for i, s := range samples {
		dig.buffer[sha1.Size+i*2] = byte(s)
		dig.buffer[sha1.Size+i*2+1] = byte(uint16(s) >> 8)
	}

	dig.digest = sha1.Sum(dig.buffer)
	return nil
}

// EndMixing implements the display.AudioMixer interface.
func (dig *Audio) EndMixing() error {
	return nil
}
