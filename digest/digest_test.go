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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/gopherboy/digest"
	"github.com/jetsetilly/gopherboy/hardware/display"
	"github.com/jetsetilly/gopherboy/test"
)

func TestVideoChaining(t *testing.T) {
	frameA := display.NewFrame()
	frameB := display.NewFrame()
	frameB[0] = 3

	// the same sequence of frames gives the same hash
	dig1 := digest.NewVideo()
	test.ExpectedSuccess(t, dig1.SetPixels(frameA))
	test.ExpectedSuccess(t, dig1.SetPixels(frameB))

	dig2 := digest.NewVideo()
	test.ExpectedSuccess(t, dig2.SetPixels(frameA))
	test.ExpectedSuccess(t, dig2.SetPixels(frameB))

	test.ExpectEquality(t, dig1.Hash(), dig2.Hash())

	// the same frames in a different order do not: the digest is chained
	dig3 := digest.NewVideo()
	test.ExpectedSuccess(t, dig3.SetPixels(frameB))
	test.ExpectedSuccess(t, dig3.SetPixels(frameA))

	test.ExpectInequality(t, dig1.Hash(), dig3.Hash())

	// reset returns the digest to its starting value
	dig1.ResetDigest()
	dig2.ResetDigest()
	test.ExpectEquality(t, dig1.Hash(), dig2.Hash())
}

func TestAudioChaining(t *testing.T) {
	blockA := []int16{0, 100, -100, 32767}
	blockB := []int16{1, 2, 3, 4}

	dig1 := digest.NewAudio()
	test.ExpectedSuccess(t, dig1.SetAudio(blockA))
	test.ExpectedSuccess(t, dig1.SetAudio(blockB))

	dig2 := digest.NewAudio()
	test.ExpectedSuccess(t, dig2.SetAudio(blockA))
	test.ExpectedSuccess(t, dig2.SetAudio(blockB))

	test.ExpectEquality(t, dig1.Hash(), dig2.Hash())

	dig3 := digest.NewAudio()
	test.ExpectedSuccess(t, dig3.SetAudio(blockB))
	test.ExpectedSuccess(t, dig3.SetAudio(blockA))

	test.ExpectInequality(t, dig1.Hash(), dig3.Hash())

	// an empty block does not advance the digest
	before := dig1.Hash()
	test.ExpectedSuccess(t, dig1.SetAudio(nil))
	test.ExpectEquality(t, dig1.Hash(), before)
}
