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

// Package digest contains implementations of the display protocol
// interfaces, namely PixelRenderer and AudioMixer, such that a cryptographic
// hash of the output is produced. The hash can then be used to compare the
// output of subsequent emulation runs: if a new hash differs from a
// previously recorded value then something has changed. This is the basis
// of the regression tests.
package digest

// Digest implementations return a hash of the output stream seen so far.
// Hashes are chained: each new frame or audio block is hashed together with
// the hash that came before it, so a single comparison at the end of a run
// covers the whole run.
type Digest interface {
	Hash() string
	ResetDigest()
}
