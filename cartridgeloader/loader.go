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

// Package cartridgeloader is the first point of contact between a ROM and
// the emulation. The Loader type carries the ROM bytes and their hash; it
// knows nothing about files or the network. Reading ROM data from wherever
// it lives is the collaborating front end's responsibility.
package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
)

// Loader describes the cartridge data to be attached to the machine.
type Loader struct {
	// a name for the cartridge, used in logging. typically the base of the
	// filename the front end read the data from
	Name string

	// the full ROM byte content. immutable once attached
	Data []byte

	// the SHA1 hash of Data. computed by NewLoader()
	Hash string
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(name string, data []byte) Loader {
	return Loader{
		Name: name,
		Data: data,
		Hash: fmt.Sprintf("%x", sha1.Sum(data)),
	}
}
