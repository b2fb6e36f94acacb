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

// Package savestate writes machine state to persistent storage and reads
// it back. A save state identifies its cartridge by hash but does not
// contain the ROM data: loading a state requires the same cartridge to be
// attached to the receiving machine.
//
// Restoration is all or nothing. A state that cannot be decoded or that
// belongs to a different cartridge leaves the receiving machine untouched.
package savestate

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/hardware"
	"github.com/jetsetilly/gopherboy/logger"
)

// error patterns for save state files.
const (
	// the data is not a save state at all
	NotASaveState = "savestate: not a save state: %v"

	// the save state was written by an incompatible version
	UnsupportedVersion = "savestate: unsupported version: %v"

	// the save state belongs to a different cartridge than the one attached
	WrongCartridge = "savestate: state belongs to a different cartridge: %v"
)

// the magic string at the head of every save state file.
const magic = "gopherboy"

// bumped whenever the encoded form of any component changes.
const currentVersion = 1

type header struct {
	Magic    string
	Version  int
	CartHash string
	CartName string
}

// Save writes the current state of the machine for later restoration by
// Load().
func Save(gb *hardware.GameBoy, w io.Writer) error {
	enc := gob.NewEncoder(w)

	hdr := header{
		Magic:    magic,
		Version:  currentVersion,
		CartHash: gb.Cart.Hash,
		CartName: gb.Cart.Header.Title,
	}
	if err := enc.Encode(hdr); err != nil {
		return curated.Errorf("savestate: %v", err)
	}

	if err := enc.Encode(gb.Snapshot()); err != nil {
		return curated.Errorf("savestate: %v", err)
	}

	return nil
}

// Load restores a state previously written by Save(). The machine must
// have the same cartridge attached as the machine the state was saved
// from. On failure the machine continues unchanged.
func Load(gb *hardware.GameBoy, r io.Reader) error {
	dec := gob.NewDecoder(r)

	var hdr header
	if err := dec.Decode(&hdr); err != nil {
		return curated.Errorf(NotASaveState, err)
	}
	if hdr.Magic != magic {
		return curated.Errorf(NotASaveState, "bad magic")
	}
	if hdr.Version != currentVersion {
		return curated.Errorf(UnsupportedVersion, hdr.Version)
	}
	if hdr.CartHash != gb.Cart.Hash {
		return curated.Errorf(WrongCartridge, hdr.CartName)
	}

	var state hardware.State
	if err := dec.Decode(&state); err != nil {
		return curated.Errorf(NotASaveState, err)
	}

	// the decoded cartridge has no ROM data. bind it to the ROM of the
	// attached cartridge before the state touches the machine
	if err := state.Bus.Cart.Rebind(gb.Cart); err != nil {
		return err
	}

	gb.Plumb(&state)

	return nil
}

// SaveFile writes the current state of the machine to the named file.
func SaveFile(gb *hardware.GameBoy, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("savestate: %v", err)
	}
	defer f.Close()

	if err := Save(gb, f); err != nil {
		return err
	}

	logger.Logf("savestate", "saved %s", filename)

	return nil
}

// LoadFile restores a state from the named file.
func LoadFile(gb *hardware.GameBoy, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return curated.Errorf("savestate: %v", err)
	}
	defer f.Close()

	if err := Load(gb, f); err != nil {
		return err
	}

	logger.Logf("savestate", "loaded %s", filename)

	return nil
}
