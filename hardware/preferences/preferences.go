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

// Package preferences gathers the disk backed preferences that decide how
// the machine is built and run. The caller maps the values onto the
// hardware when a machine is created.
package preferences

import (
	"github.com/jetsetilly/gopherboy/curated"
	"github.com/jetsetilly/gopherboy/prefs"
	"github.com/jetsetilly/gopherboy/resources"
)

// Preferences for the emulated hardware.
type Preferences struct {
	dsk *prefs.Disk

	// the approximation used for pixel transfer timing: "simple" or
	// "penalty"
	Mode3Model prefs.String

	// show a blank frame while the LCD is disabled, rather than repeating
	// the last rendered frame
	BlankDisabled prefs.Bool

	// console revision: "DMG" or "MGB"
	Revision prefs.String

	// host audio sample rate
	SampleRate prefs.Int
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from disk; a missing prefs file
// leaves the defaults in place.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	if err := p.SetDefaults(); err != nil {
		return nil, err
	}

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Add("ppu.mode3model", &p.Mode3Model); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("ppu.blankdisabled", &p.BlankDisabled); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("hardware.revision", &p.Revision); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("apu.samplerate", &p.SampleRate); err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil && !curated.Is(err, prefs.NoPrefsFile) {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all hardware preferences to their default values.
func (p *Preferences) SetDefaults() error {
	if err := p.Mode3Model.Set("penalty"); err != nil {
		return err
	}
	if err := p.BlankDisabled.Set(true); err != nil {
		return err
	}
	if err := p.Revision.Set("DMG"); err != nil {
		return err
	}
	return p.SampleRate.Set(44100)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
