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

package hardware

// RunForFrame runs the machine until the next video frame has been
// completed. With the LCD disabled the machine still produces frames at the
// normal rate, so the call always returns.
func (gb *GameBoy) RunForFrame() error {
	for {
		frame, err := gb.Step()
		if err != nil {
			return err
		}
		if frame {
			return nil
		}
	}
}

// Run the machine until continueCheck returns false. continueCheck is
// called once per video frame, which is frequent enough for user input and
// throttling without dominating the emulation time.
func (gb *GameBoy) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for {
		if err := gb.RunForFrame(); err != nil {
			return err
		}

		cont, err := continueCheck()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}
