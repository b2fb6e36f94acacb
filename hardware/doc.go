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

// Package hardware is the console itself. The GameBoy type gathers the
// CPU, the memory bus, the video and sound units and the other peripherals
// into one machine and runs them in lockstep.
//
// The scheduling model is instruction granular. The CPU executes one
// instruction and reports the clocks it consumed; every other component is
// then run for the same number of clocks. No component runs ahead of any
// other by more than one instruction, which is accurate enough for all but
// the most exotic software.
package hardware
