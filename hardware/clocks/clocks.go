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

// Package clocks defines the constant values that define the speed of the
// main clock in the console. Every component rate in the machine divides
// down from the one crystal.
package clocks

// Machine is the number of clocks in one second. All component emulation
// counts time in these units.
const Machine = 4194304

// ClocksPerFrame is the length of one complete video frame with the LCD
// enabled. The frame rate follows from it: a little under 59.73 frames per
// second.
const ClocksPerFrame = 70224

// FrameRate is the number of video frames generated in one second.
const FrameRate = float32(Machine) / float32(ClocksPerFrame)
