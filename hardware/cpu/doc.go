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

// Package cpu emulates the SM83 core. The execution model is instruction
// granular: ExecuteInstruction() runs exactly one instruction, or one
// interrupt dispatch, and reports the clocks consumed so the caller can run
// the rest of the machine by the same amount.
//
// Cycle counting hangs off the memory access primitives. Every read and
// write costs four clocks and the handful of instructions with internal
// delay periods add them explicitly, which reproduces the documented
// instruction timings without a separate timing table.
package cpu
