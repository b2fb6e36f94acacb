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

// Package addresses lists the names and locations of the memory mapped
// hardware registers. The names are those used in the official programming
// documentation and are the names software developers for the machine will
// know the registers by.
package addresses

// Joypad, serial, timer and interrupt registers.
const (
	JOYP uint16 = 0xff00 // joypad matrix select/state
	SB   uint16 = 0xff01 // serial transfer data
	SC   uint16 = 0xff02 // serial transfer control
	DIV  uint16 = 0xff04 // divider register
	TIMA uint16 = 0xff05 // timer counter
	TMA  uint16 = 0xff06 // timer modulo
	TAC  uint16 = 0xff07 // timer control
	IF   uint16 = 0xff0f // interrupt request flags
	IE   uint16 = 0xffff // interrupt enable flags
)

// Audio registers. NR10 to NR14 control the first pulse channel; NR21 to
// NR24 the second pulse channel; NR30 to NR34 the wave channel; NR41 to NR44
// the noise channel. NR50 to NR52 control the mixer and master switch.
const (
	NR10 uint16 = 0xff10
	NR11 uint16 = 0xff11
	NR12 uint16 = 0xff12
	NR13 uint16 = 0xff13
	NR14 uint16 = 0xff14
	NR21 uint16 = 0xff16
	NR22 uint16 = 0xff17
	NR23 uint16 = 0xff18
	NR24 uint16 = 0xff19
	NR30 uint16 = 0xff1a
	NR31 uint16 = 0xff1b
	NR32 uint16 = 0xff1c
	NR33 uint16 = 0xff1d
	NR34 uint16 = 0xff1e
	NR41 uint16 = 0xff20
	NR42 uint16 = 0xff21
	NR43 uint16 = 0xff22
	NR44 uint16 = 0xff23
	NR50 uint16 = 0xff24
	NR51 uint16 = 0xff25
	NR52 uint16 = 0xff26

	// the wave channel's sample table
	WaveRAMStart uint16 = 0xff30
	WaveRAMEnd   uint16 = 0xff3f
)

// Pixel unit registers.
const (
	LCDC uint16 = 0xff40 // display control
	STAT uint16 = 0xff41 // display status / mode interrupts
	SCY  uint16 = 0xff42 // background scroll Y
	SCX  uint16 = 0xff43 // background scroll X
	LY   uint16 = 0xff44 // current scanline
	LYC  uint16 = 0xff45 // scanline compare
	DMA  uint16 = 0xff46 // OAM DMA trigger
	BGP  uint16 = 0xff47 // background palette
	OBP0 uint16 = 0xff48 // sprite palette 0
	OBP1 uint16 = 0xff49 // sprite palette 1
	WY   uint16 = 0xff4a // window Y
	WX   uint16 = 0xff4b // window X (plus 7)
)
