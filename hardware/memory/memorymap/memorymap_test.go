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

package memorymap_test

import (
	"testing"

	"github.com/jetsetilly/gopherboy/hardware/memory/memorymap"
	"github.com/jetsetilly/gopherboy/test"
)

func TestMapAddress(t *testing.T) {
	var area memorymap.Area
	var offset uint16

	area, offset = memorymap.MapAddress(0x0000)
	test.ExpectEquality(t, area, memorymap.CartROM)
	test.ExpectEquality(t, offset, 0x0000)

	area, offset = memorymap.MapAddress(0x7fff)
	test.ExpectEquality(t, area, memorymap.CartROM)
	test.ExpectEquality(t, offset, 0x7fff)

	area, offset = memorymap.MapAddress(0x9800)
	test.ExpectEquality(t, area, memorymap.VRAM)
	test.ExpectEquality(t, offset, 0x1800)

	area, offset = memorymap.MapAddress(0xa000)
	test.ExpectEquality(t, area, memorymap.CartRAM)
	test.ExpectEquality(t, offset, 0x0000)

	area, offset = memorymap.MapAddress(0xcafe)
	test.ExpectEquality(t, area, memorymap.WRAM)
	test.ExpectEquality(t, offset, 0x0afe)

	area, offset = memorymap.MapAddress(0xfe00)
	test.ExpectEquality(t, area, memorymap.OAM)
	test.ExpectEquality(t, offset, 0x0000)

	area, offset = memorymap.MapAddress(0xfea0)
	test.ExpectEquality(t, area, memorymap.Unusable)
	test.ExpectEquality(t, offset, 0x0000)

	area, offset = memorymap.MapAddress(0xff40)
	test.ExpectEquality(t, area, memorymap.IO)
	test.ExpectEquality(t, offset, 0xff40)

	area, offset = memorymap.MapAddress(0xff80)
	test.ExpectEquality(t, area, memorymap.HRAM)
	test.ExpectEquality(t, offset, 0x0000)

	area, _ = memorymap.MapAddress(0xffff)
	test.ExpectEquality(t, area, memorymap.IE)
}

// the echo of work RAM must translate to the same offset as the original
// address.
func TestEchoRAM(t *testing.T) {
	for _, a := range []uint16{0xc000, 0xc001, 0xd123, 0xddff} {
		area, offset := memorymap.MapAddress(a)
		test.ExpectEquality(t, area, memorymap.WRAM)

		echoArea, echoOffset := memorymap.MapAddress(a + 0x2000)
		test.ExpectEquality(t, echoArea, memorymap.WRAM)
		test.ExpectEquality(t, echoOffset, offset)
	}
}
