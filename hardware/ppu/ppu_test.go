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

package ppu_test

import (
	"testing"

	"github.com/jetsetilly/gopherboy/hardware/display"
	"github.com/jetsetilly/gopherboy/hardware/interrupts"
	"github.com/jetsetilly/gopherboy/hardware/memory/addresses"
	"github.com/jetsetilly/gopherboy/hardware/ppu"
	"github.com/jetsetilly/gopherboy/test"
)

func newPPU() (*ppu.PPU, *interrupts.Interrupts) {
	irq := interrupts.NewInterrupts()
	p := ppu.NewPPU(irq)
	p.WriteRegister(addresses.LCDC, 0x91)
	return p, irq
}

func TestModeSequence(t *testing.T) {
	p, _ := newPPU()

	test.ExpectEquality(t, p.Mode, ppu.ModeOAMScan)

	// OAM scan lasts exactly 80 dots
	p.Step(79)
	test.ExpectEquality(t, p.Mode, ppu.ModeOAMScan)
	p.Step(1)
	test.ExpectEquality(t, p.Mode, ppu.ModePixelTransfer)

	// with no sprites and no window the transfer takes the minimum
	p.Step(ppu.MinTransferClocks - 1)
	test.ExpectEquality(t, p.Mode, ppu.ModePixelTransfer)
	p.Step(1)
	test.ExpectEquality(t, p.Mode, ppu.ModeHBlank)

	// horizontal blank pads the line to the fixed total
	p.Step(ppu.ClocksPerScanline - ppu.OAMScanClocks - ppu.MinTransferClocks - 1)
	test.ExpectEquality(t, p.Mode, ppu.ModeHBlank)
	test.ExpectEquality(t, p.LY, uint8(0))
	p.Step(1)
	test.ExpectEquality(t, p.Mode, ppu.ModeOAMScan)
	test.ExpectEquality(t, p.LY, uint8(1))
}

func TestScanlineTotalIsFixed(t *testing.T) {
	// whatever the transfer duration, a scanline is always the same number
	// of dots: horizontal blank absorbs the difference
	for _, transfer := range []int{ppu.MinTransferClocks, 200, 250, ppu.MaxTransferClocks} {
		hblank := ppu.ClocksPerScanline - ppu.OAMScanClocks - transfer
		total := ppu.OAMScanClocks + transfer + hblank
		test.ExpectEquality(t, total, ppu.ClocksPerScanline)
	}
}

func TestVBlankInterruptAndFrameHandover(t *testing.T) {
	p, irq := newPPU()

	// run to the end of the last visible scanline
	p.Step(ppu.ClocksPerScanline*ppu.VisibleScanlines - 1)
	test.ExpectEquality(t, irq.Request&interrupts.VBlank.Mask(), uint8(0))

	frame := p.Step(1)
	test.ExpectedSuccess(t, frame)
	test.ExpectEquality(t, p.Mode, ppu.ModeVBlank)
	test.ExpectEquality(t, p.LY, uint8(ppu.VisibleScanlines))
	test.ExpectEquality(t, irq.Request&interrupts.VBlank.Mask(), interrupts.VBlank.Mask())

	// vertical blank lasts ten scanlines then wraps to scanline zero
	p.Step(ppu.ClocksPerScanline * (ppu.TotalScanlines - ppu.VisibleScanlines))
	test.ExpectEquality(t, p.LY, uint8(0))
	test.ExpectEquality(t, p.Mode, ppu.ModeOAMScan)
}

func TestLYCEdgeTriggered(t *testing.T) {
	p, irq := newPPU()
	p.WriteRegister(addresses.LYC, 2)
	p.WriteRegister(addresses.STAT, 0x40)

	p.Step(ppu.ClocksPerScanline * 2)
	test.ExpectEquality(t, irq.Request&interrupts.Stat.Mask(), interrupts.Stat.Mask())

	// the match does not fire again while it remains true
	irq.Request = 0
	p.Step(100)
	test.ExpectEquality(t, irq.Request, uint8(0))

	// a fresh match on the next frame is a fresh edge. run to the end of
	// scanline 1 of the next frame and then over the boundary
	p.Step(ppu.ClocksPerScanline*(ppu.TotalScanlines-1) - 100)
	test.ExpectEquality(t, irq.Request&interrupts.Stat.Mask(), uint8(0))
	p.Step(ppu.ClocksPerScanline)
	test.ExpectEquality(t, irq.Request&interrupts.Stat.Mask(), interrupts.Stat.Mask())
}

func TestDisabledTimingContinues(t *testing.T) {
	irq := interrupts.NewInterrupts()
	p := ppu.NewPPU(irq)

	// the unit is disabled but frame pacing continues
	frames := 0
	for i := 0; i < ppu.TotalScanlines*2; i++ {
		if p.Step(ppu.ClocksPerScanline) {
			frames++
		}
	}
	test.ExpectEquality(t, frames, 2)

	// no interrupts while disabled
	test.ExpectEquality(t, irq.Request, uint8(0))

	// the disabled frame is blank
	for _, px := range p.Frame() {
		test.ExpectEquality(t, px, uint8(0))
		break
	}
}

// writeTile fills a tile in the unsigned tile data area with a solid color
// number.
func writeTile(p *ppu.PPU, tile int, color uint8) {
	var lo, hi uint8
	if color&0x01 == 0x01 {
		lo = 0xff
	}
	if color&0x02 == 0x02 {
		hi = 0xff
	}
	for row := 0; row < 8; row++ {
		p.WriteVRAM(uint16(tile*16+row*2), lo)
		p.WriteVRAM(uint16(tile*16+row*2+1), hi)
	}
}

func TestBackgroundRender(t *testing.T) {
	p, _ := newPPU()

	// identity palette
	p.WriteRegister(addresses.BGP, 0xe4)

	// tile 1 is solid color 3. the top left tile map entry points at it
	writeTile(p, 1, 3)
	p.WriteVRAM(0x1800, 0x01)

	// complete one frame
	for !p.Step(ppu.ClocksPerScanline) {
	}

	frame := p.Frame()

	// the top left 8x8 pixels show the tile, the rest of the line shows
	// tile 0 which is color 0
	test.ExpectEquality(t, frame[0], uint8(3))
	test.ExpectEquality(t, frame[7], uint8(3))
	test.ExpectEquality(t, frame[8], uint8(0))
	test.ExpectEquality(t, frame[7*display.Width+7], uint8(3))
	test.ExpectEquality(t, frame[8*display.Width], uint8(0))
}

func TestSpritePriority(t *testing.T) {
	p, _ := newPPU()
	p.WriteRegister(addresses.LCDC, 0x93) // enable sprites
	p.WriteRegister(addresses.BGP, 0xe4)
	p.WriteRegister(addresses.OBP0, 0xe4)

	writeTile(p, 1, 1)
	writeTile(p, 2, 2)

	// two sprites overlapping at the same scanline. sprite 1 is further
	// left so it wins despite the higher OAM index
	p.WriteOAM(0, 16) // sprite 0: y=0
	p.WriteOAM(1, 12) // x=4
	p.WriteOAM(2, 1)  // tile 1 (color 1)
	p.WriteOAM(3, 0)

	p.WriteOAM(4, 16) // sprite 1: y=0
	p.WriteOAM(5, 10) // x=2
	p.WriteOAM(6, 2)  // tile 2 (color 2)
	p.WriteOAM(7, 0)

	for !p.Step(ppu.ClocksPerScanline) {
	}

	frame := p.Frame()

	// x=2..9 is sprite 1 except where sprite 0 overlaps: the leftmost
	// sprite wins the overlap at x=4..9
	test.ExpectEquality(t, frame[2], uint8(2))
	test.ExpectEquality(t, frame[3], uint8(2))
	test.ExpectEquality(t, frame[4], uint8(2))
	test.ExpectEquality(t, frame[9], uint8(2))

	// sprite 0 is visible where sprite 1 has ended
	test.ExpectEquality(t, frame[10], uint8(1))
	test.ExpectEquality(t, frame[11], uint8(1))
}

func TestMode3ModelBounds(t *testing.T) {
	p, _ := newPPU()
	p.Model = ppu.Mode3Penalty
	p.WriteRegister(addresses.LCDC, 0x93)

	// ten sprites on the scanline: the transfer is longer than the minimum
	// but the scanline total is unchanged
	for i := 0; i < 10; i++ {
		p.WriteOAM(uint16(i*4), 16)
		p.WriteOAM(uint16(i*4+1), uint8(8+i*8))
	}

	p.Step(ppu.OAMScanClocks)
	test.ExpectEquality(t, p.Mode, ppu.ModePixelTransfer)

	// minimum duration has not ended the transfer
	p.Step(ppu.MinTransferClocks)
	test.ExpectEquality(t, p.Mode, ppu.ModePixelTransfer)

	// the maximum duration always has
	p.Step(ppu.MaxTransferClocks - ppu.MinTransferClocks)
	test.ExpectEquality(t, p.Mode, ppu.ModeHBlank)

	// and the scanline still ends on the fixed boundary
	p.Step(ppu.ClocksPerScanline - ppu.OAMScanClocks - ppu.MaxTransferClocks)
	test.ExpectEquality(t, p.LY, uint8(1))
	test.ExpectEquality(t, p.Mode, ppu.ModeOAMScan)
}
