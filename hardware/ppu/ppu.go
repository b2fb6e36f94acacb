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

// Package ppu implements the pixel unit: a state machine clocked per
// scanline through OAM scan, pixel transfer and horizontal blank, with a
// vertical blank period after the last visible scanline. Mode transitions
// happen only at fixed dot boundaries.
//
// A scanline's pixels are composited in one go on entry to the pixel
// transfer mode. The framebuffer is double buffered: the frame handed to
// the renderer on vertical blank is always complete.
//
// The access restrictions the real hardware places on VRAM and OAM during
// pixel transfer are not modeled; software that honors the restrictions
// sees no difference.
package ppu

import (
	"fmt"

	"github.com/jetsetilly/gopherboy/hardware/display"
	"github.com/jetsetilly/gopherboy/hardware/interrupts"
	"github.com/jetsetilly/gopherboy/hardware/memory/addresses"
)

// Mode is the current phase of the scanline state machine. The values are
// as they appear in the low two bits of the STAT register.
type Mode int

// The four modes of the pixel unit.
const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMScan
	ModePixelTransfer
)

func (m Mode) String() string {
	switch m {
	case ModeHBlank:
		return "hblank"
	case ModeVBlank:
		return "vblank"
	case ModeOAMScan:
		return "oam-scan"
	case ModePixelTransfer:
		return "pixel-transfer"
	}
	return "unknown"
}

// Dot counts for the scanline state machine. The transfer mode length
// varies with sprite and window overlap but the scanline total never
// changes: horizontal blank pads whatever the transfer leaves over.
const (
	ClocksPerScanline = 456
	OAMScanClocks     = 80

	// bounds of the pixel transfer mode
	MinTransferClocks = 172
	MaxTransferClocks = 289

	VisibleScanlines = 144
	TotalScanlines   = 154

	// one complete frame
	ClocksPerFrame = ClocksPerScanline * TotalScanlines
)

// LCDC register bits.
const (
	lcdcBGEnable      = 0x01
	lcdcSpritesEnable = 0x02
	lcdcSpriteSize    = 0x04
	lcdcBGTileMap     = 0x08
	lcdcTileData      = 0x10
	lcdcWindowEnable  = 0x20
	lcdcWindowTileMap = 0x40
	lcdcEnable        = 0x80
)

// STAT register bits.
const (
	statLYC           = 0x04
	statHBlankInt     = 0x08
	statVBlankInt     = 0x10
	statOAMInt        = 0x20
	statLYCInt        = 0x40
	statWritable      = 0x78
	statAlwaysSet     = 0x80
)

// Mode3Model selects the approximation used for the pixel transfer
// duration. The exact timing under sprite and window overlap differs
// between hardware revisions and is not fully documented, so the model is
// a configuration choice.
type Mode3Model int

// The available Mode3Model values.
const (
	// every scanline uses the minimum transfer duration
	Mode3Simple Mode3Model = iota

	// each sprite fetched on the line and an active window add a fixed
	// penalty, clamped to the documented bounds
	Mode3Penalty
)

// PPU implements the pixel unit.
type PPU struct {
	irq *interrupts.Interrupts

	// the renderer receiving completed frames. may be nil
	renderer display.PixelRenderer

	VRAM []uint8
	OAM  []uint8

	// registers
	LCDC uint8
	STAT uint8 // only the interrupt enable bits; mode and LYC flag are derived
	SCY  uint8
	SCX  uint8
	LY   uint8
	LYC  uint8
	BGP  uint8
	OBP0 uint8
	OBP1 uint8
	WY   uint8
	WX   uint8

	// scanline state machine
	Mode           Mode
	dot            int
	transferClocks int

	// the window keeps its own line counter, advancing only on lines where
	// the window is visible
	windowLine int

	// the LYC comparison raises its interrupt once per match
	lycLatch bool

	// double buffered framebuffer. pixels are composited into back; front
	// is what the renderer last saw
	front display.Frame
	back  display.Frame

	frameNum int

	// a completed frame waiting to be collected by FrameComplete()
	frameDone bool

	// configuration
	Model         Mode3Model
	BlankDisabled bool
}

// NewPPU is the preferred method of initialisation for the PPU type.
func NewPPU(irq *interrupts.Interrupts) *PPU {
	p := &PPU{
		irq:   irq,
		VRAM:  make([]uint8, 0x2000),
		OAM:   make([]uint8, 0xa0),
		front: display.NewFrame(),
		back:  display.NewFrame(),

		Model:         Mode3Penalty,
		BlankDisabled: true,
	}
	p.Mode = ModeOAMScan
	p.transferClocks = MinTransferClocks
	return p
}

// Snapshot creates a copy of the PPU in its current state.
func (p *PPU) Snapshot() *PPU {
	n := *p
	n.VRAM = make([]uint8, len(p.VRAM))
	copy(n.VRAM, p.VRAM)
	n.OAM = make([]uint8, len(p.OAM))
	copy(n.OAM, p.OAM)
	n.front = p.front.Snapshot()
	n.back = p.back.Snapshot()
	return &n
}

// Plumb the supplied interrupt controller and renderer into the PPU.
func (p *PPU) Plumb(irq *interrupts.Interrupts, renderer display.PixelRenderer) {
	p.irq = irq
	p.renderer = renderer
}

// AddPixelRenderer connects a renderer to the PPU. The renderer receives
// every completed frame.
func (p *PPU) AddPixelRenderer(renderer display.PixelRenderer) {
	p.renderer = renderer
}

func (p *PPU) String() string {
	return fmt.Sprintf("LY=%d dot=%d mode=%s LCDC=%#02x STAT=%#02x", p.LY, p.dot, p.Mode, p.LCDC, p.readSTAT())
}

// Frame returns the most recently completed frame.
func (p *PPU) Frame() display.Frame {
	return p.front
}

// FrameNum returns the number of frames completed since power on.
func (p *PPU) FrameNum() int {
	return p.frameNum
}

func (p *PPU) enabled() bool {
	return p.LCDC&lcdcEnable == lcdcEnable
}

// Step the PPU forward by the number of clocks consumed by the previous CPU
// instruction. Returns true if a frame was completed during this step.
func (p *PPU) Step(clocks int) bool {
	p.dot += clocks

	if !p.enabled() {
		// the scanline clock keeps running while the unit is disabled so
		// that frame pacing, and software that counts on it, is undisturbed
		if p.dot >= ClocksPerFrame {
			p.dot -= ClocksPerFrame
			if p.BlankDisabled {
				// the disabled screen shows the blank shade
				for i := range p.back {
					p.back[i] = 0
				}
				p.finishFrame()
			} else {
				// the last rendered frame repeats
				p.frameNum++
				p.frameDone = true
				if p.renderer != nil {
					p.renderer.NewFrame(p.frameNum)
					p.renderer.SetPixels(p.front)
				}
			}
		}
		return p.collectFrame()
	}

	for {
		switch p.Mode {
		case ModeOAMScan:
			if p.dot < OAMScanClocks {
				return p.collectFrame()
			}
			p.enterTransfer()

		case ModePixelTransfer:
			if p.dot < OAMScanClocks+p.transferClocks {
				return p.collectFrame()
			}
			p.setMode(ModeHBlank)

		case ModeHBlank, ModeVBlank:
			if p.dot < ClocksPerScanline {
				return p.collectFrame()
			}
			p.dot -= ClocksPerScanline
			p.advanceScanline()
		}
	}
}

func (p *PPU) collectFrame() bool {
	done := p.frameDone
	p.frameDone = false
	return done
}

// setMode changes the current mode, raising the relevant STAT interrupt on
// entry.
func (p *PPU) setMode(mode Mode) {
	p.Mode = mode

	switch mode {
	case ModeHBlank:
		if p.STAT&statHBlankInt == statHBlankInt {
			p.irq.Raise(interrupts.Stat)
		}
	case ModeVBlank:
		if p.STAT&statVBlankInt == statVBlankInt {
			p.irq.Raise(interrupts.Stat)
		}
	case ModeOAMScan:
		if p.STAT&statOAMInt == statOAMInt {
			p.irq.Raise(interrupts.Stat)
		}
	}
}

// enterTransfer begins the pixel transfer mode for the current scanline:
// the transfer duration is decided and the scanline is composited into the
// back buffer.
func (p *PPU) enterTransfer() {
	p.Mode = ModePixelTransfer
	p.transferClocks = MinTransferClocks

	sprites, windowActive := p.renderScanline()

	if p.Model == Mode3Penalty {
		p.transferClocks += sprites * 6
		if windowActive {
			p.transferClocks += 6
		}
		if p.transferClocks > MaxTransferClocks {
			p.transferClocks = MaxTransferClocks
		}
	}
}

// advanceScanline moves to the next scanline, entering vertical blank after
// the last visible line and wrapping to scanline zero after the last line
// of the frame.
func (p *PPU) advanceScanline() {
	p.LY++

	switch {
	case p.LY == VisibleScanlines:
		p.setMode(ModeVBlank)
		p.irq.Raise(interrupts.VBlank)
		p.finishFrame()

	case p.LY >= TotalScanlines:
		p.LY = 0
		p.windowLine = 0
		p.setMode(ModeOAMScan)

	case p.LY < VisibleScanlines:
		p.setMode(ModeOAMScan)
	}

	p.compareLYC()
}

// finishFrame swaps the frame buffers and hands the completed frame to the
// renderer.
func (p *PPU) finishFrame() {
	p.front, p.back = p.back, p.front
	p.frameNum++
	p.frameDone = true

	if p.renderer != nil {
		p.renderer.NewFrame(p.frameNum)
		p.renderer.SetPixels(p.front)
	}
}

// compareLYC checks the scanline compare register. The interrupt is edge
// triggered: it fires once when the match becomes true and not again until
// the match has been false in between.
func (p *PPU) compareLYC() {
	match := p.LY == p.LYC

	if match && !p.lycLatch && p.STAT&statLYCInt == statLYCInt {
		p.irq.Raise(interrupts.Stat)
	}
	p.lycLatch = match
}

// ReadVRAM reads video RAM. The offset is in the range 0x0000 to 0x1fff.
func (p *PPU) ReadVRAM(offset uint16) uint8 {
	return p.VRAM[offset]
}

// WriteVRAM writes video RAM.
func (p *PPU) WriteVRAM(offset uint16, data uint8) {
	p.VRAM[offset] = data
}

// ReadOAM reads object attribute memory. The offset is in the range 0x0000
// to 0x009f.
func (p *PPU) ReadOAM(offset uint16) uint8 {
	return p.OAM[offset]
}

// WriteOAM writes object attribute memory.
func (p *PPU) WriteOAM(offset uint16, data uint8) {
	p.OAM[offset] = data
}

func (p *PPU) readSTAT() uint8 {
	v := statAlwaysSet | p.STAT&statWritable

	if p.enabled() {
		v |= uint8(p.Mode)
		if p.LY == p.LYC {
			v |= statLYC
		}
	}

	return v
}

// ReadRegister reads one of the pixel unit registers.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case addresses.LCDC:
		return p.LCDC
	case addresses.STAT:
		return p.readSTAT()
	case addresses.SCY:
		return p.SCY
	case addresses.SCX:
		return p.SCX
	case addresses.LY:
		return p.LY
	case addresses.LYC:
		return p.LYC
	case addresses.BGP:
		return p.BGP
	case addresses.OBP0:
		return p.OBP0
	case addresses.OBP1:
		return p.OBP1
	case addresses.WY:
		return p.WY
	case addresses.WX:
		return p.WX
	}
	return 0xff
}

// WriteRegister writes one of the pixel unit registers.
func (p *PPU) WriteRegister(address uint16, data uint8) {
	switch address {
	case addresses.LCDC:
		wasEnabled := p.enabled()
		p.LCDC = data
		if wasEnabled && !p.enabled() {
			// turning the unit off holds the scanline state at zero
			p.LY = 0
			p.dot = 0
			p.Mode = ModeHBlank
			p.lycLatch = false
		} else if !wasEnabled && p.enabled() {
			p.Mode = ModeOAMScan
			p.dot = 0
		}
	case addresses.STAT:
		p.STAT = data & statWritable
	case addresses.SCY:
		p.SCY = data
	case addresses.SCX:
		p.SCX = data
	case addresses.LY:
		// read only
	case addresses.LYC:
		p.LYC = data
		p.compareLYC()
	case addresses.BGP:
		p.BGP = data
	case addresses.OBP0:
		p.OBP0 = data
	case addresses.OBP1:
		p.OBP1 = data
	case addresses.WY:
		p.WY = data
	case addresses.WX:
		p.WX = data
	}
}
