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

package ppu

import (
	"sort"

	"github.com/jetsetilly/gopherboy/hardware/display"
)

// VRAM offsets of the two tile maps.
const (
	tileMapLow  = 0x1800
	tileMapHigh = 0x1c00
)

// a sprite as decoded from OAM.
type sprite struct {
	index int
	y     int
	x     int
	tile  uint8
	attrs uint8
}

// sprite attribute bits.
const (
	attrPalette  = 0x10
	attrFlipX    = 0x20
	attrFlipY    = 0x40
	attrBehindBG = 0x80
)

// the most sprites the hardware will show on one scanline.
const maxSpritesPerScanline = 10

// palette maps a color number through one of the palette registers to a
// shade index.
func palette(reg uint8, color uint8) uint8 {
	return (reg >> (color * 2)) & 0x03
}

// tileRow reads one row of a tile from the tile data area. The result is a
// color number per pixel, left to right.
func (p *PPU) tileRow(tile uint8, row int, signedIndex bool) [8]uint8 {
	var offset int
	if signedIndex {
		offset = 0x1000 + int(int8(tile))*16
	} else {
		offset = int(tile) * 16
	}
	offset += row * 2

	lo := p.VRAM[offset]
	hi := p.VRAM[offset+1]

	var pixels [8]uint8
	for i := 0; i < 8; i++ {
		bit := uint(7 - i)
		pixels[i] = (lo>>bit)&0x01 | ((hi>>bit)&0x01)<<1
	}
	return pixels
}

// mapTile returns the tile number at a position in one of the tile maps.
func (p *PPU) mapTile(mapBase int, tileX, tileY int) uint8 {
	return p.VRAM[mapBase+tileY*32+tileX]
}

// renderScanline composites the current scanline into the back buffer.
// Returns the number of sprites fetched on the line and whether the window
// was active, both of which feed the transfer duration model.
func (p *PPU) renderScanline() (int, bool) {
	y := int(p.LY)
	row := p.back[y*display.Width : (y+1)*display.Width]

	// the pre-palette color number of the background or window pixel,
	// needed for sprite to background priority
	var bgColor [display.Width]uint8

	signedIndex := p.LCDC&lcdcTileData == 0x00

	windowActive := false
	if p.LCDC&lcdcWindowEnable == lcdcWindowEnable && int(p.WY) <= y && p.WX <= 166 {
		windowActive = true
	}

	for x := 0; x < display.Width; x++ {
		if p.LCDC&lcdcBGEnable == 0x00 {
			// a disabled background is blank, not skipped
			bgColor[x] = 0
			row[x] = palette(p.BGP, 0)
			continue
		}

		var tile uint8
		var tileRowY, tileColX int

		if windowActive && x >= int(p.WX)-7 {
			mapBase := tileMapLow
			if p.LCDC&lcdcWindowTileMap == lcdcWindowTileMap {
				mapBase = tileMapHigh
			}
			wx := x - (int(p.WX) - 7)
			tile = p.mapTile(mapBase, wx/8, p.windowLine/8)
			tileRowY = p.windowLine % 8
			tileColX = wx % 8
		} else {
			mapBase := tileMapLow
			if p.LCDC&lcdcBGTileMap == lcdcBGTileMap {
				mapBase = tileMapHigh
			}
			bx := (x + int(p.SCX)) & 0xff
			by := (y + int(p.SCY)) & 0xff
			tile = p.mapTile(mapBase, bx/8, by/8)
			tileRowY = by % 8
			tileColX = bx % 8
		}

		pixels := p.tileRow(tile, tileRowY, signedIndex)
		bgColor[x] = pixels[tileColX]
		row[x] = palette(p.BGP, pixels[tileColX])
	}

	if windowActive {
		p.windowLine++
	}

	if p.LCDC&lcdcSpritesEnable == 0x00 {
		return 0, windowActive
	}

	sprites := p.selectSprites(y)

	// draw in reverse priority order so the winning sprite is drawn last.
	// priority: smaller X wins, OAM index breaks ties
	for i := len(sprites) - 1; i >= 0; i-- {
		p.drawSprite(sprites[i], y, row, bgColor[:])
	}

	return len(sprites), windowActive
}

// selectSprites picks the sprites visible on the scanline. The hardware
// scans OAM in order and takes the first ten whose Y range covers the line.
func (p *PPU) selectSprites(y int) []sprite {
	height := 8
	if p.LCDC&lcdcSpriteSize == lcdcSpriteSize {
		height = 16
	}

	var sprites []sprite
	for i := 0; i < len(p.OAM)/4; i++ {
		sy := int(p.OAM[i*4]) - 16
		if y < sy || y >= sy+height {
			continue
		}
		sprites = append(sprites, sprite{
			index: i,
			y:     sy,
			x:     int(p.OAM[i*4+1]) - 8,
			tile:  p.OAM[i*4+2],
			attrs: p.OAM[i*4+3],
		})
		if len(sprites) == maxSpritesPerScanline {
			break
		}
	}

	// sort into priority order: leftmost first, OAM order breaking ties
	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].x < sprites[j].x
	})

	return sprites
}

// drawSprite composites one sprite row into the scanline.
func (p *PPU) drawSprite(spr sprite, y int, row []uint8, bgColor []uint8) {
	height := 8
	if p.LCDC&lcdcSpriteSize == lcdcSpriteSize {
		height = 16
	}

	sy := y - spr.y
	if spr.attrs&attrFlipY == attrFlipY {
		sy = height - 1 - sy
	}

	tile := spr.tile
	if height == 16 {
		// the tile number's low bit is ignored for double height sprites
		tile &= 0xfe
		if sy >= 8 {
			tile |= 0x01
			sy -= 8
		}
	}

	// sprite tiles always use the unsigned tile data area
	pixels := p.tileRow(tile, sy, false)

	pal := p.OBP0
	if spr.attrs&attrPalette == attrPalette {
		pal = p.OBP1
	}

	for px := 0; px < 8; px++ {
		sx := spr.x + px
		if sx < 0 || sx >= display.Width {
			continue
		}

		cx := px
		if spr.attrs&attrFlipX == attrFlipX {
			cx = 7 - px
		}

		color := pixels[cx]
		if color == 0 {
			// color zero is transparent for sprites
			continue
		}

		if spr.attrs&attrBehindBG == attrBehindBG && bgColor[sx] != 0 {
			continue
		}

		row[sx] = palette(pal, color)
	}
}
