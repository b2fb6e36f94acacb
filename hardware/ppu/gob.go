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
	"bytes"
	"encoding/gob"
)

// GobEncode implements the gob.GobEncoder interface. Both framebuffers are
// part of the state so that a restored machine can present the frame that
// was on screen at save time.
func (p *PPU) GobEncode() ([]byte, error) {
	var b bytes.Buffer
	enc := gob.NewEncoder(&b)

	for _, v := range []any{p.VRAM, p.OAM,
		p.LCDC, p.STAT, p.SCY, p.SCX, p.LY, p.LYC,
		p.BGP, p.OBP0, p.OBP1, p.WY, p.WX,
		p.Mode, p.dot, p.transferClocks, p.windowLine, p.lycLatch,
		p.front, p.back, p.frameNum, p.frameDone,
		p.Model, p.BlankDisabled} {
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface.
func (p *PPU) GobDecode(data []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(data))

	for _, v := range []any{&p.VRAM, &p.OAM,
		&p.LCDC, &p.STAT, &p.SCY, &p.SCX, &p.LY, &p.LYC,
		&p.BGP, &p.OBP0, &p.OBP1, &p.WY, &p.WX,
		&p.Mode, &p.dot, &p.transferClocks, &p.windowLine, &p.lycLatch,
		&p.front, &p.back, &p.frameNum, &p.frameDone,
		&p.Model, &p.BlankDisabled} {
		if err := dec.Decode(v); err != nil {
			return err
		}
	}

	return nil
}
