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

package display

// RGB is a color as a renderer would want it.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Shades is the green tinted palette of the original LCD, from lightest
// (shade 0) to darkest (shade 3). Renderers are free to substitute their
// own.
var Shades = [NumShades]RGB{
	{R: 0x9b, G: 0xbc, B: 0x0f},
	{R: 0x8b, G: 0xac, B: 0x0f},
	{R: 0x30, G: 0x62, B: 0x30},
	{R: 0x0f, G: 0x38, B: 0x0f},
}
